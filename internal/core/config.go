package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Input polls per second
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 30,
	}
}

// GameState is the status a game reports to the platform after each step.
type GameState struct {
	Level    int    // One-based level number, 0 when nothing is loaded
	Levels   int    // Number of levels in the pack
	Name     string // Name of the current level
	Moves    int    // Player steps on the current level
	Pushes   int    // Pushes on the current level
	Complete bool   // Current level solved and waiting for a key
	Finished bool   // Last level solved or the pack could not be loaded
	Quit     bool   // The game asks the platform to exit
	Message  string // Status line text
}

// StepResult is returned by Game.Step() after each input frame.
type StepResult struct {
	State GameState
	// Solved is set on the step that completed a level.
	Solved bool
}
