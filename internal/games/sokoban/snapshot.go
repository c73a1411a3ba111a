package sokoban

// Snapshot is a copy of the game state, safe to hand to other goroutines.
type Snapshot struct {
	Level    int    `json:"level"`
	Levels   int    `json:"levels"`
	Name     string `json:"name"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Board    string `json:"board"`
	PlayerX  int    `json:"player_x"`
	PlayerY  int    `json:"player_y"`
	Targets  int    `json:"targets"`
	Filled   int    `json:"filled"`
	Message  string `json:"message"`
	Moves    int    `json:"moves"`
	Pushes   int    `json:"pushes"`
	Complete bool   `json:"complete"`
	Finished bool   `json:"finished"`
	Quit     bool   `json:"quit"`
	Error    string `json:"error,omitempty"`
}

func (c *Controller) snapshot() Snapshot {
	l := c.level
	s := Snapshot{
		Levels:   l.Count(),
		Message:  l.Message(),
		Complete: c.complete,
		Finished: c.finished(),
		Quit:     c.quit,
	}
	if c.lastErr != nil {
		s.Error = c.lastErr.Error()
	}
	if !l.Loaded() {
		return s
	}

	b := l.Board()
	player := l.PlayerPosition()
	stats := l.Stats()
	s.Level = l.Number()
	s.Name = l.Name()
	s.Width = b.Width
	s.Height = b.Height
	s.Board = b.String()
	s.PlayerX, s.PlayerY = player.X, player.Y
	s.Targets = len(b.Targets())
	s.Filled = b.TargetsFilled()
	s.Moves = stats.Moves
	s.Pushes = stats.Pushes
	return s
}
