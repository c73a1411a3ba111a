package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/sokoban.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration used when no file and
// no embedded default can be read.
func DefaultConfig() Config {
	return Config{
		Board: BoardConfig{
			MaxRows: 20,
			MaxCols: 30,
		},
		Game: GameConfig{
			Greeting: "Good luck!",
			Language: "en",
			Pack:     "tutorial",
		},
		Storage: StorageConfig{
			DBPath: "~/.sokoban/records.db",
		},
		SSH: SSHConfig{
			Address:     ":2323",
			HostKeyPath: ".ssh/sokoban_ed25519",
			IdleTimeout: 30 * time.Minute,
		},
		Spectate: SpectateConfig{
			Address: ":8080",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
