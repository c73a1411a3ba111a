// Package config provides YAML-based configuration loading for the
// Sokoban game and its servers.
package config

import (
	"fmt"
	"time"
)

// Config contains all configuration for the game and its front ends.
type Config struct {
	Board    BoardConfig    `yaml:"board"`
	Game     GameConfig     `yaml:"game"`
	Storage  StorageConfig  `yaml:"storage"`
	SSH      SSHConfig      `yaml:"ssh"`
	Spectate SpectateConfig `yaml:"spectate"`
	Log      LogConfig      `yaml:"log"`
}

// BoardConfig caps the size of parsed levels.
type BoardConfig struct {
	MaxRows int `yaml:"max_rows"`
	MaxCols int `yaml:"max_cols"`
}

// GameConfig defines gameplay and presentation settings.
type GameConfig struct {
	Greeting string `yaml:"greeting"`  // Message shown after a level loads
	Language string `yaml:"language"`  // Status message language ("en", "de")
	Pack     string `yaml:"pack"`      // Default level pack ID
	PacksDir string `yaml:"packs_dir"` // Extra directory of level packs, optional
}

// StorageConfig locates the records database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// SSHConfig defines the SSH server settings.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// SpectateConfig defines the spectator HTTP server settings.
type SpectateConfig struct {
	Address string `yaml:"address"`
}

// LogConfig defines logging settings.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	if c.Board.MaxRows <= 0 || c.Board.MaxCols <= 0 {
		return fmt.Errorf("board limits must be positive, got %dx%d", c.Board.MaxCols, c.Board.MaxRows)
	}
	if c.Game.Pack == "" {
		return fmt.Errorf("game.pack must not be empty")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	return nil
}

// withDefaults fills zero values from DefaultConfig.
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Board.MaxRows <= 0 {
		c.Board.MaxRows = d.Board.MaxRows
	}
	if c.Board.MaxCols <= 0 {
		c.Board.MaxCols = d.Board.MaxCols
	}
	if c.Game.Greeting == "" {
		c.Game.Greeting = d.Game.Greeting
	}
	if c.Game.Language == "" {
		c.Game.Language = d.Game.Language
	}
	if c.Game.Pack == "" {
		c.Game.Pack = d.Game.Pack
	}
	if c.Storage.DBPath == "" {
		c.Storage.DBPath = d.Storage.DBPath
	}
	if c.SSH.Address == "" {
		c.SSH.Address = d.SSH.Address
	}
	if c.SSH.HostKeyPath == "" {
		c.SSH.HostKeyPath = d.SSH.HostKeyPath
	}
	if c.SSH.IdleTimeout <= 0 {
		c.SSH.IdleTimeout = d.SSH.IdleTimeout
	}
	if c.Spectate.Address == "" {
		c.Spectate.Address = d.Spectate.Address
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	return c
}
