package core

import (
	"errors"
	"fmt"
)

var (
	// ErrTeleporterOverflow is returned when a third teleporter shares a symbol.
	ErrTeleporterOverflow = errors.New("more than two teleporters share a symbol")
	// ErrUnpaired is returned when a teleporter has no counterpart.
	ErrUnpaired = errors.New("teleporter has no counterpart")
)

// Level format error codes.
const (
	CodeNoPlayer           = "NO_PLAYER"
	CodeUnpairedTeleporter = "UNPAIRED_TELEPORTER"
	CodeTeleporterOverflow = "TELEPORTER_OVERFLOW"
)

// LevelFormatError reports a level description that parses but cannot be
// played.
type LevelFormatError struct {
	Source  string
	Code    string
	Message string
	Err     error
}

func (e *LevelFormatError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("[%s] %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: [%s] %s", e.Source, e.Code, e.Message)
}

func (e *LevelFormatError) Unwrap() error { return e.Err }

// SourceReadError reports a level source that could not be opened or read.
type SourceReadError struct {
	Source string
	Err    error
}

func (e *SourceReadError) Error() string {
	return fmt.Sprintf("reading level %s: %v", e.Source, e.Err)
}

func (e *SourceReadError) Unwrap() error { return e.Err }
