package simulation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimensions is returned when a room is created with a
	// non-positive width or height.
	ErrInvalidDimensions = errors.New("room dimensions must be positive")
	// ErrOutOfBounds is returned when an entity is placed outside the room.
	ErrOutOfBounds = errors.New("position is outside the room")
	// ErrOccupied is returned when an entity is placed on top of another one.
	ErrOccupied = errors.New("position is occupied")
	// ErrEmptyLog is returned when rewinding a log that holds no frames.
	ErrEmptyLog = errors.New("log is empty")
	// ErrLogNotCleared is returned when appending to a log file that already
	// holds a previous recording.
	ErrLogNotCleared = errors.New("log holds a previous recording, clear it first")
)

// IOError reports a recoverable failure reading or writing a state file.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// ParseError reports a state file that is not valid snapshot or log JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
