package simulation

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

const (
	logHeader  = "{ \"frames\": [\n"
	logSep     = ",\n"
	logTrailer = "\n] }\n"
)

// FrameLog writes snapshots into a `{ "frames": [...] }` document one frame
// at a time. The array stays open between Append calls and is closed by
// Seal; every Append is flushed so the file always holds whole frames.
type FrameLog struct {
	path   string
	file   *os.File
	buf    *bufio.Writer
	open   bool
	frames int
}

// NewFrameLog creates a log writer for path. The file is not touched until
// the first Clear or Append.
func NewFrameLog(path string) *FrameLog {
	return &FrameLog{path: path}
}

func (l *FrameLog) Path() string {
	return l.path
}

// IsOpen reports whether the frames array has been started and not sealed.
func (l *FrameLog) IsOpen() bool {
	return l.open
}

// Frames returns the number of frames appended since the last Clear.
func (l *FrameLog) Frames() int {
	return l.frames
}

// Clear truncates the log file to empty.
func (l *FrameLog) Clear() error {
	l.release()
	l.frames = 0
	if err := os.WriteFile(l.path, nil, 0o644); err != nil {
		return &IOError{Op: "clear", Path: l.path, Err: err}
	}
	return nil
}

// Append writes s as the next element of the frames array, starting the
// document if the file is empty.
func (l *FrameLog) Append(s Snapshot) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}

	sep := logSep
	if !l.open {
		if err := l.start(); err != nil {
			return err
		}
		sep = logHeader
	}

	if _, err := l.buf.WriteString(sep); err != nil {
		return &IOError{Op: "append", Path: l.path, Err: err}
	}
	if _, err := l.buf.Write(data); err != nil {
		return &IOError{Op: "append", Path: l.path, Err: err}
	}
	if err := l.buf.Flush(); err != nil {
		return &IOError{Op: "append", Path: l.path, Err: err}
	}
	l.frames++
	return nil
}

// start opens the file for a new frames array. The file must be empty.
func (l *FrameLog) start() error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return &IOError{Op: "open", Path: l.path, Err: err}
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return &IOError{Op: "stat", Path: l.path, Err: err}
	}
	if info.Size() > 0 {
		_ = f.Close()
		return fmt.Errorf("%s: %w", l.path, ErrLogNotCleared)
	}
	l.file = f
	l.buf = bufio.NewWriter(f)
	l.open = true
	return nil
}

// Seal closes the frames array, leaving a valid JSON document. It is a no-op
// when no array is open.
func (l *FrameLog) Seal() error {
	if !l.open {
		return nil
	}
	defer l.release()
	if _, err := l.buf.WriteString(logTrailer); err != nil {
		return &IOError{Op: "seal", Path: l.path, Err: err}
	}
	if err := l.buf.Flush(); err != nil {
		return &IOError{Op: "seal", Path: l.path, Err: err}
	}
	return nil
}

// Close seals the log and releases the file.
func (l *FrameLog) Close() error {
	return l.Seal()
}

func (l *FrameLog) release() {
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = nil
	l.buf = nil
	l.open = false
}

// Read parses the whole log file.
func (l *FrameLog) Read() (Log, error) {
	return ReadLog(l.path)
}

// ReadLog parses a sealed log file.
func ReadLog(path string) (Log, error) {
	f, err := os.Open(path)
	if err != nil {
		return Log{}, &IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return Log{}, &IOError{Op: "stat", Path: path, Err: err}
	}
	if info.Size() == 0 {
		return Log{}, fmt.Errorf("%s: %w", path, ErrEmptyLog)
	}

	lg, err := DecodeLog(f)
	if err != nil {
		return Log{}, &ParseError{Path: path, Err: err}
	}
	return lg, nil
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
