package simulation

import (
	"encoding/json"
	"fmt"
	"os"
	"robot-sim/internal/common"

	"go.uber.org/zap"
)

// LoadReport counts what Load created and what it dropped.
type LoadReport struct {
	Robots           int
	Obstacles        int
	DroppedRobots    int
	DroppedObstacles int
}

// Dropped returns the number of records that failed validation.
func (r LoadReport) Dropped() int {
	return r.DroppedRobots + r.DroppedObstacles
}

// Load replaces the room's content with s. Obstacles are created first, then
// robots. Any record that fails validated construction is skipped.
func (w *World) Load(s Snapshot) LoadReport {
	w.Clear()

	var rep LoadReport
	for _, rec := range s.Obstacles {
		if err := w.CreateObstacle(rec.X, rec.Y); err != nil {
			rep.DroppedObstacles++
			continue
		}
		rep.Obstacles++
	}

	for _, rec := range s.Robots {
		pos := common.NewPoint(rec.X, rec.Y)
		var err error
		if rec.Controlled {
			_, err = spawnManual(w, pos, rec.ID, rec.Speed, rec.CurrentAngle)
		} else {
			_, err = NewAutoRobot(w, pos, AutoParams{
				ID:           rec.ID,
				ViewDistance: 1,
				Speed:        rec.Speed,
				Clockwise:    true,
				TurnStep:     rec.TurnAngle,
				Angle:        rec.CurrentAngle,
			})
		}
		if err != nil {
			rep.DroppedRobots++
			continue
		}
		rep.Robots++
	}

	if rep.Dropped() > 0 {
		w.logger.Warn("snapshot records dropped",
			zap.Int("robots", rep.DroppedRobots),
			zap.Int("obstacles", rep.DroppedObstacles))
	}
	return rep
}

// Preload reads one snapshot from path and loads it. On failure the room is
// left empty.
func (w *World) Preload(path string) (LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		w.Clear()
		if isNotExist(err) {
			w.logger.Warn("state file missing", zap.String("path", path))
		}
		return LoadReport{}, &IOError{Op: "load", Path: path, Err: err}
	}
	defer f.Close()

	s, err := DecodeSnapshot(f)
	if err != nil {
		w.Clear()
		return LoadReport{}, &ParseError{Path: path, Err: err}
	}
	rep := w.Load(s)
	w.logger.Info("state loaded", zap.String("path", path),
		zap.Int("robots", rep.Robots), zap.Int("obstacles", rep.Obstacles))
	return rep, nil
}

// Save writes the current state as one snapshot to the save path.
func (w *World) Save() error {
	data, err := json.MarshalIndent(w.Snapshot(), "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := os.WriteFile(w.savePath, append(data, '\n'), 0o644); err != nil {
		return &IOError{Op: "save", Path: w.savePath, Err: err}
	}
	w.logger.Info("state saved", zap.String("path", w.savePath))
	return nil
}

// Log appends the current state to the frame log.
func (w *World) Log() error {
	return w.frames.Append(w.Snapshot())
}

// StopLog seals the frame log. It is a no-op when nothing was logged.
func (w *World) StopLog() error {
	return w.frames.Seal()
}

// ClearLog truncates the frame log.
func (w *World) ClearLog() error {
	return w.frames.Clear()
}

// Rewind replays the recorded frames from the last to the first. Each frame
// is loaded into the room and onFrame is called with its index. An open log
// is sealed first. On failure the room is left empty.
func (w *World) Rewind(onFrame func(frame int)) (int, error) {
	if err := w.frames.Seal(); err != nil {
		w.Clear()
		return 0, err
	}

	lg, err := w.frames.Read()
	if err != nil {
		w.Clear()
		return 0, err
	}
	w.Clear()
	if len(lg.Frames) == 0 {
		return 0, fmt.Errorf("%s: %w", w.frames.Path(), ErrEmptyLog)
	}

	w.logger.Info("rewind started", zap.Int("frames", len(lg.Frames)))
	for i := len(lg.Frames) - 1; i >= 0; i-- {
		w.Load(lg.Frames[i])
		if onFrame != nil {
			onFrame(i)
		}
	}
	w.logger.Info("rewind finished")
	return len(lg.Frames), nil
}
