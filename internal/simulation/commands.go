package simulation

import (
	"robot-sim/internal/common"
)

// Command is a request from the presentation layer applied on the tick
// goroutine.
type Command interface {
	Name() string
	Apply(d *Driver) error
}

// CreateObstacle adds an obstacle centered at At.
type CreateObstacle struct {
	At common.Point
}

func (CreateObstacle) Name() string { return "create-obstacle" }

func (c CreateObstacle) Apply(d *Driver) error {
	return d.world.CreateObstacleAt(c.At)
}

// AddManualRobot adds a keyboard driven robot.
type AddManualRobot struct {
	At    common.Point
	ID    int
	Speed float64
}

func (AddManualRobot) Name() string { return "add-manual-robot" }

func (c AddManualRobot) Apply(d *Driver) error {
	_, err := NewManualRobot(d.world, c.At, c.ID, c.Speed)
	return err
}

// AddAutoRobot adds an autonomous robot.
type AddAutoRobot struct {
	At     common.Point
	Params AutoParams
}

func (AddAutoRobot) Name() string { return "add-auto-robot" }

func (c AddAutoRobot) Apply(d *Driver) error {
	_, err := NewAutoRobot(d.world, c.At, c.Params)
	return err
}

type StartRecording struct{}

func (StartRecording) Name() string { return "start-recording" }

func (StartRecording) Apply(d *Driver) error { return d.StartRecording() }

type StopRecording struct{}

func (StopRecording) Name() string { return "stop-recording" }

func (StopRecording) Apply(d *Driver) error { return d.StopRecording() }

type SaveState struct{}

func (SaveState) Name() string { return "save" }

func (SaveState) Apply(d *Driver) error { return d.Save() }

// LoadState replaces the room with the snapshot stored at Path.
type LoadState struct {
	Path string
}

func (LoadState) Name() string { return "load" }

func (c LoadState) Apply(d *Driver) error { return d.Load(c.Path) }

type ClearRoom struct{}

func (ClearRoom) Name() string { return "clear" }

func (ClearRoom) Apply(d *Driver) error {
	d.Clear()
	return nil
}

type TogglePlay struct{}

func (TogglePlay) Name() string { return "toggle-play" }

func (TogglePlay) Apply(d *Driver) error {
	d.TogglePlay()
	return nil
}

// RewindLog plays the log backwards, calling OnFrame after each loaded frame.
type RewindLog struct {
	OnFrame func(frame int)
}

func (RewindLog) Name() string { return "rewind" }

func (c RewindLog) Apply(d *Driver) error {
	_, err := d.Rewind(c.OnFrame)
	return err
}
