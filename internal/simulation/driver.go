package simulation

import (
	"sync"

	"go.uber.org/zap"
)

// Driver owns a World and advances it once per Tick. It carries the
// play/pause toggle and the recording state. Only the goroutine calling Tick
// may touch the World; other goroutines hand work over through Submit.
type Driver struct {
	world  *World
	logger *zap.Logger

	mu      sync.Mutex
	pending []Command

	running   bool
	recording bool
	ticks     uint64
}

// NewDriver creates a driver that starts in the playing state.
func NewDriver(world *World, logger *zap.Logger) *Driver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		world:   world,
		logger:  logger.With(zap.String("room", world.ID())),
		running: true,
	}
}

func (d *Driver) World() *World {
	return d.world
}

func (d *Driver) Running() bool {
	return d.running
}

func (d *Driver) Recording() bool {
	return d.recording
}

// Ticks returns the number of ticks that advanced the world.
func (d *Driver) Ticks() uint64 {
	return d.ticks
}

// Submit queues commands for the next Tick. It is safe for concurrent use.
func (d *Driver) Submit(cmds ...Command) {
	d.mu.Lock()
	d.pending = append(d.pending, cmds...)
	d.mu.Unlock()
}

// Tick applies queued commands, then advances the world if playing and logs
// a frame if recording. Failures are logged and never stop the loop.
func (d *Driver) Tick(in Input) {
	d.drain()
	if !d.running {
		return
	}
	d.world.Step(in)
	d.ticks++
	if d.recording {
		if err := d.world.Log(); err != nil {
			d.logger.Error("recording stopped", zap.Error(err))
			d.recording = false
		}
	}
}

func (d *Driver) drain() {
	d.mu.Lock()
	cmds := d.pending
	d.pending = nil
	d.mu.Unlock()

	for _, cmd := range cmds {
		if err := cmd.Apply(d); err != nil {
			d.logger.Warn("command failed", zap.String("command", cmd.Name()), zap.Error(err))
		}
	}
}

func (d *Driver) Play() {
	d.running = true
}

func (d *Driver) Pause() {
	d.running = false
}

func (d *Driver) TogglePlay() {
	d.running = !d.running
}

// StartRecording truncates the log and records one frame per tick from now on.
func (d *Driver) StartRecording() error {
	if err := d.world.ClearLog(); err != nil {
		return err
	}
	d.recording = true
	d.logger.Info("recording started", zap.String("path", d.world.FrameLog().Path()))
	return nil
}

// StopRecording seals the log.
func (d *Driver) StopRecording() error {
	if !d.recording {
		return d.world.StopLog()
	}
	d.recording = false
	if err := d.world.StopLog(); err != nil {
		return err
	}
	d.logger.Info("recording stopped", zap.Int("frames", d.world.FrameLog().Frames()))
	return nil
}

// Rewind stops recording, then plays the log backwards with the loop
// paused. The previous play state is restored afterwards.
func (d *Driver) Rewind(onFrame func(frame int)) (int, error) {
	if err := d.StopRecording(); err != nil {
		return 0, err
	}
	wasRunning := d.running
	d.running = false
	defer func() { d.running = wasRunning }()
	return d.world.Rewind(onFrame)
}

func (d *Driver) Save() error {
	return d.world.Save()
}

// Load replaces the room with the snapshot stored at path.
func (d *Driver) Load(path string) error {
	_, err := d.world.Preload(path)
	return err
}

func (d *Driver) Clear() {
	d.world.Clear()
}
