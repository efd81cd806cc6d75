package config

import (
	"fmt"
	"robot-sim/internal/common"
	"robot-sim/internal/simulation"

	"go.uber.org/multierr"
)

// NewWorld creates the room described by the configuration.
func (c *Config) NewWorld(opts ...simulation.Option) (*simulation.World, error) {
	opts = append([]simulation.Option{
		simulation.WithLogPath(c.LogPath),
		simulation.WithSavePath(c.SavePath),
	}, opts...)
	return simulation.NewWorld(c.Room.Width, c.Room.Height, opts...)
}

// Build places the scenario obstacles and robots into w. Entries that cannot
// be placed are skipped; their errors are combined in the result.
func (c *Config) Build(w *simulation.World) error {
	var err error
	for i, o := range c.Scenario.Obstacles {
		if e := w.CreateObstacle(o.X, o.Y); e != nil {
			err = multierr.Append(err, fmt.Errorf("scenario obstacle %d: %w", i, e))
		}
	}
	for i, r := range c.Scenario.Robots {
		pos := common.NewPoint(r.X, r.Y)
		speed := r.Speed
		if speed == 0 {
			speed = c.Defaults.Speed
		}
		var e error
		switch r.Kind {
		case KindManual:
			_, e = simulation.NewManualRobot(w, pos, r.ID, speed)
		case KindAuto:
			step := r.TurnStep
			if step == 0 {
				step = c.Defaults.TurnStep
			}
			view := r.ViewDistance
			if view == 0 {
				view = 1
			}
			_, e = simulation.NewAutoRobot(w, pos, simulation.AutoParams{
				ID:           r.ID,
				ViewDistance: view,
				Speed:        speed,
				Clockwise:    r.IsClockwise(c.Defaults),
				TurnStep:     step,
				Angle:        r.Angle,
			})
		default:
			e = fmt.Errorf("unknown kind %q", r.Kind)
		}
		if e != nil {
			err = multierr.Append(err, fmt.Errorf("scenario robot %d: %w", i, e))
		}
	}
	return err
}
