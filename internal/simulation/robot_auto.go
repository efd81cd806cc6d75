package simulation

import (
	"fmt"
	"math"
	"robot-sim/internal/common"
)

// AutoParams configures an autonomous robot.
type AutoParams struct {
	ID int
	// ViewDistance is kept for the command surface; movement does not use it.
	ViewDistance int
	Speed        float64
	// Clockwise selects the direction of every turn.
	Clockwise bool
	// TurnStep is the rotation in degrees of a bounce turn and of each unit
	// of an explicit turn.
	TurnStep float64
	// Angle is the starting heading in degrees.
	Angle float64
}

// AutoRobot moves on its own and turns in place whenever it is blocked.
type AutoRobot struct {
	body
	viewDistance int
	clockwise    bool
	turnStep     float64
}

var _ Robot = (*AutoRobot)(nil)

// NewAutoRobot creates an autonomous robot and registers it in the world. It
// returns nil and an error if the position is outside the room, on another
// robot or on an obstacle.
func NewAutoRobot(w *World, pos common.Point, params AutoParams) (*AutoRobot, error) {
	if err := w.placeable(pos); err != nil {
		return nil, err
	}
	r := &AutoRobot{
		body: body{
			env:      w,
			id:       params.ID,
			position: pos,
			angle:    common.WrapDegrees(params.Angle),
			speed:    params.Speed,
		},
		viewDistance: params.ViewDistance,
		clockwise:    params.Clockwise,
		turnStep:     params.TurnStep,
	}
	if err := w.AddRobot(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *AutoRobot) Controlled() bool {
	return false
}

func (r *AutoRobot) Clockwise() bool {
	return r.clockwise
}

func (r *AutoRobot) TurnStep() float64 {
	return r.turnStep
}

func (r *AutoRobot) ViewDistance() int {
	return r.viewDistance
}

// TurnBy rotates by magnitude*TurnStep degrees. Counter-clockwise turns add
// 360 minus the clockwise delta.
func (r *AutoRobot) TurnBy(magnitude int) {
	r.rotate(float64(magnitude) * r.turnStep)
}

// Turn rotates by TurnStep in the configured direction.
func (r *AutoRobot) Turn() {
	r.rotate(r.turnStep)
}

func (r *AutoRobot) rotate(delta float64) {
	if r.clockwise {
		r.angle = common.WrapDegrees(r.angle + delta)
		return
	}
	r.angle = common.WrapDegrees(r.angle + (360 - math.Mod(delta, 360)))
}

// Move advances the robot, or bounce-turns it when the way is blocked.
func (r *AutoRobot) Move() bool {
	if r.advance() {
		return true
	}
	r.Turn()
	return false
}

// Advance ignores the input.
func (r *AutoRobot) Advance(Input) bool {
	return r.Move()
}

func (r *AutoRobot) Record() RobotRecord {
	return r.record(false, r.turnStep)
}

func (r *AutoRobot) String() string {
	dir := "cw"
	if !r.clockwise {
		dir = "ccw"
	}
	return fmt.Sprintf("AutoRobot[%d] Pos: %s Angle: %.1f Speed: %.2f Turn: %.1f %s", r.id, r.position, r.angle, r.speed, r.turnStep, dir)
}
