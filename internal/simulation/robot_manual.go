package simulation

import (
	"fmt"
	"robot-sim/internal/common"
)

const (
	manualTurnStep   = 10.0
	manualBounceStep = 45.0
	// manualTurnAngle is the turnAngle written for manual robots in snapshots.
	manualTurnAngle = 1.0
)

// ManualRobot is driven by keyboard input.
type ManualRobot struct {
	body
}

var _ Robot = (*ManualRobot)(nil)

// NewManualRobot creates a manual robot heading along +X and registers it in
// the world. It returns nil and an error if the position is outside the room,
// on another robot or on an obstacle.
func NewManualRobot(w *World, pos common.Point, id int, speed float64) (*ManualRobot, error) {
	return spawnManual(w, pos, id, speed, 0)
}

func spawnManual(w *World, pos common.Point, id int, speed, angle float64) (*ManualRobot, error) {
	if err := w.placeable(pos); err != nil {
		return nil, err
	}
	r := &ManualRobot{body: body{
		env:      w,
		id:       id,
		position: pos,
		angle:    common.WrapDegrees(angle),
		speed:    speed,
	}}
	if err := w.AddRobot(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *ManualRobot) Controlled() bool {
	return true
}

// TurnBy rotates by a fixed 10° step: clockwise for a positive magnitude,
// counter-clockwise otherwise. The magnitude's value is ignored.
func (r *ManualRobot) TurnBy(magnitude int) {
	if magnitude > 0 {
		r.angle = common.WrapDegrees(r.angle + manualTurnStep)
	} else {
		r.angle = common.WrapDegrees(r.angle + (360 - manualTurnStep))
	}
}

// Turn rotates by 45°.
func (r *ManualRobot) Turn() {
	r.angle = common.WrapDegrees(r.angle + manualBounceStep)
}

// Move advances the robot. A blocked manual robot stays where it is and keeps
// its heading.
func (r *ManualRobot) Move() bool {
	return r.advance()
}

// Advance moves forward first, then applies the turn keys.
func (r *ManualRobot) Advance(in Input) bool {
	moved := false
	if in.Forward {
		moved = r.Move()
	}
	if in.TurnRight {
		r.TurnBy(1)
	}
	if in.TurnLeft {
		r.TurnBy(-1)
	}
	return moved
}

func (r *ManualRobot) Record() RobotRecord {
	return r.record(true, manualTurnAngle)
}

func (r *ManualRobot) String() string {
	return fmt.Sprintf("ManualRobot[%d] Pos: %s Angle: %.1f Speed: %.2f", r.id, r.position, r.angle, r.speed)
}
