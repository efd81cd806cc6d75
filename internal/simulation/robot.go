package simulation

import (
	"robot-sim/internal/common"
)

const (
	// RobotSize is the diameter of a robot.
	RobotSize = 10.0
	// ObstacleSize is the side of an obstacle square.
	ObstacleSize = 20.0

	wallMargin = RobotSize / 2
)

// Input is the per-tick control state handed to the robots by the
// presentation layer.
type Input struct {
	Forward   bool
	TurnLeft  bool
	TurnRight bool
}

// Environment is the view of the room a robot needs to decide whether it can
// advance. The room owns its robots; robots only query it.
type Environment interface {
	ContainsPosition(p common.Point) bool
	Width() float64
	Height() float64
	// Collides reports whether a robot centered at p overlaps an obstacle.
	Collides(p common.Point) bool
}

// Robot defines the capabilities shared by every robot kind.
type Robot interface {
	// ID returns the user assigned identifier. Uniqueness is not enforced.
	ID() int
	Position() common.Point
	// Angle returns the heading in degrees within [0,360).
	Angle() float64
	Speed() float64
	// Odometer returns the distance travelled since creation.
	Odometer() float64
	Controlled() bool

	// Turn performs the in-place bounce turn.
	Turn()
	// TurnBy performs an externally driven turn.
	TurnBy(magnitude int)
	CanMove() bool
	// Move advances the robot by its speed along its heading and reports
	// whether the position changed.
	Move() bool
	// Advance runs one tick of the robot's policy for the given input.
	Advance(in Input) bool

	Record() RobotRecord
}

// body holds the state and movement rules common to all robot kinds.
type body struct {
	env      Environment
	id       int
	position common.Point
	angle    float64
	speed    float64
	odometer float64
}

func (b *body) ID() int {
	return b.id
}

func (b *body) Position() common.Point {
	return b.position
}

func (b *body) Angle() float64 {
	return b.angle
}

func (b *body) Speed() float64 {
	return b.speed
}

func (b *body) Odometer() float64 {
	return b.odometer
}

// next returns the candidate position one tick ahead.
func (b *body) next() common.Point {
	return b.position.Step(b.angle, b.speed)
}

// CanMove reports whether the candidate position is free. It never mutates
// the robot.
func (b *body) CanMove() bool {
	return canOccupy(b.env, b.next())
}

// advance moves the robot to its candidate position if it is free.
func (b *body) advance() bool {
	candidate := b.next()
	if !canOccupy(b.env, candidate) {
		return false
	}
	b.odometer += b.position.Distance(candidate)
	b.position = candidate
	return true
}

func (b *body) record(controlled bool, turnAngle float64) RobotRecord {
	return RobotRecord{
		Controlled:   controlled,
		ID:           b.id,
		X:            b.position.X,
		Y:            b.position.Y,
		CurrentAngle: b.angle,
		Speed:        b.speed,
		TurnAngle:    turnAngle,
	}
}

// canOccupy applies the movement rules: the point must lie in the room, keep
// a wall margin of half a robot and not overlap any obstacle.
func canOccupy(env Environment, p common.Point) bool {
	if !env.ContainsPosition(p) {
		return false
	}
	if p.X < wallMargin || p.Y < wallMargin || p.X > env.Width()-wallMargin || p.Y > env.Height()-wallMargin {
		return false
	}
	return !env.Collides(p)
}
