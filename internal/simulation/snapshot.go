package simulation

import (
	"encoding/json"
	"io"
)

// RobotRecord is the serialized form of a robot.
type RobotRecord struct {
	Controlled   bool    `json:"Controlled"`
	ID           int     `json:"id"`
	X            float64 `json:"x"`
	Y            float64 `json:"y"`
	CurrentAngle float64 `json:"currentAngle"`
	Speed        float64 `json:"speed"`
	TurnAngle    float64 `json:"turnAngle"`
}

// ObstacleRecord is the serialized form of an obstacle.
type ObstacleRecord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Snapshot is one serialized instant of the room.
type Snapshot struct {
	Robots    []RobotRecord    `json:"robots"`
	Obstacles []ObstacleRecord `json:"obstacles"`
}

// Log is the sequence of snapshots recorded during a session.
type Log struct {
	Frames []Snapshot `json:"frames"`
}

// Snapshot captures the current state of the room.
func (w *World) Snapshot() Snapshot {
	s := Snapshot{
		Robots:    make([]RobotRecord, 0, len(w.robots)),
		Obstacles: make([]ObstacleRecord, 0, len(w.obstacles)),
	}
	for _, r := range w.robots {
		s.Robots = append(s.Robots, r.Record())
	}
	for _, o := range w.obstacles {
		s.Obstacles = append(s.Obstacles, o.record())
	}
	return s
}

// MarshalJSON encodes the room as a Snapshot.
func (w *World) MarshalJSON() ([]byte, error) {
	return json.Marshal(w.Snapshot())
}

// DecodeSnapshot reads one snapshot document.
func DecodeSnapshot(r io.Reader) (Snapshot, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Snapshot{}, err
	}
	return s, nil
}

// DecodeLog reads a log document.
func DecodeLog(r io.Reader) (Log, error) {
	var l Log
	if err := json.NewDecoder(r).Decode(&l); err != nil {
		return Log{}, err
	}
	return l, nil
}
