package simulation

import (
	"math"
	"math/rand"
	"robot-sim/internal/common"
)

// obstacleGrid is the spacing obstacles snap to.
const obstacleGrid = ObstacleSize

// SnapObstacle moves p down onto the obstacle grid and clamps it so the whole
// square stays inside a width x height room.
func SnapObstacle(p common.Point, width, height float64) common.Point {
	x := p.X - math.Mod(p.X, obstacleGrid)
	y := p.Y - math.Mod(p.Y, obstacleGrid)
	return common.NewPoint(
		clampInside(x, ObstacleSize/2, width),
		clampInside(y, ObstacleSize/2, height),
	)
}

// ClampRobot clamps p so a robot centered there stays inside the room.
func ClampRobot(p common.Point, width, height float64) common.Point {
	return common.NewPoint(
		clampInside(p.X, RobotSize/2, width),
		clampInside(p.Y, RobotSize/2, height),
	)
}

// RandomPosition picks a position anywhere in the room. It is used when the
// caller gives no coordinates.
func RandomPosition(rng *rand.Rand, width, height float64) common.Point {
	p := common.RandomPoint(rng, width, height)
	return common.NewPoint(math.Floor(p.X), math.Floor(p.Y))
}

func clampInside(v, margin, size float64) float64 {
	if v < margin {
		return margin
	}
	if v > size-margin {
		return size - margin
	}
	return v
}
