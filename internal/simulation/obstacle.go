package simulation

import (
	"fmt"
	"robot-sim/internal/common"

	"github.com/dhconnelly/rtreego"
)

// searchPadding widens index queries so that shapes touching on an edge are
// still returned to the exact checks.
const searchPadding = 1e-6

// Obstacle is a fixed square of ObstacleSize centered at its position.
type Obstacle struct {
	position common.Point
}

func newObstacle(pos common.Point) *Obstacle {
	return &Obstacle{position: pos}
}

// Position returns the center of the obstacle.
func (o *Obstacle) Position() common.Point {
	return o.position
}

// Bounds implements rtreego.Spatial.
func (o *Obstacle) Bounds() rtreego.Rect {
	return squareRect(o.position, ObstacleSize/2)
}

// Covers reports whether p lies inside the obstacle's square, edges included.
func (o *Obstacle) Covers(p common.Point) bool {
	return common.InSquare(o.position, ObstacleSize/2, p)
}

// Hits reports whether a robot centered at p overlaps the obstacle.
func (o *Obstacle) Hits(p common.Point) bool {
	closest := common.ClosestPointOnSquare(o.position, ObstacleSize/2, p)
	return p.Distance(closest) < RobotSize/2
}

func (o *Obstacle) record() ObstacleRecord {
	return ObstacleRecord{X: o.position.X, Y: o.position.Y}
}

func (o *Obstacle) String() string {
	return fmt.Sprintf("Obstacle Pos: %s", o.position)
}

func squareRect(center common.Point, halfSize float64) rtreego.Rect {
	r, _ := rtreego.NewRect(
		rtreego.Point{center.X - halfSize, center.Y - halfSize},
		[]float64{2 * halfSize, 2 * halfSize},
	)
	return r
}

// obstacleIndex is the broad phase for obstacle queries.
type obstacleIndex struct {
	tree *rtreego.Rtree
}

func newObstacleIndex() *obstacleIndex {
	return &obstacleIndex{tree: rtreego.NewTree(2, 25, 50)}
}

func (ix *obstacleIndex) insert(o *Obstacle) {
	ix.tree.Insert(o)
}

// near returns the obstacles whose squares may intersect the square of the
// given half size around center.
func (ix *obstacleIndex) near(center common.Point, halfSize float64) []*Obstacle {
	if ix.tree.Size() == 0 {
		return nil
	}
	matches := ix.tree.SearchIntersect(squareRect(center, halfSize+searchPadding))
	obstacles := make([]*Obstacle, 0, len(matches))
	for _, m := range matches {
		obstacles = append(obstacles, m.(*Obstacle))
	}
	return obstacles
}
