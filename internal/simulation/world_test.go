package simulation

import (
	"math"
	"testing"

	"robot-sim/internal/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNewWorldInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]float64{{0, 100}, {100, 0}, {-1, 100}, {100, -5}, {math.NaN(), 10}} {
		w, err := NewWorld(dims[0], dims[1])
		assert.Nil(t, w)
		assert.ErrorIs(t, err, ErrInvalidDimensions)
	}
}

func TestNewWorldDefaults(t *testing.T) {
	w, err := NewWorld(700, 500)
	require.NoError(t, err)
	assert.Equal(t, 700.0, w.Width())
	assert.Equal(t, 500.0, w.Height())
	assert.Equal(t, DefaultLogPath, w.FrameLog().Path())
	assert.Equal(t, DefaultSavePath, w.SavePath())
	assert.Regexp(t, `^room-[0-9a-f-]{8}$`, w.ID())
	assert.Empty(t, w.Robots())
	assert.Empty(t, w.Obstacles())
}

func TestContainsPosition(t *testing.T) {
	w := newTestWorld(t)
	assert.True(t, w.ContainsPosition(common.NewPoint(0, 0)))
	assert.True(t, w.ContainsPosition(common.NewPoint(699.99, 499.99)))
	assert.False(t, w.ContainsPosition(common.NewPoint(700, 10)))
	assert.False(t, w.ContainsPosition(common.NewPoint(10, 500)))
	assert.False(t, w.ContainsPosition(common.NewPoint(-0.01, 10)))
}

func TestContainsPositionRejectsOutside(t *testing.T) {
	w := newTestWorld(t)
	rapid.Check(t, func(t *rapid.T) {
		var p common.Point
		switch rapid.IntRange(0, 3).Draw(t, "side") {
		case 0:
			p = common.NewPoint(rapid.Float64Range(-1e6, -1e-9).Draw(t, "x"), rapid.Float64Range(-1e6, 1e6).Draw(t, "y"))
		case 1:
			p = common.NewPoint(rapid.Float64Range(700, 1e6).Draw(t, "x"), rapid.Float64Range(-1e6, 1e6).Draw(t, "y"))
		case 2:
			p = common.NewPoint(rapid.Float64Range(-1e6, 1e6).Draw(t, "x"), rapid.Float64Range(-1e6, -1e-9).Draw(t, "y"))
		default:
			p = common.NewPoint(rapid.Float64Range(-1e6, 1e6).Draw(t, "x"), rapid.Float64Range(500, 1e6).Draw(t, "y"))
		}
		if w.ContainsPosition(p) {
			t.Fatalf("%s reported inside a 700x500 room", p)
		}
	})
}

func TestCreateObstacle(t *testing.T) {
	w := newTestWorld(t)

	require.NoError(t, w.CreateObstacle(100, 100))
	assert.Len(t, w.Obstacles(), 1)
	assert.Equal(t, common.NewPoint(100, 100), w.Obstacles()[0].Position())

	// anywhere inside the existing square is taken, edges included
	assert.ErrorIs(t, w.CreateObstacle(110, 90), ErrOccupied)
	assert.ErrorIs(t, w.CreateObstacle(100, 100), ErrOccupied)
	assert.ErrorIs(t, w.CreateObstacle(700, 100), ErrOutOfBounds)
	assert.ErrorIs(t, w.CreateObstacle(-1, 100), ErrOutOfBounds)

	// overlapping squares are allowed as long as the center is free
	require.NoError(t, w.CreateObstacle(110.5, 100))
	assert.Len(t, w.Obstacles(), 2)
}

func TestObstacleAt(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.CreateObstacle(200, 200))

	assert.True(t, w.ObstacleAt(common.NewPoint(200, 200)))
	assert.True(t, w.ObstacleAt(common.NewPoint(190, 210)))
	assert.False(t, w.ObstacleAt(common.NewPoint(189.99, 200)))
	assert.False(t, w.ObstacleAt(common.NewPoint(50, 50)))
}

func TestObstacleAtManyObstacles(t *testing.T) {
	w := newTestWorld(t)
	for x := 10.0; x < 700; x += 40 {
		for y := 10.0; y < 500; y += 40 {
			require.NoError(t, w.CreateObstacle(x, y))
		}
	}
	for _, o := range w.Obstacles() {
		p := o.Position()
		assert.True(t, w.ObstacleAt(p))
		assert.True(t, w.ObstacleAt(common.NewPoint(p.X+ObstacleSize/2, p.Y-ObstacleSize/2)))
		assert.False(t, w.ObstacleAt(common.NewPoint(p.X+ObstacleSize/2+5, p.Y)))
	}
}

func TestRobotAt(t *testing.T) {
	w := newTestWorld(t)
	_, err := NewManualRobot(w, common.NewPoint(50, 50), 0, 1)
	require.NoError(t, err)

	assert.True(t, w.RobotAt(common.NewPoint(50, 50)))
	assert.True(t, w.RobotAt(common.NewPoint(55, 50)))
	assert.False(t, w.RobotAt(common.NewPoint(55.01, 50)))
}

func TestRobotFactoriesValidate(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.CreateObstacle(100, 100))
	_, err := NewManualRobot(w, common.NewPoint(300, 300), 0, 1)
	require.NoError(t, err)

	cases := map[string]struct {
		pos  common.Point
		want error
	}{
		"out of bounds": {common.NewPoint(800, 10), ErrOutOfBounds},
		"on robot":      {common.NewPoint(302, 301), ErrOccupied},
		"on obstacle":   {common.NewPoint(95, 105), ErrOccupied},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			m, err := NewManualRobot(w, tc.pos, 1, 1)
			assert.Nil(t, m)
			assert.ErrorIs(t, err, tc.want)

			a, err := NewAutoRobot(w, tc.pos, AutoParams{ID: 2, Speed: 1, TurnStep: 45, Clockwise: true})
			assert.Nil(t, a)
			assert.ErrorIs(t, err, tc.want)
		})
	}
	assert.Len(t, w.Robots(), 1)
}

func TestAddRobotRegistersOnce(t *testing.T) {
	w := newTestWorld(t)
	r, err := NewAutoRobot(w, common.NewPoint(40, 40), AutoParams{ID: 3, Speed: 1, TurnStep: 30, Clockwise: true})
	require.NoError(t, err)
	require.Len(t, w.Robots(), 1)
	assert.Same(t, r, w.Robots()[0])

	// a second registration of the same robot collides with itself
	assert.ErrorIs(t, w.AddRobot(r), ErrOccupied)
	assert.Len(t, w.Robots(), 1)
	assert.Equal(t, 1, w.NextRobotID())
}

func TestClear(t *testing.T) {
	w := newTestWorld(t)
	require.NoError(t, w.CreateObstacle(100, 100))
	_, err := NewManualRobot(w, common.NewPoint(50, 50), 0, 1)
	require.NoError(t, err)

	w.Clear()
	assert.Empty(t, w.Robots())
	assert.Empty(t, w.Obstacles())
	assert.False(t, w.ObstacleAt(common.NewPoint(100, 100)))
	assert.False(t, w.Collides(common.NewPoint(100, 100)))
}

func TestStepAdvancesEveryRobot(t *testing.T) {
	w := newTestWorld(t)
	manual, err := NewManualRobot(w, common.NewPoint(50, 50), 0, 1)
	require.NoError(t, err)
	auto, err := NewAutoRobot(w, common.NewPoint(200, 200), AutoParams{ID: 1, Speed: 2, TurnStep: 45, Clockwise: true})
	require.NoError(t, err)

	// without input only the autonomous robot moves
	assert.Equal(t, 1, w.Step(Input{}))
	assert.Equal(t, common.NewPoint(50, 50), manual.Position())
	assert.InDelta(t, 202, auto.Position().X, 1e-9)

	assert.Equal(t, 2, w.Step(Input{Forward: true}))
	assert.InDelta(t, 51, manual.Position().X, 1e-9)
	assert.InDelta(t, 204, auto.Position().X, 1e-9)
}

func TestRobotsStayInsideMargins(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w, err := NewWorld(200, 150)
		if err != nil {
			t.Fatalf("new world: %v", err)
		}
		for i, n := 0, rapid.IntRange(0, 6).Draw(t, "obstacles"); i < n; i++ {
			_ = w.CreateObstacle(rapid.Float64Range(0, 199).Draw(t, "ox"), rapid.Float64Range(0, 149).Draw(t, "oy"))
		}
		for i, n := 0, rapid.IntRange(1, 6).Draw(t, "robots"); i < n; i++ {
			pos := common.NewPoint(rapid.Float64Range(5, 195).Draw(t, "rx"), rapid.Float64Range(5, 145).Draw(t, "ry"))
			_, _ = NewAutoRobot(w, pos, AutoParams{
				ID:        i,
				Speed:     rapid.Float64Range(0.1, 4).Draw(t, "speed"),
				TurnStep:  rapid.Float64Range(1, 180).Draw(t, "step"),
				Clockwise: rapid.Bool().Draw(t, "cw"),
				Angle:     rapid.Float64Range(0, 359).Draw(t, "angle"),
			})
		}

		for tick := 0; tick < 200; tick++ {
			for _, r := range w.Robots() {
				before := r.Position()
				can := r.CanMove()
				if can != r.CanMove() {
					t.Fatalf("CanMove is not stable for robot %d", r.ID())
				}
				moved := r.Move()
				if moved != can {
					t.Fatalf("Move returned %v, CanMove %v", moved, can)
				}
				if !moved && r.Position() != before {
					t.Fatalf("blocked robot %d moved from %s to %s", r.ID(), before, r.Position())
				}
				if moved {
					p := r.Position()
					if p.X < wallMargin || p.Y < wallMargin || p.X > 200-wallMargin || p.Y > 150-wallMargin {
						t.Fatalf("robot %d left the margins: %s", r.ID(), p)
					}
					if w.Collides(p) {
						t.Fatalf("robot %d entered an obstacle at %s", r.ID(), p)
					}
				}
			}
		}
	})
}
