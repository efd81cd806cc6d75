package simulation

import (
	"fmt"
	"robot-sim/internal/common"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultLogPath  = "log.json"
	DefaultSavePath = "save.json"
)

// World is the bounded room. It exclusively owns its robots and obstacles and
// is not safe for concurrent use; see Driver for a single-owner tick loop.
type World struct {
	id        string
	width     float64
	height    float64
	robots    []Robot
	obstacles []*Obstacle
	index     *obstacleIndex

	frames   *FrameLog
	savePath string
	logger   *zap.Logger
}

var _ Environment = (*World)(nil)

// Option configures a World.
type Option func(*World)

// WithLogger sets the logger used for rejected placements and file I/O.
func WithLogger(logger *zap.Logger) Option {
	return func(w *World) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithLogPath sets the file frames are recorded to.
func WithLogPath(path string) Option {
	return func(w *World) {
		w.frames = NewFrameLog(path)
	}
}

// WithSavePath sets the file Save writes to.
func WithSavePath(path string) Option {
	return func(w *World) {
		w.savePath = path
	}
}

// NewWorld creates an empty room of the given size.
func NewWorld(width, height float64, opts ...Option) (*World, error) {
	if !(width > 0) || !(height > 0) {
		return nil, fmt.Errorf("%w: got %vx%v", ErrInvalidDimensions, width, height)
	}

	w := &World{
		id:       fmt.Sprintf("room-%s", uuid.NewString()[:8]),
		width:    width,
		height:   height,
		index:    newObstacleIndex(),
		frames:   NewFrameLog(DefaultLogPath),
		savePath: DefaultSavePath,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With(zap.String("room", w.id))
	return w, nil
}

// ID returns the generated identifier used to correlate log lines.
func (w *World) ID() string {
	return w.id
}

func (w *World) Width() float64 {
	return w.width
}

func (w *World) Height() float64 {
	return w.height
}

// FrameLog returns the recorder frames are written to.
func (w *World) FrameLog() *FrameLog {
	return w.frames
}

// SavePath returns the file Save writes to.
func (w *World) SavePath() string {
	return w.savePath
}

// ContainsPosition reports whether p lies in [0,width)x[0,height).
func (w *World) ContainsPosition(p common.Point) bool {
	return p.X >= 0 && p.X < w.width && p.Y >= 0 && p.Y < w.height
}

// AddRobot registers r if its position is inside the room and no other robot
// is there.
func (w *World) AddRobot(r Robot) error {
	p := r.Position()
	if !w.ContainsPosition(p) {
		return fmt.Errorf("add robot %d at %s: %w", r.ID(), p, ErrOutOfBounds)
	}
	if w.RobotAt(p) {
		return fmt.Errorf("add robot %d at %s: %w", r.ID(), p, ErrOccupied)
	}
	w.robots = append(w.robots, r)
	return nil
}

// placeable is the validation shared by the robot factories.
func (w *World) placeable(p common.Point) error {
	switch {
	case !w.ContainsPosition(p):
		w.logger.Debug("robot rejected", zap.Stringer("pos", p), zap.String("reason", "out of bounds"))
		return fmt.Errorf("robot at %s: %w", p, ErrOutOfBounds)
	case w.RobotAt(p):
		w.logger.Debug("robot rejected", zap.Stringer("pos", p), zap.String("reason", "robot"))
		return fmt.Errorf("robot at %s: %w", p, ErrOccupied)
	case w.ObstacleAt(p):
		w.logger.Debug("robot rejected", zap.Stringer("pos", p), zap.String("reason", "obstacle"))
		return fmt.Errorf("robot at %s: %w", p, ErrOccupied)
	}
	return nil
}

// CreateObstacleAt adds an obstacle centered at p if p is inside the room and
// not covered by another obstacle.
func (w *World) CreateObstacleAt(p common.Point) error {
	if !w.ContainsPosition(p) {
		w.logger.Debug("obstacle rejected", zap.Stringer("pos", p), zap.String("reason", "out of bounds"))
		return fmt.Errorf("obstacle at %s: %w", p, ErrOutOfBounds)
	}
	if w.ObstacleAt(p) {
		w.logger.Debug("obstacle rejected", zap.Stringer("pos", p), zap.String("reason", "obstacle"))
		return fmt.Errorf("obstacle at %s: %w", p, ErrOccupied)
	}
	o := newObstacle(p)
	w.obstacles = append(w.obstacles, o)
	w.index.insert(o)
	return nil
}

// CreateObstacle is CreateObstacleAt for raw coordinates.
func (w *World) CreateObstacle(x, y float64) error {
	return w.CreateObstacleAt(common.NewPoint(x, y))
}

// ObstacleAt reports whether p lies inside any obstacle square.
func (w *World) ObstacleAt(p common.Point) bool {
	for _, o := range w.index.near(p, 0) {
		if o.Covers(p) {
			return true
		}
	}
	return false
}

// RobotAt reports whether a robot center lies within half a robot of p.
func (w *World) RobotAt(p common.Point) bool {
	for _, r := range w.robots {
		if p.Distance(r.Position()) <= RobotSize/2 {
			return true
		}
	}
	return false
}

// Collides reports whether a robot centered at p overlaps any obstacle.
func (w *World) Collides(p common.Point) bool {
	for _, o := range w.index.near(p, RobotSize/2) {
		if o.Hits(p) {
			return true
		}
	}
	return false
}

// Robots returns the live robot list in insertion order.
func (w *World) Robots() []Robot {
	return w.robots
}

// Obstacles returns the live obstacle list in insertion order.
func (w *World) Obstacles() []*Obstacle {
	return w.obstacles
}

// NextRobotID returns the id the command surface assigns to a new robot.
func (w *World) NextRobotID() int {
	return len(w.robots)
}

// Clear removes every robot and obstacle.
func (w *World) Clear() {
	w.robots = nil
	w.obstacles = nil
	w.index = newObstacleIndex()
}

// Step advances every robot by one tick. Manual robots act on in, autonomous
// robots ignore it. It returns the number of robots that moved.
func (w *World) Step(in Input) int {
	moved := 0
	for _, r := range w.robots {
		if r.Advance(in) {
			moved++
		}
	}
	return moved
}

// String prints the current state of the room.
func (w *World) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Room[%s] %.0fx%.0f\n", w.id, w.width, w.height)
	sb.WriteString("Robots:\n")
	if len(w.robots) == 0 {
		sb.WriteString("  None\n")
	}
	for _, r := range w.robots {
		fmt.Fprintf(&sb, "  %s\n", r)
	}
	sb.WriteString("Obstacles:\n")
	if len(w.obstacles) == 0 {
		sb.WriteString("  None\n")
	}
	for _, o := range w.obstacles {
		fmt.Fprintf(&sb, "  %s\n", o)
	}
	return sb.String()
}
