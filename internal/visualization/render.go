package visualization

import (
	"fmt"
	"image/color"
	"math/rand"
	"robot-sim/internal/common"
	"robot-sim/internal/config"
	"robot-sim/internal/simulation"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"
)

const (
	panelWidth  = 200 // stats column on the right
	padding     = 10.0
	headingSize = 1.5 // heading line length in robot radii
)

var (
	backgroundColor = color.RGBA{40, 40, 40, 255}
	roomColor       = color.RGBA{230, 230, 230, 255}
	obstacleColor   = color.RGBA{30, 30, 30, 255}
	manualColor     = color.RGBA{230, 200, 0, 255}
	autoColor       = color.RGBA{210, 30, 30, 255}
	headingColor    = color.RGBA{0, 0, 0, 255}
	recordingColor  = color.RGBA{255, 0, 0, 255}
)

// Renderer implements ebiten.Game on top of a simulation Driver. Every Update
// runs one tick, unless a rewind is being replayed.
type Renderer struct {
	driver   *simulation.Driver
	defaults config.RobotDefaults
	logger   *zap.Logger
	rng      *rand.Rand

	screenWidth  int
	screenHeight int
	projector    Projector

	frame  simulation.Snapshot
	stats  simulation.Stats
	replay []simulation.Snapshot
	status string
}

// NewRenderer creates a renderer for the driver's room.
func NewRenderer(driver *simulation.Driver, defaults config.RobotDefaults, logger *zap.Logger) *Renderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := driver.World()
	return &Renderer{
		driver:   driver,
		defaults: defaults,
		logger:   logger,
		rng:      rand.New(rand.NewSource(rand.Int63())),
		frame:    w.Snapshot(),
		stats:    simulation.Summarize(w),
	}
}

// Update is called every tick.
func (r *Renderer) Update() error {
	r.projector = Fit(r.driver.World().Width(), r.driver.World().Height(),
		r.screenWidth-panelWidth, r.screenHeight, padding)

	if r.nextReplayFrame() {
		return nil
	}

	r.handleKeys()
	r.driver.Tick(pollInput())

	w := r.driver.World()
	if len(r.replay) > 0 {
		r.nextReplayFrame()
	} else {
		r.frame = w.Snapshot()
	}
	r.stats = simulation.Summarize(w)
	return nil
}

// nextReplayFrame shows the next rewound frame, if any is queued.
func (r *Renderer) nextReplayFrame() bool {
	if len(r.replay) == 0 {
		return false
	}
	r.frame = r.replay[0]
	r.replay = r.replay[1:]
	return true
}

// queueReplay returns a frame callback that captures the room as each log
// frame is restored.
func (r *Renderer) queueReplay() func(frame int) {
	return func(int) {
		r.replay = append(r.replay, r.driver.World().Snapshot())
	}
}

func pollInput() simulation.Input {
	return simulation.Input{
		Forward:   ebiten.IsKeyPressed(ebiten.KeyW),
		TurnLeft:  ebiten.IsKeyPressed(ebiten.KeyA),
		TurnRight: ebiten.IsKeyPressed(ebiten.KeyD),
	}
}

func (r *Renderer) handleKeys() {
	w := r.driver.World()
	var cmds []simulation.Command

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		cmds = append(cmds, simulation.TogglePlay{})
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		if r.driver.Recording() {
			cmds = append(cmds, simulation.StopRecording{})
		} else {
			cmds = append(cmds, simulation.StartRecording{})
		}
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		cmds = append(cmds, simulation.RewindLog{OnFrame: r.queueReplay()})
	case inpututil.IsKeyJustPressed(ebiten.KeyS):
		cmds = append(cmds, simulation.SaveState{})
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		cmds = append(cmds, simulation.LoadState{Path: w.SavePath()})
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		cmds = append(cmds, simulation.ClearRoom{})
	}

	if cmd, ok := r.placement(); ok {
		cmds = append(cmds, cmd)
	}
	for _, c := range cmds {
		r.logger.Debug("key command", zap.String("command", c.Name()))
		r.status = c.Name()
	}
	r.driver.Submit(cmds...)
}

// placement maps the O, M and N keys to an add command at the cursor. With
// the cursor outside the room a random position is used.
func (r *Renderer) placement() (simulation.Command, bool) {
	w := r.driver.World()
	at := r.cursor()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		return simulation.CreateObstacle{At: simulation.SnapObstacle(at, w.Width(), w.Height())}, true
	case inpututil.IsKeyJustPressed(ebiten.KeyM):
		return simulation.AddManualRobot{
			At:    simulation.ClampRobot(at, w.Width(), w.Height()),
			ID:    w.NextRobotID(),
			Speed: r.defaults.Speed,
		}, true
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		return simulation.AddAutoRobot{
			At: simulation.ClampRobot(at, w.Width(), w.Height()),
			Params: simulation.AutoParams{
				ID:           w.NextRobotID(),
				ViewDistance: 1,
				Speed:        r.defaults.Speed,
				Clockwise:    r.defaults.Clockwise,
				TurnStep:     r.defaults.TurnStep,
			},
		}, true
	}
	return nil, false
}

func (r *Renderer) cursor() common.Point {
	w := r.driver.World()
	p := r.projector.ToWorld(ebiten.CursorPosition())
	if !w.ContainsPosition(p) {
		return simulation.RandomPosition(r.rng, w.Width(), w.Height())
	}
	return p
}

// Draw is called every frame to render the room.
func (r *Renderer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	w := r.driver.World()
	x0, y0 := r.projector.ToScreen(common.NewPoint(0, 0))
	vector.DrawFilledRect(screen, x0, y0, r.projector.Length(w.Width()), r.projector.Length(w.Height()), roomColor, false)

	half := simulation.ObstacleSize / 2.0
	for _, o := range r.frame.Obstacles {
		x, y := r.projector.ToScreen(common.NewPoint(o.X-half, o.Y-half))
		side := r.projector.Length(simulation.ObstacleSize)
		vector.DrawFilledRect(screen, x, y, side, side, obstacleColor, false)
	}

	radius := simulation.RobotSize / 2.0
	for _, rec := range r.frame.Robots {
		clr := autoColor
		if rec.Controlled {
			clr = manualColor
		}
		cx, cy := r.projector.ToScreen(common.NewPoint(rec.X, rec.Y))
		vector.DrawFilledCircle(screen, cx, cy, r.projector.Length(radius), clr, true)
		hx, hy := r.projector.ToScreen(headingTip(rec, radius*headingSize))
		vector.StrokeLine(screen, cx, cy, hx, hy, 2, headingColor, true)
	}

	if r.driver.Recording() {
		vector.DrawFilledCircle(screen, x0+8, y0+8, 5, recordingColor, true)
	}
	r.drawPanel(screen)
}

// headingTip is the end of a robot's heading line.
func headingTip(rec simulation.RobotRecord, length float64) common.Point {
	return common.NewPoint(rec.X, rec.Y).Step(rec.CurrentAngle, length)
}

func (r *Renderer) drawPanel(screen *ebiten.Image) {
	state := "running"
	switch {
	case len(r.replay) > 0:
		state = fmt.Sprintf("rewinding (%d)", len(r.replay))
	case !r.driver.Running():
		state = "paused"
	}
	msg := fmt.Sprintf("%s\ntick %d\nTPS %.1f\n\n%s\n\nlast: %s\n\n"+
		"W/A/D drive\nSpace play/pause\nR record\nB rewind\nS save  L load\nC clear\n"+
		"O obstacle\nM manual  N auto",
		state, r.driver.Ticks(), ebiten.ActualTPS(), panelStats(r.stats), r.status)
	ebitenutil.DebugPrintAt(screen, msg, r.screenWidth-panelWidth+8, 8)
}

func panelStats(s simulation.Stats) string {
	return fmt.Sprintf("robots %d (%d manual, %d auto)\nobstacles %d\nodometer %.1f +/- %.1f\nheading %.0f",
		s.Robots, s.Manual, s.Auto, s.Obstacles, s.MeanOdometer, s.StdOdometer, s.MeanHeading)
}

// Layout is called when the window size changes.
func (r *Renderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	r.screenWidth = outsideWidth
	r.screenHeight = outsideHeight
	return r.screenWidth, r.screenHeight
}
