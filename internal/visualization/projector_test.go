package visualization

import (
	"testing"

	"robot-sim/internal/common"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/floats/scalar"
)

func TestFitKeepsAspect(t *testing.T) {
	p := Fit(700, 500, 900, 500, 0)
	assert.Equal(t, 1.0, p.Scale())

	x, y := p.ToScreen(common.NewPoint(0, 0))
	assert.Equal(t, float32(100), x)
	assert.Equal(t, float32(0), y)
	x, y = p.ToScreen(common.NewPoint(700, 500))
	assert.Equal(t, float32(800), x)
	assert.Equal(t, float32(500), y)
}

func TestFitRoundTrip(t *testing.T) {
	p := Fit(350, 250, 900, 600, 20)
	assert.True(t, scalar.EqualWithinAbs(2.24, p.Scale(), 1e-9))

	pt := common.NewPoint(120, 80)
	x, y := p.ToScreen(pt)
	back := p.ToWorld(int(x+0.5), int(y+0.5))
	assert.InDelta(t, pt.X, back.X, 1/p.Scale())
	assert.InDelta(t, pt.Y, back.Y, 1/p.Scale())
	assert.InDelta(t, 22.4, float64(p.Length(10)), 1e-4)
}

func TestFitDegenerate(t *testing.T) {
	p := Fit(700, 500, 10, 10, 20)
	assert.Equal(t, 1.0, p.Scale())
}
