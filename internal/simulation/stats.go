package simulation

import (
	"fmt"
	"robot-sim/internal/common"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the room at one instant.
type Stats struct {
	Robots    int
	Manual    int
	Auto      int
	Obstacles int

	// MeanOdometer and StdOdometer describe the distance travelled per robot.
	MeanOdometer float64
	StdOdometer  float64
	// MeanHeading is the circular mean of the robot headings in degrees.
	MeanHeading float64
}

// Summarize computes Stats for w.
func Summarize(w *World) Stats {
	st := Stats{
		Robots:    len(w.robots),
		Obstacles: len(w.obstacles),
	}
	if st.Robots == 0 {
		return st
	}

	odometers := make([]float64, 0, st.Robots)
	headings := make([]float64, 0, st.Robots)
	for _, r := range w.robots {
		if r.Controlled() {
			st.Manual++
		} else {
			st.Auto++
		}
		odometers = append(odometers, r.Odometer())
		headings = append(headings, common.Radians(r.Angle()))
	}

	if len(odometers) > 1 {
		st.MeanOdometer, st.StdOdometer = stat.MeanStdDev(odometers, nil)
	} else {
		st.MeanOdometer = odometers[0]
	}
	st.MeanHeading = common.WrapDegrees(common.Degrees(stat.CircularMean(headings, nil)))
	return st
}

func (s Stats) String() string {
	return fmt.Sprintf("Robots: %d (manual %d, auto %d), Obstacles: %d, Odometer: %.2f±%.2f, Heading: %.1f°",
		s.Robots, s.Manual, s.Auto, s.Obstacles, s.MeanOdometer, s.StdOdometer, s.MeanHeading)
}
