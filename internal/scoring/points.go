package scoring

import (
	"github.com/mattwilson20/ascrl-platform/internal/models"
)

// PointsForFinish maps a finish position to its base score. The podium gets
// fixed larger payouts, everyone else walks down from 33 with a floor of 1,
// and a missing finish earns nothing.
func PointsForFinish(finish *int) int {
	if finish == nil {
		return 0
	}
	switch *finish {
	case 1:
		return 40
	case 2:
		return 35
	case 3:
		return 34
	}
	if pts := 37 - *finish; pts > 1 {
		return pts
	}
	return 1
}

// ResultPoints is the full per-result score: finish points plus one point
// each for pole and fastest lap. Bonuses only count with a recorded finish.
func ResultPoints(r models.Result) int {
	if !r.Finished() {
		return 0
	}
	pts := PointsForFinish(r.FinishPosition)
	if r.Pole {
		pts++
	}
	if r.FastestLap {
		pts++
	}
	return pts
}
