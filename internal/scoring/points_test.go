package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mattwilson20/ascrl-platform/internal/models"
)

func intPtr(v int) *int {
	return &v
}

func TestPointsForFinish(t *testing.T) {
	testCases := []struct {
		name     string
		finish   *int
		expected int
	}{
		{name: "Win pays 40", finish: intPtr(1), expected: 40},
		{name: "Second pays 35", finish: intPtr(2), expected: 35},
		{name: "Third pays 34", finish: intPtr(3), expected: 34},
		{name: "Fourth starts the 37-p walk", finish: intPtr(4), expected: 33},
		{name: "Tenth", finish: intPtr(10), expected: 27},
		{name: "P35 hits the one point floor", finish: intPtr(35), expected: 1},
		{name: "P36 stays at the floor", finish: intPtr(36), expected: 1},
		{name: "No finish earns nothing", finish: nil, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, PointsForFinish(tc.finish))
		})
	}
}

func TestPointsForFinish_StrictlyDecreasingPastPodium(t *testing.T) {
	for p := 4; p < 36; p++ {
		expected := 37 - p
		if expected < 1 {
			expected = 1
		}
		assert.Equal(t, expected, PointsForFinish(intPtr(p)), "position %d", p)
	}
}

func TestResultPoints(t *testing.T) {
	testCases := []struct {
		name     string
		result   models.Result
		expected int
	}{
		{
			name:     "Win with pole and fastest lap",
			result:   models.Result{FinishPosition: intPtr(1), Pole: true, FastestLap: true},
			expected: 42,
		},
		{
			name:     "Plain second place",
			result:   models.Result{FinishPosition: intPtr(2)},
			expected: 35,
		},
		{
			name:     "Backmarker with fastest lap",
			result:   models.Result{FinishPosition: intPtr(36), FastestLap: true},
			expected: 2,
		},
		{
			name:     "Pole without a finish earns nothing",
			result:   models.Result{Pole: true},
			expected: 0,
		},
		{
			name:     "Fastest lap without a finish earns nothing",
			result:   models.Result{FastestLap: true},
			expected: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResultPoints(tc.result))
		})
	}
}
