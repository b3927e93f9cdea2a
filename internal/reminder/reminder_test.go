package reminder

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattwilson20/ascrl-platform/internal/models"
)

func raceAt(track string, start time.Time) models.Race {
	return models.Race{
		Track:  track,
		Date:   start.Format(models.RaceDateFormat),
		Series: models.SeriesTruck,
		Season: "Season 1",
	}
}

func TestDueRacesWindow(t *testing.T) {
	// race dates carry no clock, so anchor "now" to a midnight and express
	// the offsets relative to it
	raceDay := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)

	testCases := []struct {
		name string
		now  time.Time
		due  bool
	}{
		{name: "inside the window", now: raceDay.Add(-3650 * time.Second), due: true},
		{name: "exactly one hour out", now: raceDay.Add(-3600 * time.Second), due: true},
		{name: "upper boundary inclusive", now: raceDay.Add(-3660 * time.Second), due: true},
		{name: "one second past the window", now: raceDay.Add(-3661 * time.Second), due: false},
		{name: "two hours out", now: raceDay.Add(-2 * time.Hour), due: false},
		{name: "less than an hour out", now: raceDay.Add(-30 * time.Minute), due: false},
		{name: "already started", now: raceDay.Add(10 * time.Minute), due: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			races := []models.Race{raceAt("Daytona", raceDay)}
			due := dueRaces(races, tc.now)
			if tc.due {
				require.Len(t, due, 1)
				assert.Equal(t, "Daytona", due[0].Track)
			} else {
				assert.Empty(t, due)
			}
		})
	}
}

func TestDueRacesSkipsBadDates(t *testing.T) {
	raceDay := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	now := raceDay.Add(-3650 * time.Second)

	races := []models.Race{
		{Track: "Broken", Date: "next tuesday", Series: models.SeriesCup, Season: "Season 1"},
		raceAt("Daytona", raceDay),
	}

	due := dueRaces(races, now)
	require.Len(t, due, 1, "bad date must not take down the scan")
	assert.Equal(t, "Daytona", due[0].Track)
}

func TestDueRacesPicksEveryRaceInWindow(t *testing.T) {
	raceDay := time.Date(2025, 10, 20, 0, 0, 0, 0, time.UTC)
	now := raceDay.Add(-3650 * time.Second)

	races := []models.Race{
		raceAt("Daytona", raceDay),
		raceAt("Bristol", raceDay),
		raceAt("Sonoma", raceDay.AddDate(0, 0, 7)),
	}

	due := dueRaces(races, now)
	require.Len(t, due, 2)
	assert.Equal(t, "Daytona", due[0].Track)
	assert.Equal(t, "Bristol", due[1].Track)
}
