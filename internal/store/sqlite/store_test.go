package sqlite

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattwilson20/ascrl-platform/internal/models"
)

func setupTestDB(t *testing.T) (*SQLiteStore, func()) {
	s, err := NewSQLiteStore(":memory:", "../../../migrations")
	require.NoError(t, err, "Failed to create test store")

	cleanup := func() {
		require.NoError(t, s.Close(), "Failed to close test database")
	}
	return s, cleanup
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestDriverLifecycle(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	series := models.SeriesTruck
	driver := models.Driver{Name: "#10 MajorBlaze", Series: series}

	require.NoError(t, s.CreateDriver(driver))

	exists, err := s.DriverExists(driver.Name, series)
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("creating twice is a no-op", func(t *testing.T) {
		require.NoError(t, s.CreateDriver(driver))
		count, err := s.CountDrivers(series)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("same name in another series is a separate row", func(t *testing.T) {
		require.NoError(t, s.CreateDriver(models.Driver{Name: driver.Name, Series: models.SeriesCup}))
		count, err := s.CountDrivers(series)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("delete reports whether a row existed", func(t *testing.T) {
		gone, err := s.DeleteDriver(driver.Name, series)
		require.NoError(t, err)
		assert.True(t, gone)

		gone, err = s.DeleteDriver(driver.Name, series)
		require.NoError(t, err)
		assert.False(t, gone)
	})
}

func TestRaceUpsertAndSchedule(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	series := models.SeriesCup
	races := []models.Race{
		{Track: "Bristol", Date: "2026-01-05", Series: series, Season: "Season 1"},
		{Track: "Daytona", Date: "2025-10-20", Series: series, Season: "Season 1"},
		{Track: "Sonoma", Date: "2025-10-20", Series: models.SeriesARCA, Season: "Season 1"},
	}
	for _, race := range races {
		require.NoError(t, s.UpsertRace(race))
	}

	t.Run("list is date ordered and series scoped", func(t *testing.T) {
		got, err := s.ListRaces("Season 1", &series)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Daytona", got[0].Track)
		assert.Equal(t, "Bristol", got[1].Track)
	})

	t.Run("nil series lists the whole season", func(t *testing.T) {
		got, err := s.ListRaces("Season 1", nil)
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("next race skips past dates", func(t *testing.T) {
		race, err := s.NextRace(series, "Season 1", "2025-12-31")
		require.NoError(t, err)
		require.NotNil(t, race)
		assert.Equal(t, "Bristol", race.Track)

		race, err = s.NextRace(series, "Season 1", "2026-02-01")
		require.NoError(t, err)
		assert.Nil(t, race)
	})

	t.Run("get race returns nil when missing", func(t *testing.T) {
		race, err := s.GetRace("Talladega", series)
		require.NoError(t, err)
		assert.Nil(t, race)
	})

	t.Run("delete needs the exact date", func(t *testing.T) {
		found, err := s.DeleteRace("Daytona", "2025-10-21", series)
		require.NoError(t, err)
		assert.False(t, found)

		found, err = s.DeleteRace("Daytona", "2025-10-20", series)
		require.NoError(t, err)
		assert.True(t, found)
	})
}

func TestResultResubmissionReplacesRow(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	series := models.SeriesXfinity
	first := models.Result{
		Driver:         "#9 DakotaThomas",
		Track:          "Daytona",
		Series:         series,
		FinishPosition: intPtr(3),
		Pole:           true,
	}
	require.NoError(t, s.ReplaceResult(first))

	second := first
	second.FinishPosition = intPtr(1)
	second.Pole = false
	second.FastestLap = true
	require.NoError(t, s.ReplaceResult(second))

	results, err := s.ListResults(series, "Daytona")
	require.NoError(t, err)
	require.Len(t, results, 1)

	got := results[0]
	require.NotNil(t, got.FinishPosition)
	assert.Equal(t, 1, *got.FinishPosition)
	assert.False(t, got.Pole)
	assert.True(t, got.FastestLap)

	count, err := s.CountResults(series)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestResultWithoutFinish(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	series := models.SeriesCup
	require.NoError(t, s.ReplaceResult(models.Result{
		Driver: "#41 SithWarriorUno",
		Track:  "Sonoma",
		Series: series,
		Pole:   true,
	}))

	results, err := s.ListResults(series, "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].FinishPosition)
	assert.True(t, results[0].Pole)
	assert.False(t, results[0].FastestLap)
}

func TestStandingsOrderingNullsLast(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	series := models.SeriesTruck
	rows := []models.Standing{
		{Driver: "never raced", Series: series, Points: 0, AvgFinish: nil},
		{Driver: "midfield", Series: series, Points: 40, AvgFinish: floatPtr(12.5)},
		{Driver: "frontrunner", Series: series, Points: 40, AvgFinish: floatPtr(2.0)},
		{Driver: "backmarker", Series: series, Points: 5, AvgFinish: floatPtr(30.0)},
	}
	require.NoError(t, s.ReplaceStandings(series, rows))

	got, err := s.ListStandings(series, 40)
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "frontrunner", got[0].Driver, "avg finish breaks the points tie")
	assert.Equal(t, "midfield", got[1].Driver)
	assert.Equal(t, "backmarker", got[2].Driver)
	assert.Equal(t, "never raced", got[3].Driver, "null averages sort last")

	t.Run("limit caps the page", func(t *testing.T) {
		got, err := s.ListStandings(series, 2)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "frontrunner", got[0].Driver)
	})

	t.Run("replace wipes rows not in the new set", func(t *testing.T) {
		require.NoError(t, s.ReplaceStandings(series, rows[:1]))
		got, err := s.ListStandings(series, 40)
		require.NoError(t, err)
		assert.Len(t, got, 1)
	})
}

func TestGetStanding(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	series := models.SeriesARCA
	row := models.Standing{
		Driver:    "#73 Rhino",
		Series:    series,
		Points:    75,
		Wins:      1,
		Top5s:     2,
		Top10s:    2,
		Poles:     1,
		AvgFinish: floatPtr(4.5),
	}
	require.NoError(t, s.ReplaceStandings(series, []models.Standing{row}))

	got, err := s.GetStanding("#73 Rhino", series)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, row, *got)

	missing, err := s.GetStanding("nobody", series)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestWinnerUpsert(t *testing.T) {
	s, cleanup := setupTestDB(t)
	defer cleanup()

	series := models.SeriesTruck
	winner := models.Winner{Date: "2025-10-20", Track: "Daytona", Series: series, Winner: "#10 MajorBlaze"}
	require.NoError(t, s.UpsertWinner(winner))

	winner.Winner = "#58 Mission"
	require.NoError(t, s.UpsertWinner(winner))

	var got string
	require.NoError(t, s.DB.Get(&got, "SELECT winner FROM winners WHERE track = ? AND series = ?", "Daytona", series))
	assert.Equal(t, "#58 Mission", got)

	var count int
	require.NoError(t, s.DB.Get(&count, "SELECT COUNT(*) FROM winners"))
	assert.Equal(t, 1, count)
}
