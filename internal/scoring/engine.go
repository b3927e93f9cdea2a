package scoring

import (
	"fmt"
	"time"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mattwilson20/ascrl-platform/internal/metrics"
	"github.com/mattwilson20/ascrl-platform/internal/models"
	"github.com/mattwilson20/ascrl-platform/internal/store"
)

// Engine rebuilds the standings cache for a series from its full result set.
type Engine struct {
	store store.LeagueStore
}

func NewEngine(s store.LeagueStore) *Engine {
	return &Engine{store: s}
}

// Recompute replaces all cached standings rows for the series. It is
// idempotent: two consecutive calls with no intervening writes produce
// identical rows. A series with zero results is skipped and its cache left
// empty. The delete-then-insert pair is not atomic with the mutation that
// triggered it; a crash in between leaves the cache stale until the next call.
func (e *Engine) Recompute(series models.Series) error {
	start := time.Now()
	defer func() {
		metrics.RecomputeDuration.WithLabelValues(string(series)).Observe(time.Since(start).Seconds())
	}()

	count, err := e.store.CountResults(series)
	if err != nil {
		return fmt.Errorf("failed to count results for %s: %w", series, err)
	}
	if count == 0 {
		logger.Debug.Printf("%s has no results, standings recompute skipped", series)
		return nil
	}

	drivers, err := e.store.ListDrivers(series)
	if err != nil {
		return fmt.Errorf("failed to list drivers for %s: %w", series, err)
	}

	results, err := e.store.ListResults(series, "")
	if err != nil {
		return fmt.Errorf("failed to list results for %s: %w", series, err)
	}

	byDriver := make(map[string][]models.Result, len(drivers))
	for _, r := range results {
		byDriver[r.Driver] = append(byDriver[r.Driver], r)
	}

	rows := make([]models.Standing, 0, len(drivers))
	for _, d := range drivers {
		rows = append(rows, Summarize(d.Name, series, byDriver[d.Name]))
	}

	if err := e.store.ReplaceStandings(series, rows); err != nil {
		return fmt.Errorf("failed to replace standings for %s: %w", series, err)
	}

	logger.Debug.Printf("%s standings recomputed: %d drivers, %d results", series, len(rows), count)
	return nil
}

// Summarize folds one driver's results into a standings row. Drivers with no
// recorded finishes get zero points and a null average finish.
func Summarize(driver string, series models.Series, results []models.Result) models.Standing {
	s := models.Standing{
		Driver: driver,
		Series: series,
	}

	var finishSum, finishCount int
	for _, r := range results {
		s.Points += ResultPoints(r)
		if r.Pole {
			s.Poles++
		}
		if !r.Finished() {
			continue
		}
		pos := *r.FinishPosition
		if pos == 1 {
			s.Wins++
		}
		if pos <= 5 {
			s.Top5s++
		}
		if pos <= 10 {
			s.Top10s++
		}
		finishSum += pos
		finishCount++
	}

	if finishCount > 0 {
		avg := float64(finishSum) / float64(finishCount)
		s.AvgFinish = &avg
	}

	return s
}
