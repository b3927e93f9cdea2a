package league

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/mattwilson20/ascrl-platform/internal/metrics"
	"github.com/mattwilson20/ascrl-platform/internal/models"
	"github.com/mattwilson20/ascrl-platform/internal/scoring"
	"github.com/mattwilson20/ascrl-platform/internal/store"
)

// MaxDriversPerSeries caps each division's roster.
const MaxDriversPerSeries = 100

// StandingsLimit is how many rows a standings query returns.
const StandingsLimit = 40

var (
	ErrSeriesFull = errors.New("series is full")
	ErrNotFound   = errors.New("not found")
)

// Service owns every league operation. It is constructed once at startup with
// a store handle and a standings engine, and passed to the bot and the HTTP
// handlers. Mutations that can affect existing results trigger a recompute;
// the engine itself skips series with no results.
type Service struct {
	store  store.LeagueStore
	engine *scoring.Engine
	season string
}

func NewService(s store.LeagueStore, engine *scoring.Engine, season string) *Service {
	return &Service{
		store:  s,
		engine: engine,
		season: season,
	}
}

func (s *Service) Season() string {
	return s.season
}

// Recompute rebuilds the standings cache for one series.
func (s *Service) Recompute(series models.Series) error {
	return s.engine.Recompute(series)
}

// RecomputeAll is the startup pass over every series. Per-series failures are
// logged and do not stop the rest.
func (s *Service) RecomputeAll() {
	for _, series := range models.AllSeries {
		if err := s.engine.Recompute(series); err != nil {
			logger.Error.Printf("Startup recompute failed for %s: %v", series, err)
		}
	}
}

func (s *Service) AssignDriver(series models.Series, name string) error {
	name = strings.TrimSpace(name)
	driver := models.Driver{Name: name, Series: series}
	if err := driver.Validate(); err != nil {
		return fmt.Errorf("invalid driver: %w", err)
	}

	count, err := s.store.CountDrivers(series)
	if err != nil {
		return err
	}
	if count >= MaxDriversPerSeries {
		return fmt.Errorf("%w: %s already has %d drivers", ErrSeriesFull, series, MaxDriversPerSeries)
	}

	if err := s.store.CreateDriver(driver); err != nil {
		return err
	}
	return s.engine.Recompute(series)
}

// AssignDrivers adds a batch of drivers, rejected wholesale when the batch
// does not fit under the roster cap.
func (s *Service) AssignDrivers(series models.Series, names []string) (int, error) {
	if len(names) == 0 {
		return 0, ErrEmptyBatch
	}

	count, err := s.store.CountDrivers(series)
	if err != nil {
		return 0, err
	}
	if left := MaxDriversPerSeries - count; len(names) > left {
		return 0, fmt.Errorf("%w: only %d spots left in %s", ErrSeriesFull, left, series)
	}

	// validate the whole batch before touching the store
	drivers := make([]models.Driver, 0, len(names))
	for _, name := range names {
		driver := models.Driver{Name: strings.TrimSpace(name), Series: series}
		if err := driver.Validate(); err != nil {
			return 0, fmt.Errorf("invalid driver %q: %w", name, err)
		}
		drivers = append(drivers, driver)
	}

	added := 0
	for _, driver := range drivers {
		if err := s.store.CreateDriver(driver); err != nil {
			return added, err
		}
		added++
	}

	if err := s.engine.Recompute(series); err != nil {
		return added, err
	}
	return added, nil
}

// RemoveDriver deletes a driver and cascades across results, standings and
// winner records for the series.
func (s *Service) RemoveDriver(series models.Series, name string) error {
	name = strings.Trim(strings.TrimSpace(name), `"'`)

	exists, err := s.store.DriverExists(name, series)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s is not in %s", ErrNotFound, name, series)
	}

	if err := s.dropDriver(series, name); err != nil {
		return err
	}
	logger.Info.Printf("Removed driver %s from %s", name, series)
	return s.engine.Recompute(series)
}

// RemoveDrivers deletes a batch of drivers with the same cascade. Unknown
// names are skipped, not fatal.
func (s *Service) RemoveDrivers(series models.Series, names []string) (int, error) {
	if len(names) == 0 {
		return 0, ErrEmptyBatch
	}

	removed := 0
	for _, name := range names {
		name = strings.TrimSpace(name)
		gone, err := s.store.DeleteDriver(name, series)
		if err != nil {
			return removed, err
		}
		if !gone {
			continue
		}
		if err := s.cascadeDriver(series, name); err != nil {
			return removed, err
		}
		removed++
	}

	if err := s.engine.Recompute(series); err != nil {
		return removed, err
	}
	return removed, nil
}

func (s *Service) dropDriver(series models.Series, name string) error {
	if _, err := s.store.DeleteDriver(name, series); err != nil {
		return err
	}
	return s.cascadeDriver(series, name)
}

func (s *Service) cascadeDriver(series models.Series, name string) error {
	if err := s.store.DeleteResultsForDriver(name, series); err != nil {
		return err
	}
	if err := s.store.DeleteStandingsForDriver(name, series); err != nil {
		return err
	}
	return s.store.DeleteWinnersForDriver(name, series)
}

func (s *Service) AddRace(series models.Series, track, date string) error {
	race := models.Race{
		Track:  normalizeTrack(track),
		Date:   date,
		Series: series,
		Season: s.season,
	}
	if err := race.Validate(); err != nil {
		return err
	}
	if err := s.store.UpsertRace(race); err != nil {
		return err
	}
	logger.Info.Printf("Added %s race: %s on %s", series, race.Track, race.Date)
	return nil
}

// RemoveRace deletes a race and cascades to that track's results and winner
// records for the series.
func (s *Service) RemoveRace(series models.Series, track, date string) error {
	if _, err := time.Parse(models.RaceDateFormat, date); err != nil {
		return fmt.Errorf("invalid date %q, use YYYY-MM-DD", date)
	}
	track = normalizeTrack(track)

	found, err := s.store.DeleteRace(track, date, series)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: no %s race at %s on %s", ErrNotFound, series, track, date)
	}

	if err := s.cascadeTrack(series, track); err != nil {
		return err
	}
	return s.engine.Recompute(series)
}

// AddRaces schedules a batch of `track,date` entries. Malformed entries are
// reported back as skipped.
func (s *Service) AddRaces(series models.Series, raw string) (int, []string, error) {
	entries, skipped := ParseRaceEntries(raw)
	if len(entries) == 0 && len(skipped) == 0 {
		return 0, nil, ErrEmptyBatch
	}

	added := 0
	for _, entry := range entries {
		race := models.Race{
			Track:  normalizeTrack(entry[0]),
			Date:   entry[1],
			Series: series,
			Season: s.season,
		}
		if err := race.Validate(); err != nil {
			skipped = append(skipped, fmt.Sprintf("%s,%s", entry[0], entry[1]))
			continue
		}
		if err := s.store.UpsertRace(race); err != nil {
			return added, skipped, err
		}
		added++
	}
	return added, skipped, nil
}

func (s *Service) RemoveRaces(series models.Series, raw string) (int, []string, error) {
	entries, skipped := ParseRaceEntries(raw)
	if len(entries) == 0 && len(skipped) == 0 {
		return 0, nil, ErrEmptyBatch
	}

	removed := 0
	for _, entry := range entries {
		track, date := normalizeTrack(entry[0]), entry[1]
		if _, err := time.Parse(models.RaceDateFormat, date); err != nil {
			skipped = append(skipped, fmt.Sprintf("%s,%s", entry[0], date))
			continue
		}
		found, err := s.store.DeleteRace(track, date, series)
		if err != nil {
			return removed, skipped, err
		}
		if !found {
			skipped = append(skipped, fmt.Sprintf("%s,%s", entry[0], date))
			continue
		}
		if err := s.cascadeTrack(series, track); err != nil {
			return removed, skipped, err
		}
		removed++
	}

	if err := s.engine.Recompute(series); err != nil {
		return removed, skipped, err
	}
	return removed, skipped, nil
}

func (s *Service) cascadeTrack(series models.Series, track string) error {
	if err := s.store.DeleteResultsForTrack(track, series); err != nil {
		return err
	}
	return s.store.DeleteWinnersForTrack(track, series)
}

// SubmitResults writes one race's batch results. The whole batch is validated
// first; nothing is written on a validation error. Unknown drivers are
// registered and a missing race is created with today's date, keeping the
// original best-effort referential semantics. The winner record for position
// one is written as part of the same flow.
func (s *Service) SubmitResults(series models.Series, track, raw string) (int, error) {
	entries, err := ParseResultEntries(raw)
	if err != nil {
		return 0, err
	}
	track = normalizeTrack(track)

	race, err := s.store.GetRace(track, series)
	if err != nil {
		return 0, err
	}
	if race == nil {
		race = &models.Race{
			Track:  track,
			Date:   time.Now().UTC().Format(models.RaceDateFormat),
			Series: series,
			Season: s.season,
		}
		if err := s.store.UpsertRace(*race); err != nil {
			return 0, err
		}
		logger.Info.Printf("Created unscheduled %s race at %s for submitted results", series, track)
	}

	for _, entry := range entries {
		if err := s.store.CreateDriver(models.Driver{Name: entry.Driver, Series: series}); err != nil {
			return 0, err
		}

		position := entry.Position
		result := models.Result{
			Driver:         entry.Driver,
			Track:          track,
			Series:         series,
			FinishPosition: &position,
			Pole:           entry.Pole,
			FastestLap:     entry.FastestLap,
		}
		if err := s.store.ReplaceResult(result); err != nil {
			return 0, err
		}

		if entry.Position == 1 {
			winner := models.Winner{
				Date:   race.Date,
				Track:  track,
				Series: series,
				Winner: entry.Driver,
			}
			if err := s.store.UpsertWinner(winner); err != nil {
				return 0, err
			}
		}
	}

	metrics.ResultsSubmittedTotal.WithLabelValues(string(series), track).Add(float64(len(entries)))
	logger.Info.Printf("Results entered: %s at %s, %d rows", series, track, len(entries))

	if err := s.engine.Recompute(series); err != nil {
		return len(entries), err
	}
	return len(entries), nil
}

// ClearResults wipes one race's results and winner record, then recomputes.
func (s *Service) ClearResults(series models.Series, track string) error {
	track = normalizeTrack(track)

	race, err := s.store.GetRace(track, series)
	if err != nil {
		return err
	}
	if race == nil {
		return fmt.Errorf("%w: no %s race at %s", ErrNotFound, series, track)
	}

	if err := s.cascadeTrack(series, track); err != nil {
		return err
	}
	return s.engine.Recompute(series)
}

func (s *Service) Schedule(series *models.Series) ([]models.Race, error) {
	return s.store.ListRaces(s.season, series)
}

func (s *Service) Standings(series models.Series) ([]models.Standing, error) {
	return s.store.ListStandings(series, StandingsLimit)
}

func (s *Service) DriverProfile(series models.Series, name string) (*models.Standing, error) {
	standing, err := s.store.GetStanding(strings.TrimSpace(name), series)
	if err != nil {
		return nil, err
	}
	if standing == nil {
		return nil, fmt.Errorf("%w: no profile for %s in %s", ErrNotFound, name, series)
	}
	return standing, nil
}

func (s *Service) NextRace(series models.Series) (*models.Race, error) {
	today := time.Now().UTC().Format(models.RaceDateFormat)
	return s.store.NextRace(series, s.season, today)
}

// ReportRow is one finisher in a race report.
type ReportRow struct {
	Position   int    `json:"position"`
	Driver     string `json:"driver"`
	Points     int    `json:"points"`
	Pole       bool   `json:"pole"`
	FastestLap bool   `json:"fastest_lap"`
}

// RaceReport groups one race's results with its winner.
type RaceReport struct {
	Track  string      `json:"track"`
	Winner string      `json:"winner,omitempty"`
	Rows   []ReportRow `json:"rows"`
}

// RaceResults returns results grouped per race, ordered by finish position.
// Pass an empty track for the whole series. Rows without a recorded finish
// are omitted from reports.
func (s *Service) RaceResults(series models.Series, track string) ([]RaceReport, error) {
	if track != "" {
		track = normalizeTrack(track)
	}
	results, err := s.store.ListResults(series, track)
	if err != nil {
		return nil, err
	}

	var reports []RaceReport
	index := make(map[string]int)
	for _, r := range results {
		if !r.Finished() {
			continue
		}
		i, ok := index[r.Track]
		if !ok {
			i = len(reports)
			index[r.Track] = i
			reports = append(reports, RaceReport{Track: r.Track})
		}
		row := ReportRow{
			Position:   *r.FinishPosition,
			Driver:     r.Driver,
			Points:     scoring.PointsForFinish(r.FinishPosition),
			Pole:       r.Pole,
			FastestLap: r.FastestLap,
		}
		reports[i].Rows = append(reports[i].Rows, row)
		if row.Position == 1 {
			reports[i].Winner = row.Driver
		}
	}
	return reports, nil
}

// SeriesLeaders is one division's slice of the cross-series leaderboard.
type SeriesLeaders struct {
	Series  models.Series     `json:"series"`
	Leaders []models.Standing `json:"leaders"`
}

// Leaderboard returns the top three of every series.
func (s *Service) Leaderboard() ([]SeriesLeaders, error) {
	board := make([]SeriesLeaders, 0, len(models.AllSeries))
	for _, series := range models.AllSeries {
		leaders, err := s.store.ListStandings(series, 3)
		if err != nil {
			return nil, err
		}
		board = append(board, SeriesLeaders{Series: series, Leaders: leaders})
	}
	return board, nil
}

// normalizeTrack upper-cases the first rune of each word so "daytona" and
// "Daytona" land on the same race row. The rest of the word is left alone,
// short names like IRP stay intact.
func normalizeTrack(track string) string {
	words := strings.Fields(track)
	for i, word := range words {
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
