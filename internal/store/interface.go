package store

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/mattwilson20/ascrl-platform/internal/models"
)

type LeagueStore interface {
	Close() error
	ApplyMigrations(dir string) error

	CreateDriver(driver models.Driver) error
	DeleteDriver(name string, series models.Series) (bool, error)
	DriverExists(name string, series models.Series) (bool, error)
	CountDrivers(series models.Series) (int, error)
	ListDrivers(series models.Series) ([]models.Driver, error)

	UpsertRace(race models.Race) error
	GetRace(track string, series models.Series) (*models.Race, error)
	DeleteRace(track, date string, series models.Series) (bool, error)
	ListRaces(season string, series *models.Series) ([]models.Race, error)
	NextRace(series models.Series, season, afterDate string) (*models.Race, error)

	ReplaceResult(result models.Result) error
	ListResults(series models.Series, track string) ([]models.Result, error)
	CountResults(series models.Series) (int, error)
	DeleteResultsForDriver(name string, series models.Series) error
	DeleteResultsForTrack(track string, series models.Series) error

	ReplaceStandings(series models.Series, rows []models.Standing) error
	ListStandings(series models.Series, limit int) ([]models.Standing, error)
	GetStanding(name string, series models.Series) (*models.Standing, error)
	DeleteStandingsForDriver(name string, series models.Series) error

	UpsertWinner(winner models.Winner) error
	DeleteWinnersForDriver(name string, series models.Series) error
	DeleteWinnersForTrack(track string, series models.Series) error
}

// BaseStore provides common functionality for different DB implementations
type BaseStore struct {
	DB        *sqlx.DB
	Converter func(string) string
}

func (s *BaseStore) Close() error {
	if s.DB != nil {
		return s.DB.Close()
	}
	return nil
}

// ApplyMigrations applies SQL migrations from a directory, translating dialect if needed
func (s *BaseStore) ApplyMigrations(dir string, translateSQL func(string) string) error {
	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, file := range files {
		if !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		content, err := os.ReadFile(fmt.Sprintf("%s/%s", dir, file.Name()))
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", file.Name(), err)
		}

		ddl := string(content)
		if translateSQL != nil {
			ddl = translateSQL(ddl)
		}

		if _, err := s.DB.Exec(ddl); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file.Name(), err)
		}
	}

	return nil
}

func (s *BaseStore) CreateDriver(driver models.Driver) error {
	query := s.Converter(`
		INSERT INTO drivers (driver_name, series)
		VALUES (?, ?)
		ON CONFLICT (driver_name, series) DO NOTHING
	`)
	if _, err := s.DB.Exec(query, driver.Name, driver.Series); err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (s *BaseStore) DeleteDriver(name string, series models.Series) (bool, error) {
	query := s.Converter(`DELETE FROM drivers WHERE driver_name = ? AND series = ?`)
	res, err := s.DB.Exec(query, name, series)
	if err != nil {
		return false, fmt.Errorf("failed to delete driver: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (s *BaseStore) DriverExists(name string, series models.Series) (bool, error) {
	var count int
	query := s.Converter(`SELECT COUNT(*) FROM drivers WHERE driver_name = ? AND series = ?`)
	if err := s.DB.Get(&count, query, name, series); err != nil {
		return false, fmt.Errorf("failed to check driver: %w", err)
	}
	return count > 0, nil
}

func (s *BaseStore) CountDrivers(series models.Series) (int, error) {
	var count int
	query := s.Converter(`SELECT COUNT(*) FROM drivers WHERE series = ?`)
	if err := s.DB.Get(&count, query, series); err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}
	return count, nil
}

func (s *BaseStore) ListDrivers(series models.Series) ([]models.Driver, error) {
	var drivers []models.Driver
	query := s.Converter(`
		SELECT driver_name, series
		FROM drivers
		WHERE series = ?
		ORDER BY driver_name ASC
	`)
	if err := s.DB.Select(&drivers, query, series); err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	return drivers, nil
}

func (s *BaseStore) UpsertRace(race models.Race) error {
	query := s.Converter(`
		INSERT INTO races (track, date, series, season)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (track, date, series) DO UPDATE SET season = excluded.season
	`)
	if _, err := s.DB.Exec(query, race.Track, race.Date, race.Series, race.Season); err != nil {
		return fmt.Errorf("failed to upsert race: %w", err)
	}
	return nil
}

func (s *BaseStore) GetRace(track string, series models.Series) (*models.Race, error) {
	var race models.Race
	query := s.Converter(`
		SELECT track, date, series, season
		FROM races
		WHERE track = ? AND series = ?
		ORDER BY date ASC
		LIMIT 1
	`)
	err := s.DB.Get(&race, query, track, series)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get race: %w", err)
	}
	return &race, nil
}

func (s *BaseStore) DeleteRace(track, date string, series models.Series) (bool, error) {
	query := s.Converter(`DELETE FROM races WHERE track = ? AND date = ? AND series = ?`)
	res, err := s.DB.Exec(query, track, date, series)
	if err != nil {
		return false, fmt.Errorf("failed to delete race: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}

func (s *BaseStore) ListRaces(season string, series *models.Series) ([]models.Race, error) {
	var races []models.Race
	query := `
		SELECT track, date, series, season
		FROM races
		WHERE season = ?
	`
	args := []interface{}{season}
	if series != nil {
		query += ` AND series = ?`
		args = append(args, *series)
	}
	query += ` ORDER BY date ASC, track ASC`

	if err := s.DB.Select(&races, s.Converter(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list races: %w", err)
	}
	return races, nil
}

func (s *BaseStore) NextRace(series models.Series, season, afterDate string) (*models.Race, error) {
	var race models.Race
	query := s.Converter(`
		SELECT track, date, series, season
		FROM races
		WHERE series = ? AND season = ? AND date > ?
		ORDER BY date ASC
		LIMIT 1
	`)
	err := s.DB.Get(&race, query, series, season, afterDate)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get next race: %w", err)
	}
	return &race, nil
}

func (s *BaseStore) ReplaceResult(result models.Result) error {
	query := s.Converter(`
		INSERT INTO results (driver_name, track, series, finish_position, pole, fastest_lap)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (driver_name, track, series) DO UPDATE SET
		finish_position = excluded.finish_position,
		pole = excluded.pole,
		fastest_lap = excluded.fastest_lap
	`)
	_, err := s.DB.Exec(query,
		result.Driver,
		result.Track,
		result.Series,
		result.FinishPosition,
		result.PoleColumn(),
		result.FastestLapColumn(),
	)
	if err != nil {
		return fmt.Errorf("failed to replace result: %w", err)
	}
	return nil
}

func (s *BaseStore) ListResults(series models.Series, track string) ([]models.Result, error) {
	query := `
		SELECT driver_name, track, series, finish_position, pole, fastest_lap
		FROM results
		WHERE series = ?
	`
	args := []interface{}{series}
	if track != "" {
		query += ` AND track = ?`
		args = append(args, track)
	}
	query += ` ORDER BY track ASC, finish_position ASC`

	var rows []resultRow
	if err := s.DB.Select(&rows, s.Converter(query), args...); err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	results := make([]models.Result, 0, len(rows))
	for _, row := range rows {
		results = append(results, models.Result{
			Driver:         row.Driver,
			Track:          row.Track,
			Series:         models.Series(row.Series),
			FinishPosition: row.FinishPosition,
			Pole:           row.Pole == models.PoleFlag,
			FastestLap:     row.FastestLap == models.FastestLapFlag,
		})
	}
	return results, nil
}

func (s *BaseStore) CountResults(series models.Series) (int, error) {
	var count int
	query := s.Converter(`SELECT COUNT(*) FROM results WHERE series = ?`)
	if err := s.DB.Get(&count, query, series); err != nil {
		return 0, fmt.Errorf("failed to count results: %w", err)
	}
	return count, nil
}

func (s *BaseStore) DeleteResultsForDriver(name string, series models.Series) error {
	query := s.Converter(`DELETE FROM results WHERE driver_name = ? AND series = ?`)
	if _, err := s.DB.Exec(query, name, series); err != nil {
		return fmt.Errorf("failed to delete results for driver: %w", err)
	}
	return nil
}

func (s *BaseStore) DeleteResultsForTrack(track string, series models.Series) error {
	query := s.Converter(`DELETE FROM results WHERE track = ? AND series = ?`)
	if _, err := s.DB.Exec(query, track, series); err != nil {
		return fmt.Errorf("failed to delete results for track: %w", err)
	}
	return nil
}

// ReplaceStandings rebuilds the series cache as a delete-all then insert-all
// statement group. Readers may observe the gap; statement-level isolation is
// all the store promises.
func (s *BaseStore) ReplaceStandings(series models.Series, rows []models.Standing) error {
	del := s.Converter(`DELETE FROM standings WHERE series = ?`)
	if _, err := s.DB.Exec(del, series); err != nil {
		return fmt.Errorf("failed to clear standings: %w", err)
	}

	for _, row := range rows {
		_, err := s.DB.NamedExec(`
			INSERT INTO standings (driver_name, series, points, wins, top_5s, top_10s, poles, avg_finish)
			VALUES (:driver_name, :series, :points, :wins, :top_5s, :top_10s, :poles, :avg_finish)
		`, row)
		if err != nil {
			return fmt.Errorf("failed to insert standing for %s: %w", row.Driver, err)
		}
	}
	return nil
}

func (s *BaseStore) ListStandings(series models.Series, limit int) ([]models.Standing, error) {
	var standings []models.Standing
	query := s.Converter(`
		SELECT driver_name, series, points, wins, top_5s, top_10s, poles, avg_finish
		FROM standings
		WHERE series = ?
		ORDER BY points DESC, avg_finish ASC NULLS LAST
		LIMIT ?
	`)
	if err := s.DB.Select(&standings, query, series, limit); err != nil {
		return nil, fmt.Errorf("failed to list standings: %w", err)
	}
	return standings, nil
}

func (s *BaseStore) GetStanding(name string, series models.Series) (*models.Standing, error) {
	var standing models.Standing
	query := s.Converter(`
		SELECT driver_name, series, points, wins, top_5s, top_10s, poles, avg_finish
		FROM standings
		WHERE driver_name = ? AND series = ?
	`)
	err := s.DB.Get(&standing, query, name, series)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get standing: %w", err)
	}
	return &standing, nil
}

func (s *BaseStore) DeleteStandingsForDriver(name string, series models.Series) error {
	query := s.Converter(`DELETE FROM standings WHERE driver_name = ? AND series = ?`)
	if _, err := s.DB.Exec(query, name, series); err != nil {
		return fmt.Errorf("failed to delete standings for driver: %w", err)
	}
	return nil
}

func (s *BaseStore) UpsertWinner(winner models.Winner) error {
	query := s.Converter(`
		INSERT INTO winners (date, track, series, winner)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (date, track, series) DO UPDATE SET winner = excluded.winner
	`)
	if _, err := s.DB.Exec(query, winner.Date, winner.Track, winner.Series, winner.Winner); err != nil {
		return fmt.Errorf("failed to upsert winner: %w", err)
	}
	return nil
}

func (s *BaseStore) DeleteWinnersForDriver(name string, series models.Series) error {
	query := s.Converter(`DELETE FROM winners WHERE winner = ? AND series = ?`)
	if _, err := s.DB.Exec(query, name, series); err != nil {
		return fmt.Errorf("failed to delete winners for driver: %w", err)
	}
	return nil
}

func (s *BaseStore) DeleteWinnersForTrack(track string, series models.Series) error {
	query := s.Converter(`DELETE FROM winners WHERE track = ? AND series = ?`)
	if _, err := s.DB.Exec(query, track, series); err != nil {
		return fmt.Errorf("failed to delete winners for track: %w", err)
	}
	return nil
}
