package store

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
)

// resultRow is the raw results table shape. Pole and fastest-lap flags are
// stored in their legacy text spellings and converted to booleans at the edge.
type resultRow struct {
	Driver         string `db:"driver_name"`
	Track          string `db:"track"`
	Series         string `db:"series"`
	FinishPosition *int   `db:"finish_position"`
	Pole           string `db:"pole"`
	FastestLap     string `db:"fastest_lap"`
}
