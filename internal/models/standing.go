package models

// Standing is the cached per-driver summary for a series. It is a
// materialized view over results, fully rebuilt on every recompute,
// never patched in place.
type Standing struct {
	Driver    string   `db:"driver_name" json:"driver"`
	Series    Series   `db:"series" json:"series"`
	Points    int      `db:"points" json:"points"`
	Wins      int      `db:"wins" json:"wins"`
	Top5s     int      `db:"top_5s" json:"top_5s"`
	Top10s    int      `db:"top_10s" json:"top_10s"`
	Poles     int      `db:"poles" json:"poles"`
	AvgFinish *float64 `db:"avg_finish" json:"avg_finish,omitempty"`
}
