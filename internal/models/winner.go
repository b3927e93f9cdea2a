package models

type Winner struct {
	Date   string `db:"date" json:"date"`
	Track  string `db:"track" json:"track"`
	Series Series `db:"series" json:"series"`
	Winner string `db:"winner" json:"winner"`
}
