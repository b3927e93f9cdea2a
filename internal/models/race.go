package models

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// RaceDateFormat is how race dates are stored and displayed.
const RaceDateFormat = "2006-01-02"

type Race struct {
	Track  string `db:"track" json:"track" validate:"required"`
	Date   string `db:"date" json:"date" validate:"required"`
	Series Series `db:"series" json:"series" validate:"required"`
	Season string `db:"season" json:"season"`
}

// StartTime parses the race date into its scheduled instant, midnight UTC.
func (r *Race) StartTime() (time.Time, error) {
	t, err := time.Parse(RaceDateFormat, r.Date)
	if err != nil {
		return time.Time{}, fmt.Errorf("race %s has unparseable date %q: %w", r.Track, r.Date, err)
	}
	return t.UTC(), nil
}

func (r *Race) Validate() error {
	if _, err := time.Parse(RaceDateFormat, r.Date); err != nil {
		return fmt.Errorf("invalid date %q, use YYYY-MM-DD: %w", r.Date, err)
	}
	validate := validator.New()
	return validate.Struct(r)
}
