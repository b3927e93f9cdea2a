package models

import (
	"github.com/go-playground/validator/v10"
)

// Legacy flag spellings kept for store compatibility with the old dataset.
const (
	PoleFlag       = "Yes"
	FastestLapFlag = "FL"
)

// Result is one driver's outcome in one race. A resubmission for the same
// (driver, track, series) replaces the prior row wholesale.
type Result struct {
	Driver         string `db:"driver_name" json:"driver" validate:"required"`
	Track          string `db:"track" json:"track" validate:"required"`
	Series         Series `db:"series" json:"series" validate:"required"`
	FinishPosition *int   `json:"finish_position,omitempty" validate:"omitempty,min=1,max=36"`
	Pole           bool   `json:"pole"`
	FastestLap     bool   `json:"fastest_lap"`
}

// Finished reports whether the driver has a recorded finish. Bonus flags
// earn nothing without one.
func (r *Result) Finished() bool {
	return r.FinishPosition != nil
}

// PoleColumn renders the pole flag in its stored spelling.
func (r *Result) PoleColumn() string {
	if r.Pole {
		return PoleFlag
	}
	return ""
}

// FastestLapColumn renders the fastest-lap flag in its stored spelling.
func (r *Result) FastestLapColumn() string {
	if r.FastestLap {
		return FastestLapFlag
	}
	return ""
}

func (r *Result) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
