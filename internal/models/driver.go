package models

import (
	"github.com/go-playground/validator/v10"
)

// Driver identity is (name, series). There are no other mutable attributes.
type Driver struct {
	Name   string `db:"driver_name" json:"driver" validate:"required,max=64"`
	Series Series `db:"series" json:"series" validate:"required"`
}

func (d *Driver) Validate() error {
	validate := validator.New()
	return validate.Struct(d)
}
