package models

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownSeries = errors.New("unknown series")

// Series is a competition division. Every entity in the store is scoped by it.
type Series string

const (
	SeriesCup     Series = "Cup"
	SeriesTruck   Series = "Truck"
	SeriesXfinity Series = "Xfinity"
	SeriesARCA    Series = "ARCA"
)

// AllSeries lists the supported divisions in display order.
var AllSeries = []Series{SeriesCup, SeriesTruck, SeriesXfinity, SeriesARCA}

// ParseSeries converts an untyped label from the command layer into a Series.
// Matching is case-insensitive, the canonical spelling is returned.
func ParseSeries(raw string) (Series, error) {
	trimmed := strings.TrimSpace(raw)
	for _, s := range AllSeries {
		if strings.EqualFold(trimmed, string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q (choose from: Cup, Truck, Xfinity, ARCA)", ErrUnknownSeries, raw)
}

func (s Series) String() string {
	return string(s)
}
