package astro

import "errors"

var (
	// ErrInvalidInput is returned for non-finite longitudes, cusp sequences
	// that do not hold exactly twelve entries, and mismatched charts.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnresolvedHouse is returned when a longitude falls in no house sector,
	// which only happens with malformed cusps.
	ErrUnresolvedHouse = errors.New("longitude matches no house sector")
)
