// Package ephemeris provides the sky data backends: a remote HTTP service and
// a YAML fixture, plus decorators for caching and for falling back from one
// backend to another.
package ephemeris

import (
	"errors"
	"fmt"
	"math"

	"AstroInsight/internal/domain/models"
)

var (
	// ErrUnavailable means the backend could not be reached or refused the call.
	ErrUnavailable = errors.New("ephemeris unavailable")
	// ErrInvalidData means the backend answered with unusable values.
	ErrInvalidData = errors.New("ephemeris returned invalid data")
)

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func checkPositions(pos map[models.Body]models.BodyPosition) error {
	if len(pos) == 0 {
		return fmt.Errorf("%w: no positions", ErrInvalidData)
	}
	for b, p := range pos {
		if !b.Valid() {
			return fmt.Errorf("%w: unknown body %d", ErrInvalidData, int(b))
		}
		if !finite(p.Longitude) || !finite(p.Speed) {
			return fmt.Errorf("%w: %s not finite", ErrInvalidData, b)
		}
	}
	return nil
}

func checkHouses(h models.Houses) error {
	for i, c := range h.Cusps {
		if !finite(c) {
			return fmt.Errorf("%w: cusp %d not finite", ErrInvalidData, i+1)
		}
	}
	if !finite(h.Ascendant) || !finite(h.Midheaven) {
		return fmt.Errorf("%w: angles not finite", ErrInvalidData)
	}
	return nil
}

func checkLunar(lp models.LunarPoints) error {
	if !finite(lp.NorthNode) || !finite(lp.Lilith) {
		return fmt.Errorf("%w: lunar points not finite", ErrInvalidData)
	}
	return nil
}
