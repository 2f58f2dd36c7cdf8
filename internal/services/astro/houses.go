package astro

import (
	"fmt"

	"AstroInsight/internal/domain/models"
)

// HouseOf returns the house whose sector contains longitude. House i spans
// cusps[i] up to cusps[i+1], wrapping at 360°.
func HouseOf(longitude float64, cusps []float64) (models.House, error) {
	if len(cusps) != 12 {
		return 0, fmt.Errorf("%w: expected 12 cusps, got %d", ErrInvalidInput, len(cusps))
	}
	if err := CheckLongitude(longitude); err != nil {
		return 0, err
	}
	for i, c := range cusps {
		if err := CheckLongitude(c); err != nil {
			return 0, fmt.Errorf("cusp %d: %w", i+1, err)
		}
	}

	l := Normalize(longitude)
	for i := 0; i < 12; i++ {
		start := Normalize(cusps[i])
		end := Normalize(cusps[(i+1)%12])
		if end < start {
			end += 360
		}
		p := l
		if p < start {
			p += 360
		}
		if start <= p && p < end {
			return models.House(i), nil
		}
	}
	return 0, fmt.Errorf("%w: longitude %.4f", ErrUnresolvedHouse, l)
}

// HousesOf places every body of a chart. The first failure aborts.
func HousesOf(bodies map[models.Body]float64, cusps []float64) (map[models.Body]models.House, error) {
	out := make(map[models.Body]models.House, len(bodies))
	for _, b := range models.Bodies {
		lon, ok := bodies[b]
		if !ok {
			continue
		}
		h, err := HouseOf(lon, cusps)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b, err)
		}
		out[b] = h
	}
	return out, nil
}
