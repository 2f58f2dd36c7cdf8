// Package astro computes derived astrological relationships from ecliptic
// longitudes: aspects, patterns, dignities, houses, arabic parts, element and
// quality distribution, composite charts and dominant planets.
//
// Every function is pure. Static tables are package-level and never mutated,
// so all entry points are safe for concurrent use.
package astro

import (
	"fmt"
	"math"

	"AstroInsight/internal/domain/models"
)

// Normalize reduces deg into [0,360).
func Normalize(deg float64) float64 {
	d := math.Mod(deg, 360)
	if d < 0 {
		d += 360
	}
	// -1e-15 + 360 rounds to 360
	if d >= 360 {
		d = 0
	}
	return d
}

// CheckLongitude rejects NaN and infinite values.
func CheckLongitude(deg float64) error {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return fmt.Errorf("%w: longitude %v is not finite", ErrInvalidInput, deg)
	}
	return nil
}

// SignOf returns the sign containing deg. The result is always a valid sign;
// non-finite input lands on Aries, so callers holding untrusted longitudes
// check them with CheckLongitude first.
func SignOf(deg float64) models.Sign {
	n := Normalize(deg)
	if !(n >= 0) {
		return models.Aries
	}
	idx := int(n / 30)
	if idx > 11 {
		idx = 11
	}
	return models.Sign(idx)
}

// checkBodies validates every longitude of a body map, in canonical order.
func checkBodies(bodies map[models.Body]float64) error {
	for _, b := range models.Bodies {
		lon, ok := bodies[b]
		if !ok {
			continue
		}
		if err := CheckLongitude(lon); err != nil {
			return fmt.Errorf("%s: %w", b, err)
		}
	}
	return nil
}

// ToSignPosition decomposes deg into sign and degree within the sign.
func ToSignPosition(deg float64) models.SignPosition {
	n := Normalize(deg)
	return models.SignPosition{
		Longitude: n,
		Sign:      SignOf(n),
		Degree:    Round(math.Mod(n, 30), 2),
	}
}

// Separation is the minimal angular distance between a and b, in [0,180].
func Separation(a, b float64) float64 {
	d := Normalize(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}

// Midpoint is the circular midpoint of a and b, corrected across the 0° seam
// so that 350° and 10° meet at 0° rather than 180°.
func Midpoint(a, b float64) float64 {
	a, b = Normalize(a), Normalize(b)
	if math.Abs(a-b) > 180 {
		return Normalize((a + b + 360) / 2)
	}
	return (a + b) / 2
}

// Round rounds x to the given number of decimals.
func Round(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}
