package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/services/astro"
)

const (
	solarReturnSteps     = 10
	solarReturnTolerance = 0.0001 // degrees
	meanSunSpeed         = 0.9856 // degrees per day
)

// SolarReturn finds the moment in req.CurrentYear when the Sun is back on its
// natal longitude and casts the chart for that moment.
func (s *ChartService) SolarReturn(ctx context.Context, req models.SolarReturnRequest) (res models.SolarReturnResult, err error) {
	defer s.observe("solar_return", time.Now(), &err)

	birth, err := birthMoment(req.BirthData)
	if err != nil {
		return models.SolarReturnResult{}, err
	}
	natal, err := s.eph.PositionsAt(ctx, birth)
	if err != nil {
		return models.SolarReturnResult{}, fmt.Errorf("%w: natal positions: %w", ErrEphemeris, err)
	}
	sun, ok := natal[models.Sun]
	if !ok {
		return models.SolarReturnResult{}, fmt.Errorf("%w: no natal sun", ErrEphemeris)
	}

	start := time.Date(req.CurrentYear, time.Month(req.Month), req.Day-2, 0, 0, 0, 0, time.UTC)
	moment, steps, converged, err := s.findSolarReturn(ctx, sun.Longitude, start)
	if err != nil {
		return models.SolarReturnResult{}, err
	}
	if !converged {
		s.logger.Warn("solar return did not converge")
	}

	lat, lon := req.Location(s.opts.DefaultLatitude, s.opts.DefaultLongitude)
	sk, err := s.skyWithHouses(ctx, moment, lat, lon)
	if err != nil {
		return models.SolarReturnResult{}, err
	}
	bodies, err := sk.bodies()
	if err != nil {
		return models.SolarReturnResult{}, err
	}
	return models.SolarReturnResult{
		Year:       req.CurrentYear,
		Moment:     moment,
		Converged:  converged,
		Iterations: steps,
		Bodies:     bodies,
		Houses:     houseCusps(*sk.houses),
		Ascendant:  astro.ToSignPosition(sk.houses.Ascendant),
		Midheaven:  astro.ToSignPosition(sk.houses.Midheaven),
		Nodes:      astro.LunarNodes(sk.lunar.NorthNode),
	}, nil
}

// findSolarReturn refines t by Newton steps of diff/speed days, where diff is
// the signed distance of the Sun from target in (-180,180].
func (s *ChartService) findSolarReturn(ctx context.Context, target float64, t time.Time) (time.Time, int, bool, error) {
	for step := 1; step <= solarReturnSteps; step++ {
		pos, err := s.eph.PositionsAt(ctx, t)
		if err != nil {
			return time.Time{}, step, false, fmt.Errorf("%w: solar return: %w", ErrEphemeris, err)
		}
		sun, ok := pos[models.Sun]
		if !ok {
			return time.Time{}, step, false, fmt.Errorf("%w: no sun at %s", ErrEphemeris, t.Format(time.RFC3339))
		}
		diff := signedDiff(sun.Longitude, target)
		if math.Abs(diff) < solarReturnTolerance {
			return t, step, true, nil
		}
		speed := sun.Speed
		if speed <= 0 {
			speed = meanSunSpeed
		}
		t = t.Add(-time.Duration(diff / speed * float64(24*time.Hour)))
	}
	return t, solarReturnSteps, false, nil
}

func signedDiff(lon, target float64) float64 {
	d := astro.Normalize(lon - target)
	if d > 180 {
		d -= 360
	}
	return d
}
