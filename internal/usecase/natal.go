package usecase

import (
	"context"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/services/astro"
)

// Natal computes the full birth chart.
func (s *ChartService) Natal(ctx context.Context, req models.BirthData) (res models.NatalChart, err error) {
	defer s.observe("natal", time.Now(), &err)

	t, err := birthMoment(req)
	if err != nil {
		return models.NatalChart{}, err
	}
	lat, lon := req.Location(s.opts.DefaultLatitude, s.opts.DefaultLongitude)
	sk, err := s.skyWithHouses(ctx, t, lat, lon)
	if err != nil {
		return models.NatalChart{}, err
	}
	return s.natalFromSky(sk, lat, lon)
}

func (s *ChartService) natalFromSky(sk *sky, lat, lon float64) (models.NatalChart, error) {
	bodies, err := sk.bodies()
	if err != nil {
		return models.NatalChart{}, err
	}
	longs := sk.longitudes()
	parts, err := astro.ArabicParts(astro.ReferencesFrom(longs, sk.houses.Ascendant))
	if err != nil {
		return models.NatalChart{}, err
	}
	patterns, dist, err := s.shape(longs)
	if err != nil {
		return models.NatalChart{}, err
	}
	dominant, err := astro.DominantPlanet(sk.chartPoints())
	if err != nil {
		return models.NatalChart{}, err
	}

	chart := models.NatalChart{
		Moment:       sk.moment,
		JulianDay:    astro.JulianDay(sk.moment),
		Latitude:     lat,
		Longitude:    lon,
		Bodies:       bodies,
		Houses:       houseCusps(*sk.houses),
		Ascendant:    astro.ToSignPosition(sk.houses.Ascendant),
		Midheaven:    astro.ToSignPosition(sk.houses.Midheaven),
		Nodes:        astro.LunarNodes(sk.lunar.NorthNode),
		Lilith:       astro.ToSignPosition(sk.lunar.Lilith),
		Parts:        parts,
		Aspects:      astro.Top(s.aspects.NatalAspects(astro.PointsFrom("", longs)), s.opts.Limits.Natal),
		Patterns:     patterns,
		Distribution: dist,
		Dominant:     dominant,
	}
	if f, ok := parts[astro.PartFortune]; ok {
		chart.Fortune = &f
	}
	return chart, nil
}

// shape finds the patterns and element/quality distribution of a body map.
func (s *ChartService) shape(longs map[models.Body]float64) ([]models.Pattern, models.Distribution, error) {
	patterns, err := s.patterns.Detect(longs)
	if err != nil {
		return nil, models.Distribution{}, err
	}
	positions, err := astro.SignPositions(longs)
	if err != nil {
		return nil, models.Distribution{}, err
	}
	dist, err := astro.Distribution(positions)
	if err != nil {
		return nil, models.Distribution{}, err
	}
	return patterns, dist, nil
}
