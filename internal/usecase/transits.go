package usecase

import (
	"context"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/services/astro"
)

// Point labels of a transit scan.
const (
	TransitLabel = "transito"
	NatalLabel   = "natale"
	northNode    = "nodo_nord"
)

// Transits compares the sky at req.At (now when unset) with the natal chart.
// The natal north node takes part in the scan.
func (s *ChartService) Transits(ctx context.Context, req models.TransitRequest) (res models.TransitsResult, err error) {
	defer s.observe("transits", time.Now(), &err)

	birth, err := birthMoment(req.BirthData)
	if err != nil {
		return models.TransitsResult{}, err
	}
	at := s.now()
	if req.At != nil {
		at = req.At.UTC()
	}

	natal, err := s.skyAt(ctx, birth)
	if err != nil {
		return models.TransitsResult{}, err
	}
	current, err := s.skyAt(ctx, at)
	if err != nil {
		return models.TransitsResult{}, err
	}
	bodies, err := current.bodies()
	if err != nil {
		return models.TransitsResult{}, err
	}

	natalPoints := append(astro.PointsFrom(NatalLabel, natal.longitudes()), astro.Point{
		Name:      astro.PointName(NatalLabel, northNode),
		Longitude: natal.lunar.NorthNode,
	})
	aspects := s.aspects.Aspects(astro.PointsFrom(TransitLabel, current.longitudes()), natalPoints)

	return models.TransitsResult{
		Moment:  at,
		Bodies:  bodies,
		Nodes:   astro.LunarNodes(current.lunar.NorthNode),
		Lilith:  astro.ToSignPosition(current.lunar.Lilith),
		Aspects: astro.Top(aspects, s.opts.Limits.Transits),
	}, nil
}
