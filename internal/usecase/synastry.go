package usecase

import (
	"context"
	"fmt"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/services/astro"
)

// Labels of the two charts in a synastry.
const (
	Person1Label = "persona1"
	Person2Label = "persona2"
)

func (s *ChartService) person(ctx context.Context, b models.BirthData) (*sky, error) {
	t, err := birthMoment(b)
	if err != nil {
		return nil, err
	}
	lat, lon := b.Location(s.opts.DefaultLatitude, s.opts.DefaultLongitude)
	return s.skyWithHouses(ctx, t, lat, lon)
}

func (s *ChartService) pair(ctx context.Context, req models.PairRequest) (*sky, *sky, error) {
	a, err := s.person(ctx, req.Person1)
	if err != nil {
		return nil, nil, fmt.Errorf("person1: %w", err)
	}
	b, err := s.person(ctx, req.Person2)
	if err != nil {
		return nil, nil, fmt.Errorf("person2: %w", err)
	}
	return a, b, nil
}

// Compatibility scans the two birth charts against each other. Strengths and
// challenges are drawn from the whole synastry, before truncation.
func (s *ChartService) Compatibility(ctx context.Context, req models.PairRequest) (res models.CompatibilityResult, err error) {
	defer s.observe("compatibility", time.Now(), &err)

	a, b, err := s.pair(ctx, req)
	if err != nil {
		return models.CompatibilityResult{}, err
	}
	p1, err := summarize(a)
	if err != nil {
		return models.CompatibilityResult{}, fmt.Errorf("person1: %w", err)
	}
	p2, err := summarize(b)
	if err != nil {
		return models.CompatibilityResult{}, fmt.Errorf("person2: %w", err)
	}

	synastry := s.aspects.Aspects(
		astro.PointsFrom(Person1Label, a.longitudes()),
		astro.PointsFrom(Person2Label, b.longitudes()),
	)
	return models.CompatibilityResult{
		Person1:    p1,
		Person2:    p2,
		Synastry:   astro.Top(synastry, s.opts.Limits.Synastry),
		Strengths:  astro.Top(astro.FilterByName(synastry, astro.Conjunction, astro.Trine, astro.Sextile), s.opts.Limits.Strengths),
		Challenges: astro.Top(astro.FilterByName(synastry, astro.Square, astro.Opposition), s.opts.Limits.Challenges),
	}, nil
}

func summarize(sk *sky) (models.PersonSummary, error) {
	bodies, err := sk.bodies()
	if err != nil {
		return models.PersonSummary{}, err
	}
	return models.PersonSummary{
		Bodies:    bodies,
		Ascendant: astro.SignOf(sk.houses.Ascendant),
		Sun:       bodies[models.Sun].Sign,
		Moon:      bodies[models.Moon].Sign,
		Venus:     bodies[models.Venus].Sign,
		Mars:      bodies[models.Mars].Sign,
	}, nil
}

// CompositeChart builds the midpoint chart of two people and analyses it as a
// chart of its own.
func (s *ChartService) CompositeChart(ctx context.Context, req models.PairRequest) (res models.CompositeResult, err error) {
	defer s.observe("composite", time.Now(), &err)

	a, b, err := s.pair(ctx, req)
	if err != nil {
		return models.CompositeResult{}, err
	}
	comp, err := astro.Composite(a.chartPoints(), b.chartPoints())
	if err != nil {
		return models.CompositeResult{}, err
	}

	positions, err := astro.SignPositions(comp.Bodies)
	if err != nil {
		return models.CompositeResult{}, err
	}
	patterns, dist, err := s.shape(comp.Bodies)
	if err != nil {
		return models.CompositeResult{}, err
	}
	dominant, err := astro.DominantPlanet(comp)
	if err != nil {
		return models.CompositeResult{}, err
	}
	return models.CompositeResult{
		Bodies:       positions,
		Ascendant:    astro.ToSignPosition(comp.Ascendant),
		Midheaven:    astro.ToSignPosition(comp.Midheaven),
		Aspects:      astro.Top(s.aspects.NatalAspects(astro.PointsFrom("", comp.Bodies)), s.opts.Limits.Natal),
		Patterns:     patterns,
		Distribution: dist,
		Dominant:     dominant,
	}, nil
}
