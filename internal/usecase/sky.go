package usecase

import (
	"context"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/services/astro"
)

// Today describes the current sky.
func (s *ChartService) Today(ctx context.Context) (res models.SkyResult, err error) {
	return s.SkyAt(ctx, s.now())
}

// SkyAt describes the sky at t: every body with sign, dignity and
// retrograde flag, the lunar nodes and Lilith.
func (s *ChartService) SkyAt(ctx context.Context, t time.Time) (res models.SkyResult, err error) {
	defer s.observe("today", time.Now(), &err)

	t = t.UTC()
	sk, err := s.skyAt(ctx, t)
	if err != nil {
		return models.SkyResult{}, err
	}
	bodies, err := sk.bodies()
	if err != nil {
		return models.SkyResult{}, err
	}
	return models.SkyResult{
		Date:    t.Format("02/01/2006"),
		TimeUTC: t.Format("15:04"),
		Moment:  t,
		Bodies:  bodies,
		Nodes:   astro.LunarNodes(sk.lunar.NorthNode),
		Lilith:  astro.ToSignPosition(sk.lunar.Lilith),
	}, nil
}
