package usecase

import (
	"fmt"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/services/astro"
)

// Analyze runs the engine over caller-supplied longitudes. Houses are placed
// when cusps are given; arabic parts and the dominant planet need the
// ascendant.
func (s *ChartService) Analyze(req models.AnalyzeRequest) (res models.AnalysisResult, err error) {
	defer s.observe("analyze", time.Now(), &err)

	for b, lon := range req.Bodies {
		if !b.Valid() {
			return models.AnalysisResult{}, fmt.Errorf("%w: unknown body %d", astro.ErrInvalidInput, int(b))
		}
		if err := astro.CheckLongitude(lon); err != nil {
			return models.AnalysisResult{}, fmt.Errorf("%s: %w", b, err)
		}
	}
	if len(req.Cusps) != 0 && len(req.Cusps) != 12 {
		return models.AnalysisResult{}, fmt.Errorf("%w: expected 12 cusps, got %d", astro.ErrInvalidInput, len(req.Cusps))
	}

	positions := make(map[models.Body]models.BodyPosition, len(req.Bodies))
	for b, lon := range req.Bodies {
		positions[b] = models.BodyPosition{Longitude: lon, Speed: req.Speeds[b]}
	}
	var cusps []float64
	if len(req.Cusps) == 12 {
		cusps = req.Cusps
	}
	bodies, err := describeBodies(positions, cusps)
	if err != nil {
		return models.AnalysisResult{}, err
	}

	patterns, dist, err := s.shape(req.Bodies)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	res = models.AnalysisResult{
		Bodies:       bodies,
		Aspects:      s.aspects.NatalAspects(astro.PointsFrom("", req.Bodies)),
		Patterns:     patterns,
		Distribution: dist,
	}
	if req.Ascendant != nil {
		if err := astro.CheckLongitude(*req.Ascendant); err != nil {
			return models.AnalysisResult{}, fmt.Errorf("ascendant: %w", err)
		}
		if res.Parts, err = astro.ArabicParts(astro.ReferencesFrom(req.Bodies, *req.Ascendant)); err != nil {
			return models.AnalysisResult{}, err
		}
		cp := models.ChartPoints{Bodies: req.Bodies, Ascendant: *req.Ascendant}
		if req.Midheaven != nil {
			cp.Midheaven = *req.Midheaven
		}
		dom, err := astro.DominantPlanet(cp)
		if err != nil {
			return models.AnalysisResult{}, err
		}
		res.Dominant = &dom
	}
	return res, nil
}
