package astro

import (
	"fmt"

	"AstroInsight/internal/domain/models"
)

// Distribution buckets bodies by element, quality and polarity. Dominants are
// the largest buckets; ties go to the first-declared element or quality.
func Distribution(positions map[models.Body]models.SignPosition) (models.Distribution, error) {
	for _, b := range models.Bodies {
		sp, ok := positions[b]
		if !ok {
			continue
		}
		if err := CheckLongitude(sp.Longitude); err != nil {
			return models.Distribution{}, fmt.Errorf("%s: %w", b, err)
		}
		if !sp.Sign.Valid() {
			return models.Distribution{}, fmt.Errorf("%w: %s has invalid sign %d", ErrInvalidInput, b, int(sp.Sign))
		}
	}
	d := models.Distribution{
		Elements:       make(map[models.Element][]models.Body, len(models.Elements)),
		Qualities:      make(map[models.Quality][]models.Body, len(models.Qualities)),
		Polarities:     make(map[models.Polarity][]models.Body, len(models.Polarities)),
		ElementCounts:  make(map[models.Element]int, len(models.Elements)),
		QualityCounts:  make(map[models.Quality]int, len(models.Qualities)),
		PolarityCounts: make(map[models.Polarity]int, len(models.Polarities)),
	}
	for _, e := range models.Elements {
		d.Elements[e] = []models.Body{}
		d.ElementCounts[e] = 0
	}
	for _, q := range models.Qualities {
		d.Qualities[q] = []models.Body{}
		d.QualityCounts[q] = 0
	}
	for _, p := range models.Polarities {
		d.Polarities[p] = []models.Body{}
		d.PolarityCounts[p] = 0
	}

	for _, b := range models.Bodies {
		sp, ok := positions[b]
		if !ok {
			continue
		}
		e := ElementOf(sp.Sign)
		q := QualityOf(sp.Sign)
		p := PolarityOf(e)
		d.Elements[e] = append(d.Elements[e], b)
		d.Qualities[q] = append(d.Qualities[q], b)
		d.Polarities[p] = append(d.Polarities[p], b)
		d.ElementCounts[e]++
		d.QualityCounts[q]++
		d.PolarityCounts[p]++
	}

	d.DominantElement = models.Elements[0]
	for _, e := range models.Elements[1:] {
		if d.ElementCounts[e] > d.ElementCounts[d.DominantElement] {
			d.DominantElement = e
		}
	}
	d.DominantQuality = models.Qualities[0]
	for _, q := range models.Qualities[1:] {
		if d.QualityCounts[q] > d.QualityCounts[d.DominantQuality] {
			d.DominantQuality = q
		}
	}
	return d, nil
}

// SignPositions decomposes every longitude of a chart.
func SignPositions(bodies map[models.Body]float64) (map[models.Body]models.SignPosition, error) {
	if err := checkBodies(bodies); err != nil {
		return nil, err
	}
	out := make(map[models.Body]models.SignPosition, len(bodies))
	for b, lon := range bodies {
		out[b] = ToSignPosition(lon)
	}
	return out, nil
}
