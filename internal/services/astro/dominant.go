package astro

import (
	"fmt"

	"AstroInsight/internal/domain/models"
)

// AscendantWeight is the weight the ascendant gives to the ruler of its sign.
const AscendantWeight = 4.0

var bodyWeights = map[models.Body]float64{
	models.Sun:     4,
	models.Moon:    4,
	models.Mercury: 2,
	models.Venus:   2,
	models.Mars:    2,
	models.Jupiter: 1.5,
	models.Saturn:  1.5,
	models.Uranus:  1,
	models.Neptune: 1,
	models.Pluto:   1,
	models.Chiron:  0.5,
}

// DominantPlanet scores the ruler of each occupied sign: the ascendant first,
// then the bodies in canonical order. On a tie the ruler that scored first wins.
func DominantPlanet(chart models.ChartPoints) (models.DominantPlanet, error) {
	if err := CheckLongitude(chart.Ascendant); err != nil {
		return models.DominantPlanet{}, fmt.Errorf("ascendant: %w", err)
	}
	if err := checkBodies(chart.Bodies); err != nil {
		return models.DominantPlanet{}, err
	}
	scores := make(map[models.Body]float64)
	var order []models.Body
	add := func(lon, w float64) {
		r := RulerOf(SignOf(lon))
		if _, seen := scores[r]; !seen {
			order = append(order, r)
		}
		scores[r] += w
	}

	add(chart.Ascendant, AscendantWeight)
	for _, b := range models.Bodies {
		if lon, ok := chart.Bodies[b]; ok {
			add(lon, bodyWeights[b])
		}
	}

	res := models.DominantPlanet{Scores: scores}
	for _, r := range order {
		if scores[r] > res.Score {
			res.Planet = r
			res.Score = scores[r]
		}
	}
	return res, nil
}
