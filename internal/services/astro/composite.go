package astro

import (
	"fmt"

	"AstroInsight/internal/domain/models"
)

// Composite builds the midpoint chart of a and b. Both charts must carry the
// same bodies.
func Composite(a, b models.ChartPoints) (models.ChartPoints, error) {
	for i, c := range []models.ChartPoints{a, b} {
		if err := checkChart(c); err != nil {
			return models.ChartPoints{}, fmt.Errorf("chart %d: %w", i+1, err)
		}
	}
	if len(a.Bodies) != len(b.Bodies) {
		return models.ChartPoints{}, fmt.Errorf("%w: charts carry %d and %d bodies", ErrInvalidInput, len(a.Bodies), len(b.Bodies))
	}
	out := models.ChartPoints{
		Bodies:    make(map[models.Body]float64, len(a.Bodies)),
		Ascendant: Midpoint(a.Ascendant, b.Ascendant),
		Midheaven: Midpoint(a.Midheaven, b.Midheaven),
	}
	for body, la := range a.Bodies {
		lb, ok := b.Bodies[body]
		if !ok {
			return models.ChartPoints{}, fmt.Errorf("%w: %s missing from second chart", ErrInvalidInput, body)
		}
		out.Bodies[body] = Midpoint(la, lb)
	}
	return out, nil
}

func checkChart(c models.ChartPoints) error {
	if err := CheckLongitude(c.Ascendant); err != nil {
		return fmt.Errorf("ascendant: %w", err)
	}
	if err := CheckLongitude(c.Midheaven); err != nil {
		return fmt.Errorf("midheaven: %w", err)
	}
	return checkBodies(c.Bodies)
}
