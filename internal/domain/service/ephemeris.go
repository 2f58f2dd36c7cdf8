package service

import (
	"context"
	"time"

	"AstroInsight/internal/domain/models"
)

// Ephemeris reports raw sky data at a moment. Longitudes are ecliptic degrees;
// implementations need not normalise them.
type Ephemeris interface {
	PositionsAt(ctx context.Context, t time.Time) (map[models.Body]models.BodyPosition, error)
	// HousesAt returns Placidus cusps for a geographic location.
	HousesAt(ctx context.Context, t time.Time, lat, lon float64) (models.Houses, error)
	LunarPointsAt(ctx context.Context, t time.Time) (models.LunarPoints, error)
}
