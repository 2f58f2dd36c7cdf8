package ephemeris

import (
	"context"
	"errors"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/domain/service"
	applogger "AstroInsight/pkg/logger"
)

// FallbackProvider asks primary first and answers from secondary when the
// primary is unavailable. Invalid data and caller cancellation are returned
// as they are.
type FallbackProvider struct {
	primary   service.Ephemeris
	secondary service.Ephemeris
	logger    *applogger.Logger
}

// NewFallbackProvider chains primary and secondary.
func NewFallbackProvider(primary, secondary service.Ephemeris, l *applogger.Logger) *FallbackProvider {
	return &FallbackProvider{primary: primary, secondary: secondary, logger: l}
}

func (p *FallbackProvider) degrade(ctx context.Context, op string, err error) bool {
	if ctx.Err() != nil || !errors.Is(err, ErrUnavailable) {
		return false
	}
	p.logger.WithContext(ctx).Warn("primary ephemeris unavailable, using fallback",
		applogger.String("op", op),
		applogger.Error(err),
	)
	return true
}

func (p *FallbackProvider) PositionsAt(ctx context.Context, t time.Time) (map[models.Body]models.BodyPosition, error) {
	pos, err := p.primary.PositionsAt(ctx, t)
	if err != nil && p.degrade(ctx, "positions", err) {
		return p.secondary.PositionsAt(ctx, t)
	}
	return pos, err
}

func (p *FallbackProvider) HousesAt(ctx context.Context, t time.Time, lat, lon float64) (models.Houses, error) {
	h, err := p.primary.HousesAt(ctx, t, lat, lon)
	if err != nil && p.degrade(ctx, "houses", err) {
		return p.secondary.HousesAt(ctx, t, lat, lon)
	}
	return h, err
}

func (p *FallbackProvider) LunarPointsAt(ctx context.Context, t time.Time) (models.LunarPoints, error) {
	lp, err := p.primary.LunarPointsAt(ctx, t)
	if err != nil && p.degrade(ctx, "lunar", err) {
		return p.secondary.LunarPointsAt(ctx, t)
	}
	return lp, err
}
