package ephemeris

import (
	"context"
	"strconv"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/domain/repository"
	"AstroInsight/internal/domain/service"
	"AstroInsight/pkg/cache"
	applogger "AstroInsight/pkg/logger"
)

// CachedProvider memoises another Ephemeris. Keys carry the moment at second
// precision and, for houses, the location at four decimals.
type CachedProvider struct {
	next    service.Ephemeris
	cache   cache.Service
	ttl     time.Duration
	metrics repository.Metrics
	logger  *applogger.Logger
}

// NewCachedProvider wraps next with c.
func NewCachedProvider(next service.Ephemeris, c cache.Service, ttl time.Duration, m repository.Metrics, l *applogger.Logger) *CachedProvider {
	return &CachedProvider{next: next, cache: c, ttl: ttl, metrics: m, logger: l}
}

func momentKey(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(time.RFC3339)
}

func (p *CachedProvider) onErr(err error) {
	p.logger.Warn("ephemeris cache", applogger.Error(err))
}

func (p *CachedProvider) PositionsAt(ctx context.Context, t time.Time) (map[models.Body]models.BodyPosition, error) {
	key := cache.Key("eph:pos", momentKey(t))
	v, hit, err := cache.GetOrLoad(ctx, p.cache, key, p.ttl, func(ctx context.Context) (map[models.Body]models.BodyPosition, error) {
		return p.next.PositionsAt(ctx, t)
	}, p.onErr)
	p.metrics.RecordCacheLookup(hit)
	return v, err
}

func (p *CachedProvider) HousesAt(ctx context.Context, t time.Time, lat, lon float64) (models.Houses, error) {
	key := cache.Key("eph:houses", momentKey(t),
		formatCoord(lat), formatCoord(lon))
	v, hit, err := cache.GetOrLoad(ctx, p.cache, key, p.ttl, func(ctx context.Context) (models.Houses, error) {
		return p.next.HousesAt(ctx, t, lat, lon)
	}, p.onErr)
	p.metrics.RecordCacheLookup(hit)
	return v, err
}

func (p *CachedProvider) LunarPointsAt(ctx context.Context, t time.Time) (models.LunarPoints, error) {
	key := cache.Key("eph:lunar", momentKey(t))
	v, hit, err := cache.GetOrLoad(ctx, p.cache, key, p.ttl, func(ctx context.Context) (models.LunarPoints, error) {
		return p.next.LunarPointsAt(ctx, t)
	}, p.onErr)
	p.metrics.RecordCacheLookup(hit)
	return v, err
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
