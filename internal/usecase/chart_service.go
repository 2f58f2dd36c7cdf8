package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"AstroInsight/internal/domain/models"
	domrepo "AstroInsight/internal/domain/repository"
	domsvc "AstroInsight/internal/domain/service"
	"AstroInsight/internal/services/astro"
	applogger "AstroInsight/pkg/logger"
)

// ErrEphemeris wraps every failure of the sky data backend.
var ErrEphemeris = errors.New("ephemeris failure")

// Limits caps the aspect lists returned by each operation.
type Limits struct {
	Natal      int
	Transits   int
	Synastry   int
	Strengths  int
	Challenges int
}

// ChartOptions tunes a ChartService.
type ChartOptions struct {
	Limits           Limits
	OrbMajor         float64
	OrbMinor         float64
	Permutations     bool
	SingleLegCross   bool
	DefaultLatitude  float64
	DefaultLongitude float64
	// Now is the clock used for the current sky; nil means time.Now.
	Now func() time.Time
}

// DefaultChartOptions returns the limits and orbs of the reference service.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Limits:           Limits{Natal: 20, Transits: 12, Synastry: 15, Strengths: 8, Challenges: 5},
		OrbMajor:         astro.DefaultOrbMajor,
		OrbMinor:         astro.DefaultOrbMinor,
		DefaultLatitude:  41.9028,
		DefaultLongitude: 12.4964,
	}
}

// ChartService computes charts from ephemeris data with the astro engine.
type ChartService struct {
	eph      domsvc.Ephemeris
	aspects  *astro.AspectEngine
	patterns *astro.PatternDetector
	opts     ChartOptions
	metrics  domrepo.Metrics
	logger   *applogger.Logger
}

func NewChartService(eph domsvc.Ephemeris, opts ChartOptions, metrics domrepo.Metrics, logger *applogger.Logger) *ChartService {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &ChartService{
		eph:      eph,
		aspects:  astro.NewAspectEngine(astro.WithOrbs(opts.OrbMajor, opts.OrbMinor)),
		patterns: astro.NewPatternDetector(astro.WithPermutations(opts.Permutations), astro.WithSingleLegCross(opts.SingleLegCross)),
		opts:     opts,
		metrics:  metrics,
		logger:   logger,
	}
}

// observe records the outcome of one operation; call it deferred with a
// pointer to the named error.
func (s *ChartService) observe(kind string, start time.Time, err *error) {
	s.metrics.RecordLatency(kind, time.Since(start).Seconds())
	if *err != nil {
		s.metrics.RecordError(errorKind(*err))
		s.logger.Warn("chart failed", applogger.String("kind", kind), applogger.Error(*err))
		return
	}
	s.metrics.RecordChart(kind)
	s.logger.Debug("chart computed",
		applogger.String("kind", kind),
		applogger.Duration("duration_ms", time.Since(start)),
	)
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrEphemeris):
		return "ephemeris"
	case errors.Is(err, astro.ErrUnresolvedHouse):
		return "unresolved_house"
	case errors.Is(err, astro.ErrInvalidInput):
		return "invalid_input"
	default:
		return "internal"
	}
}

// now returns the current minute in UTC, so repeated calls within a minute
// hit the same cache entries.
func (s *ChartService) now() time.Time {
	return s.opts.Now().UTC().Truncate(time.Minute)
}

// sky is what the ephemeris reports at one moment.
type sky struct {
	moment    time.Time
	positions map[models.Body]models.BodyPosition
	lunar     models.LunarPoints
	houses    *models.Houses
}

func (s *ChartService) skyAt(ctx context.Context, t time.Time) (*sky, error) {
	pos, err := s.eph.PositionsAt(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%w: positions: %w", ErrEphemeris, err)
	}
	lunar, err := s.eph.LunarPointsAt(ctx, t)
	if err != nil {
		return nil, fmt.Errorf("%w: lunar points: %w", ErrEphemeris, err)
	}
	return &sky{moment: t, positions: pos, lunar: lunar}, nil
}

func (s *ChartService) skyWithHouses(ctx context.Context, t time.Time, lat, lon float64) (*sky, error) {
	sk, err := s.skyAt(ctx, t)
	if err != nil {
		return nil, err
	}
	h, err := s.eph.HousesAt(ctx, t, lat, lon)
	if err != nil {
		return nil, fmt.Errorf("%w: houses: %w", ErrEphemeris, err)
	}
	sk.houses = &h
	return sk, nil
}

func (sk *sky) longitudes() map[models.Body]float64 {
	out := make(map[models.Body]float64, len(sk.positions))
	for b, p := range sk.positions {
		out[b] = p.Longitude
	}
	return out
}

// bodies decorates every position; with houses set each body is placed too.
func (sk *sky) bodies() (map[models.Body]models.BodyInfo, error) {
	var cusps []float64
	if sk.houses != nil {
		cusps = sk.houses.Cusps[:]
	}
	return describeBodies(sk.positions, cusps)
}

func describeBodies(positions map[models.Body]models.BodyPosition, cusps []float64) (map[models.Body]models.BodyInfo, error) {
	out := make(map[models.Body]models.BodyInfo, len(positions))
	for b, p := range positions {
		info, err := astro.BodyInfo(b, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", b, err)
		}
		if cusps != nil {
			h, err := astro.HouseOf(p.Longitude, cusps)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", b, err)
			}
			info.House = &h
		}
		out[b] = info
	}
	return out, nil
}

func houseCusps(h models.Houses) map[models.House]models.SignPosition {
	out := make(map[models.House]models.SignPosition, len(h.Cusps))
	for i, c := range h.Cusps {
		out[models.House(i)] = astro.ToSignPosition(c)
	}
	return out
}

func (sk *sky) chartPoints() models.ChartPoints {
	cp := models.ChartPoints{Bodies: sk.longitudes()}
	if sk.houses != nil {
		cp.Ascendant = sk.houses.Ascendant
		cp.Midheaven = sk.houses.Midheaven
	}
	return cp
}

func birthMoment(b models.BirthData) (time.Time, error) {
	t, err := b.Moment()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %v", astro.ErrInvalidInput, err)
	}
	return t, nil
}
