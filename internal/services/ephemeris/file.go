package ephemeris

import (
	"context"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"AstroInsight/internal/domain/models"

	"gopkg.in/yaml.v3"
)

const day = 24 * time.Hour

// Fixture is the YAML document served by FileProvider. Body longitudes are
// taken at Epoch and advanced linearly by their daily speed; houses and lunar
// points stay fixed.
type Fixture struct {
	Epoch  time.Time                      `yaml:"epoch"`
	Bodies map[string]models.BodyPosition `yaml:"bodies"`
	Houses models.Houses                  `yaml:"houses"`
	Lunar  models.LunarPoints             `yaml:"lunar"`
}

// FileProvider serves a fixed sky, for development and tests. A provider
// loaded from disk can be reloaded in place.
type FileProvider struct {
	path string

	mu     sync.RWMutex
	epoch  time.Time
	bodies map[models.Body]models.BodyPosition
	houses models.Houses
	lunar  models.LunarPoints
}

// LoadFile reads a fixture from path.
func LoadFile(path string) (*FileProvider, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	p, err := ParseFixture(b)
	if err != nil {
		return nil, err
	}
	p.path = path
	return p, nil
}

// Path returns the file the provider was loaded from, or "".
func (p *FileProvider) Path() string { return p.path }

// Reload re-reads the fixture file. On error the current sky is kept.
func (p *FileProvider) Reload() error {
	if p.path == "" {
		return fmt.Errorf("fixture was not loaded from a file")
	}
	next, err := LoadFile(p.path)
	if err != nil {
		return err
	}
	next.mu.RLock()
	defer next.mu.RUnlock()
	p.mu.Lock()
	p.epoch, p.bodies, p.houses, p.lunar = next.epoch, next.bodies, next.houses, next.lunar
	p.mu.Unlock()
	return nil
}

// ParseFixture decodes and checks a YAML fixture.
func ParseFixture(b []byte) (*FileProvider, error) {
	var fx Fixture
	if err := yaml.Unmarshal(b, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	return NewFileProvider(fx)
}

// NewFileProvider validates fx and serves it.
func NewFileProvider(fx Fixture) (*FileProvider, error) {
	bodies := make(map[models.Body]models.BodyPosition, len(fx.Bodies))
	for label, pos := range fx.Bodies {
		b, ok := models.ParseBody(label)
		if !ok {
			return nil, fmt.Errorf("%w: unknown body %q in fixture", ErrInvalidData, label)
		}
		bodies[b] = pos
	}
	if err := checkPositions(bodies); err != nil {
		return nil, err
	}
	if err := checkHouses(fx.Houses); err != nil {
		return nil, err
	}
	if err := checkLunar(fx.Lunar); err != nil {
		return nil, err
	}
	return &FileProvider{epoch: fx.Epoch, bodies: bodies, houses: fx.Houses, lunar: fx.Lunar}, nil
}

func (p *FileProvider) PositionsAt(ctx context.Context, t time.Time) (map[models.Body]models.BodyPosition, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	days := 0.0
	if !p.epoch.IsZero() {
		days = float64(t.Sub(p.epoch)) / float64(day)
	}
	out := make(map[models.Body]models.BodyPosition, len(p.bodies))
	for b, pos := range p.bodies {
		lon := math.Mod(pos.Longitude+pos.Speed*days, 360)
		if lon < 0 {
			lon += 360
		}
		out[b] = models.BodyPosition{Longitude: lon, Speed: pos.Speed}
	}
	return out, nil
}

func (p *FileProvider) HousesAt(ctx context.Context, _ time.Time, _, _ float64) (models.Houses, error) {
	if err := ctx.Err(); err != nil {
		return models.Houses{}, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.houses, nil
}

func (p *FileProvider) LunarPointsAt(ctx context.Context, _ time.Time) (models.LunarPoints, error) {
	if err := ctx.Err(); err != nil {
		return models.LunarPoints{}, err
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lunar, nil
}
