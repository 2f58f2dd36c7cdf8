package ephemeris

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"AstroInsight/internal/domain/models"
	xhttp "AstroInsight/pkg/http"
)

// Remote endpoints, relative to the base URL.
const (
	positionsPath   = "/positions"
	housesPath      = "/houses"
	lunarPointsPath = "/lunar-points"
)

type momentRequest struct {
	Moment time.Time `json:"moment"`
}

type housesRequest struct {
	Moment    time.Time `json:"moment"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	System    string    `json:"house_system"`
}

type positionsResponse struct {
	Bodies map[string]models.BodyPosition `json:"bodies"`
}

// HTTPOption configures an HTTPProvider.
type HTTPOption func(*HTTPProvider)

// WithRetries sets how many extra attempts a transient failure gets.
func WithRetries(n int) HTTPOption {
	return func(p *HTTPProvider) { p.retries = n }
}

// WithBackoff sets the base delay between attempts; attempt i waits i*base.
func WithBackoff(base time.Duration) HTTPOption {
	return func(p *HTTPProvider) { p.backoff = base }
}

// WithClient replaces the HTTP client.
func WithClient(c *xhttp.Client) HTTPOption {
	return func(p *HTTPProvider) { p.client = c }
}

// HTTPProvider reads sky data from a remote ephemeris service speaking JSON.
type HTTPProvider struct {
	baseURL string
	client  *xhttp.Client
	retries int
	backoff time.Duration
}

// NewHTTPProvider builds a provider for the service at baseURL.
func NewHTTPProvider(baseURL string, timeout time.Duration, opts ...HTTPOption) *HTTPProvider {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	p := &HTTPProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  xhttp.NewClient(xhttp.WithTimeout(timeout)),
		backoff: 50 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *HTTPProvider) PositionsAt(ctx context.Context, t time.Time) (map[models.Body]models.BodyPosition, error) {
	var resp positionsResponse
	if err := p.postJSONWithRetry(ctx, positionsPath, momentRequest{Moment: t.UTC()}, &resp); err != nil {
		return nil, err
	}
	out := make(map[models.Body]models.BodyPosition, len(resp.Bodies))
	for label, pos := range resp.Bodies {
		// the service may report extra points; only tracked bodies are kept
		if b, ok := models.ParseBody(label); ok {
			out[b] = pos
		}
	}
	if err := checkPositions(out); err != nil {
		return nil, err
	}
	return out, nil
}

func (p *HTTPProvider) HousesAt(ctx context.Context, t time.Time, lat, lon float64) (models.Houses, error) {
	var h models.Houses
	req := housesRequest{Moment: t.UTC(), Latitude: lat, Longitude: lon, System: "P"}
	if err := p.postJSONWithRetry(ctx, housesPath, req, &h); err != nil {
		return models.Houses{}, err
	}
	if err := checkHouses(h); err != nil {
		return models.Houses{}, err
	}
	return h, nil
}

func (p *HTTPProvider) LunarPointsAt(ctx context.Context, t time.Time) (models.LunarPoints, error) {
	var lp models.LunarPoints
	if err := p.postJSONWithRetry(ctx, lunarPointsPath, momentRequest{Moment: t.UTC()}, &lp); err != nil {
		return models.LunarPoints{}, err
	}
	if err := checkLunar(lp); err != nil {
		return models.LunarPoints{}, err
	}
	return lp, nil
}

func (p *HTTPProvider) postJSON(ctx context.Context, path string, payload, dest interface{}) error {
	return p.client.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    p.baseURL + path,
		Body:   payload,
	}, dest)
}

// postJSONWithRetry retries transport failures and 5xx/429 answers with a
// linear backoff. Decode failures map to ErrInvalidData, the rest to
// ErrUnavailable.
func (p *HTTPProvider) postJSONWithRetry(ctx context.Context, path string, payload, dest interface{}) error {
	var err error
	for attempt := 0; attempt <= p.retries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(time.Duration(attempt) * p.backoff):
			case <-ctx.Done():
				return fmt.Errorf("%w: post %s: %w", ErrUnavailable, path, ctx.Err())
			}
		}
		err = p.postJSON(ctx, path, payload, dest)
		if err == nil || !xhttp.IsTemporary(err) || ctx.Err() != nil {
			break
		}
	}
	if err == nil {
		return nil
	}
	var de *xhttp.DecodeError
	if errors.As(err, &de) {
		return fmt.Errorf("%w: post %s: %w", ErrInvalidData, path, err)
	}
	return fmt.Errorf("%w: post %s: %w", ErrUnavailable, path, err)
}
