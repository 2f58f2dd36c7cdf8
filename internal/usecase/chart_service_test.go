package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"AstroInsight/internal/domain/models"
	"AstroInsight/internal/services/astro"
	"AstroInsight/internal/services/ephemeris"
	applogger "AstroInsight/pkg/logger"
	"AstroInsight/pkg/metrics"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func testFixture() ephemeris.Fixture {
	var cusps [12]float64
	for i := range cusps {
		cusps[i] = math.Mod(100+30*float64(i), 360)
	}
	return ephemeris.Fixture{
		Epoch: epoch,
		Bodies: map[string]models.BodyPosition{
			"sole":     {Longitude: 0.5, Speed: 0.9856},
			"luna":     {Longitude: 120.3, Speed: 13.2},
			"mercurio": {Longitude: 15.2, Speed: 1.5},
			"venere":   {Longitude: 340, Speed: 1.2},
			"marte":    {Longitude: 330.5, Speed: 0.77},
			"giove":    {Longitude: 45, Speed: 0.23},
			"saturno":  {Longitude: 345, Speed: 0.12},
			"urano":    {Longitude: 50, Speed: 0.04},
			"nettuno":  {Longitude: 357, Speed: 0.03},
			"plutone":  {Longitude: 300.5, Speed: 0.02},
			"chirone":  {Longitude: 18, Speed: -0.05},
		},
		Houses: models.Houses{Cusps: cusps, Ascendant: 100, Midheaven: 10},
		Lunar:  models.LunarPoints{NorthNode: 15, Lilith: 200},
	}
}

// flaky fails every call once failing is set.
type flaky struct {
	*ephemeris.FileProvider
	failing bool
	calls   int
}

var errDown = errors.New("backend down")

func (f *flaky) PositionsAt(ctx context.Context, t time.Time) (map[models.Body]models.BodyPosition, error) {
	f.calls++
	if f.failing {
		return nil, errDown
	}
	return f.FileProvider.PositionsAt(ctx, t)
}

func newTestService(t *testing.T, mutate ...func(*ChartOptions)) (*ChartService, *flaky) {
	t.Helper()
	fp, err := ephemeris.NewFileProvider(testFixture())
	require.NoError(t, err)
	eph := &flaky{FileProvider: fp}

	opts := DefaultChartOptions()
	opts.Now = func() time.Time { return epoch.Add(30 * time.Second) }
	for _, m := range mutate {
		m(&opts)
	}
	return NewChartService(eph, opts, metrics.Nop{}, applogger.Nop()), eph
}

func intp(v int) *int { return &v }

func birth(t time.Time) models.BirthData {
	return models.BirthData{Year: t.Year(), Month: int(t.Month()), Day: t.Day(), Hour: intp(t.Hour()), Minute: intp(t.Minute())}
}

func TestToday(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Today(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "20/03/2024", res.Date)
	assert.Equal(t, "12:00", res.TimeUTC)
	assert.Equal(t, epoch, res.Moment)
	require.Len(t, res.Bodies, len(models.Bodies))

	sun := res.Bodies[models.Sun]
	assert.Equal(t, models.Aries, sun.Sign)
	assert.Equal(t, models.Exaltation, sun.Dignity)
	assert.False(t, sun.Retrograde)
	assert.Nil(t, sun.House)
	assert.True(t, res.Bodies[models.Chiron].Retrograde)

	assert.Equal(t, models.Aries, res.Nodes.North.Sign)
	assert.Equal(t, models.Libra, res.Nodes.South.Sign)
	assert.InDelta(t, 195, res.Nodes.South.Longitude, 1e-9)
	assert.Equal(t, models.Libra, res.Lilith.Sign)
}

func TestNatal(t *testing.T) {
	svc, _ := newTestService(t)

	chart, err := svc.Natal(context.Background(), birth(epoch))
	require.NoError(t, err)

	assert.InDelta(t, 41.9028, chart.Latitude, 1e-9)
	assert.InDelta(t, 2460390.0, chart.JulianDay, 1e-6)
	assert.Equal(t, models.Cancer, chart.Ascendant.Sign)
	assert.Equal(t, models.Aries, chart.Midheaven.Sign)
	assert.Equal(t, models.Cancer, chart.Houses[models.House(0)].Sign)
	require.Len(t, chart.Houses, 12)

	require.NotNil(t, chart.Bodies[models.Sun].House)
	assert.Equal(t, models.House(8), *chart.Bodies[models.Sun].House)
	assert.Equal(t, models.House(0), *chart.Bodies[models.Moon].House)
	assert.Equal(t, models.House(7), *chart.Bodies[models.Mars].House)

	require.NotNil(t, chart.Fortune)
	assert.InDelta(t, 219.8, chart.Fortune.Longitude, 1e-9)
	assert.Equal(t, models.Scorpio, chart.Fortune.Sign)
	assert.Len(t, chart.Parts, 10)

	require.NotEmpty(t, chart.Aspects)
	assert.LessOrEqual(t, len(chart.Aspects), 20)
	first := chart.Aspects[0]
	assert.Equal(t, "sole", first.PointA)
	assert.Equal(t, "marte", first.PointB)
	assert.Equal(t, "semisestile", first.Name)
	for i := 1; i < len(chart.Aspects); i++ {
		assert.LessOrEqual(t, chart.Aspects[i-1].Orb, chart.Aspects[i].Orb)
	}

	require.Len(t, chart.Patterns, 2)
	assert.Equal(t, models.Stellium, chart.Patterns[0].Kind)
	assert.Equal(t, "Ariete", chart.Patterns[0].Classification)
	assert.Equal(t, []models.Body{models.Sun, models.Mercury, models.Chiron}, chart.Patterns[0].Bodies)
	assert.Equal(t, "Pesci", chart.Patterns[1].Classification)
	assert.Equal(t, []models.Body{models.Venus, models.Mars, models.Saturn, models.Neptune}, chart.Patterns[1].Bodies)

	// fire and water tie at four, fixed and mutable at four
	assert.Equal(t, models.Fire, chart.Distribution.DominantElement)
	assert.Equal(t, models.Fixed, chart.Distribution.DominantQuality)

	// Mars and Neptune tie at 6.5; Mars scored first
	assert.Equal(t, models.Mars, chart.Dominant.Planet)
	assert.InDelta(t, 6.5, chart.Dominant.Score, 1e-9)
	assert.InDelta(t, 6.5, chart.Dominant.Scores[models.Neptune], 1e-9)
}

func TestNatal_Location(t *testing.T) {
	svc, _ := newTestService(t)
	lat, lon := 45.46, 9.19
	b := birth(epoch)
	b.Latitude, b.Longitude = &lat, &lon

	chart, err := svc.Natal(context.Background(), b)
	require.NoError(t, err)
	assert.Equal(t, lat, chart.Latitude)
	assert.Equal(t, lon, chart.Longitude)
}

func TestNatal_InvalidDate(t *testing.T) {
	svc, eph := newTestService(t)

	_, err := svc.Natal(context.Background(), models.BirthData{Year: 2023, Month: 2, Day: 30})
	require.Error(t, err)
	assert.ErrorIs(t, err, astro.ErrInvalidInput)
	assert.Zero(t, eph.calls)
}

func TestNatal_EphemerisFailure(t *testing.T) {
	svc, eph := newTestService(t)
	eph.failing = true

	_, err := svc.Natal(context.Background(), birth(epoch))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEphemeris)
	assert.ErrorIs(t, err, errDown)
}

func TestTransits(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Transits(context.Background(), models.TransitRequest{BirthData: birth(epoch)})
	require.NoError(t, err)
	assert.Equal(t, epoch, res.Moment)
	assert.Len(t, res.Aspects, 12)
	for i, a := range res.Aspects {
		assert.True(t, strings.HasPrefix(a.PointA, "transito_"), a.PointA)
		assert.True(t, strings.HasPrefix(a.PointB, "natale_"), a.PointB)
		if i > 0 {
			assert.LessOrEqual(t, res.Aspects[i-1].Orb, a.Orb)
		}
	}
}

func TestTransits_NatalNodeAndSameBody(t *testing.T) {
	svc, _ := newTestService(t, func(o *ChartOptions) { o.Limits.Transits = 0 })
	at := epoch.Add(24 * time.Hour)

	res, err := svc.Transits(context.Background(), models.TransitRequest{BirthData: birth(epoch), At: &at})
	require.NoError(t, err)
	assert.Equal(t, at, res.Moment)

	var node, sunSun bool
	for _, a := range res.Aspects {
		if a.PointB == "natale_nodo_nord" {
			node = true
		}
		if a.PointA == "transito_sole" && a.PointB == "natale_sole" && a.Name == "congiunzione" {
			sunSun = true
			assert.InDelta(t, 0.99, a.Orb, 1e-9)
		}
	}
	assert.True(t, node)
	assert.True(t, sunSun)
}

func TestSolarReturn(t *testing.T) {
	svc, _ := newTestService(t)
	req := models.SolarReturnRequest{BirthData: birth(epoch), CurrentYear: 2025}

	res, err := svc.SolarReturn(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, res.Converged)
	assert.Equal(t, 2, res.Iterations)
	assert.Equal(t, 2025, res.Year)

	want := epoch.Add(time.Duration(360 / 0.9856 * float64(24*time.Hour)))
	assert.WithinDuration(t, want, res.Moment, time.Minute)
	assert.InDelta(t, 0.5, res.Bodies[models.Sun].Longitude, 1e-3)
	assert.Equal(t, models.Cancer, res.Ascendant.Sign)
}

func TestSolarReturn_EphemerisFailure(t *testing.T) {
	svc, eph := newTestService(t)
	eph.failing = true

	_, err := svc.SolarReturn(context.Background(), models.SolarReturnRequest{BirthData: birth(epoch), CurrentYear: 2025})
	assert.ErrorIs(t, err, ErrEphemeris)
}

func TestSignedDiff(t *testing.T) {
	assert.InDelta(t, -2.72, signedDiff(357.78, 0.5), 1e-9)
	assert.InDelta(t, 10, signedDiff(10.5, 0.5), 1e-9)
	assert.InDelta(t, 180, signedDiff(180.5, 0.5), 1e-9)
}

func TestCompatibility(t *testing.T) {
	svc, _ := newTestService(t)
	req := models.PairRequest{Person1: birth(epoch), Person2: birth(epoch.AddDate(0, 0, 30))}

	res, err := svc.Compatibility(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, models.Cancer, res.Person1.Ascendant)
	assert.Equal(t, models.Aries, res.Person1.Sun)
	assert.Equal(t, models.Leo, res.Person1.Moon)
	assert.Equal(t, models.Pisces, res.Person1.Venus)

	assert.Len(t, res.Synastry, 15)
	assert.LessOrEqual(t, len(res.Strengths), 8)
	assert.LessOrEqual(t, len(res.Challenges), 5)
	for _, a := range res.Synastry {
		assert.True(t, strings.HasPrefix(a.PointA, "persona1_"))
		assert.True(t, strings.HasPrefix(a.PointB, "persona2_"))
	}
	for _, a := range res.Strengths {
		assert.Contains(t, []string{astro.Conjunction, astro.Trine, astro.Sextile}, a.Name)
	}
	for _, a := range res.Challenges {
		assert.Contains(t, []string{astro.Square, astro.Opposition}, a.Name)
	}
}

func TestCompatibility_PersonErrorIsLabelled(t *testing.T) {
	svc, _ := newTestService(t)
	req := models.PairRequest{Person1: birth(epoch), Person2: models.BirthData{Year: 2023, Month: 4, Day: 31}}

	_, err := svc.Compatibility(context.Background(), req)
	require.Error(t, err)
	assert.ErrorIs(t, err, astro.ErrInvalidInput)
	assert.Contains(t, err.Error(), "person2")
}

func TestCompositeChart_SamePerson(t *testing.T) {
	svc, _ := newTestService(t)
	req := models.PairRequest{Person1: birth(epoch), Person2: birth(epoch)}

	res, err := svc.CompositeChart(context.Background(), req)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, res.Bodies[models.Sun].Longitude, 1e-9)
	assert.InDelta(t, 100, res.Ascendant.Longitude, 1e-9)
	assert.Len(t, res.Patterns, 2)
	assert.Equal(t, models.Mars, res.Dominant.Planet)
}

func TestAnalyze(t *testing.T) {
	svc, _ := newTestService(t)
	asc := 100.0
	cusps := testFixture().Houses.Cusps
	req := models.AnalyzeRequest{
		Bodies: map[models.Body]float64{
			models.Sun: 0.5, models.Moon: 120.3, models.Mercury: 15.2, models.Venus: 340,
			models.Mars: 330.5, models.Jupiter: 45, models.Saturn: 345,
		},
		Speeds:    map[models.Body]float64{models.Mercury: -0.4},
		Cusps:     cusps[:],
		Ascendant: &asc,
	}

	res, err := svc.Analyze(req)
	require.NoError(t, err)

	assert.Len(t, res.Bodies, 7)
	assert.True(t, res.Bodies[models.Mercury].Retrograde)
	require.NotNil(t, res.Bodies[models.Sun].House)
	assert.Equal(t, models.House(8), *res.Bodies[models.Sun].House)
	assert.Len(t, res.Parts, 10)
	require.NotNil(t, res.Dominant)
	assert.NotEmpty(t, res.Aspects)
}

func TestAnalyze_WithoutAscendant(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Analyze(models.AnalyzeRequest{Bodies: map[models.Body]float64{models.Sun: 10, models.Moon: 130}})
	require.NoError(t, err)
	assert.Nil(t, res.Parts)
	assert.Nil(t, res.Dominant)
	assert.Nil(t, res.Bodies[models.Sun].House)
	require.Len(t, res.Aspects, 1)
	assert.Equal(t, astro.Trine, res.Aspects[0].Name)
}

func TestAnalyze_Invalid(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  models.AnalyzeRequest
	}{
		{"nan longitude", models.AnalyzeRequest{Bodies: map[models.Body]float64{models.Sun: math.NaN()}}},
		{"unknown body", models.AnalyzeRequest{Bodies: map[models.Body]float64{models.Body(42): 10}}},
		{"short cusps", models.AnalyzeRequest{Bodies: map[models.Body]float64{models.Sun: 10}, Cusps: []float64{0, 30, 60}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(tt.req)
			assert.ErrorIs(t, err, astro.ErrInvalidInput)
		})
	}
}
