package astro

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroInsight/internal/domain/models"
)

func TestNormalize(t *testing.T) {
	cases := map[float64]float64{
		0:      0,
		360:    0,
		725:    5,
		-10:    350,
		-370:   350,
		359.5:  359.5,
		-1e-15: 0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, Normalize(in), 1e-9, "normalize(%v)", in)
	}
}

func TestNormalizeIdempotentAndInRange(t *testing.T) {
	for _, l := range []float64{-7200.25, -359.99, -0.5, 0, 12.5, 359.999, 360, 1080.75, 1e6} {
		n := Normalize(l)
		assert.GreaterOrEqual(t, n, 0.0)
		assert.Less(t, n, 360.0)
		assert.Equal(t, n, Normalize(n))
	}
}

func TestSignInvariantUnderFullTurns(t *testing.T) {
	for _, l := range []float64{0, 15, 29.99, 30, 181.2, 359.9} {
		want := ToSignPosition(l).Sign
		for k := -3; k <= 3; k++ {
			assert.Equal(t, want, ToSignPosition(l+360*float64(k)).Sign, "l=%v k=%d", l, k)
		}
	}
}

func TestToSignPosition(t *testing.T) {
	sp := ToSignPosition(125.456)
	assert.Equal(t, models.Leo, sp.Sign)
	assert.Equal(t, 5.46, sp.Degree)
	assert.Equal(t, 125.456, sp.Longitude)

	sp = ToSignPosition(-15)
	assert.Equal(t, models.Pisces, sp.Sign)
	assert.Equal(t, 15.0, sp.Degree)
}

func TestSeparationSymmetricAndBounded(t *testing.T) {
	vals := []float64{-400, -90, 0, 10, 179, 180, 181, 350, 719}
	for _, a := range vals {
		for _, b := range vals {
			s := Separation(a, b)
			assert.Equal(t, s, Separation(b, a))
			assert.GreaterOrEqual(t, s, 0.0)
			assert.LessOrEqual(t, s, 180.0)
		}
	}
	assert.InDelta(t, 20, Separation(350, 10), 1e-9)
	assert.InDelta(t, 180, Separation(0, 180), 1e-9)
}

func TestMidpoint(t *testing.T) {
	assert.Equal(t, 0.0, Midpoint(350, 10))
	assert.Equal(t, 0.0, Midpoint(10, 350))
	assert.Equal(t, 45.0, Midpoint(30, 60))
	assert.InDelta(t, 355, Midpoint(340, 10), 1e-9)
	for _, pair := range [][2]float64{{1, 359}, {90, 300}, {200, 10}, {45, 225}} {
		assert.Equal(t, Midpoint(pair[0], pair[1]), Midpoint(pair[1], pair[0]))
	}
}

func TestSignOfNonFiniteStaysValid(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		s := SignOf(v)
		assert.True(t, s.Valid(), "%v", v)
		assert.True(t, ToSignPosition(v).Sign.Valid(), "%v", v)
	}
}

func TestCheckLongitude(t *testing.T) {
	require.NoError(t, CheckLongitude(12))
	assert.ErrorIs(t, CheckLongitude(math.NaN()), ErrInvalidInput)
	assert.ErrorIs(t, CheckLongitude(math.Inf(-1)), ErrInvalidInput)
}

func TestPositionInfo(t *testing.T) {
	info, err := PositionInfo(95, -0.3)
	require.NoError(t, err)
	assert.Equal(t, models.Cancer, info.Sign)
	assert.Equal(t, models.Water, info.Element)
	assert.Equal(t, models.Cardinal, info.Quality)
	assert.True(t, info.Retrograde)
	assert.Equal(t, -0.3, info.Speed)
}

func TestDignityOf(t *testing.T) {
	assert.Equal(t, models.Domicile, DignityOf(models.Sun, models.Leo))
	assert.Equal(t, models.Exaltation, DignityOf(models.Sun, models.Aries))
	assert.Equal(t, models.Exile, DignityOf(models.Venus, models.Aries))
	assert.Equal(t, models.Fall, DignityOf(models.Saturn, models.Aries))
	assert.Equal(t, models.Domicile, DignityOf(models.Mercury, models.Virgo))
	assert.Equal(t, models.Neutral, DignityOf(models.Mars, models.Gemini))
	assert.Equal(t, models.Neutral, DignityOf(models.Chiron, models.Leo))
}

func TestLunarNodes(t *testing.T) {
	n := LunarNodes(350)
	assert.Equal(t, models.Pisces, n.North.Sign)
	assert.Equal(t, models.Virgo, n.South.Sign)
	assert.InDelta(t, 170, n.South.Longitude, 1e-9)
}

func TestJulianDay(t *testing.T) {
	assert.InDelta(t, 2451545.0, JulianDay(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)), 1e-9)
	assert.InDelta(t, 2440587.5, JulianDay(time.Unix(0, 0)), 1e-9)
}
