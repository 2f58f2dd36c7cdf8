package astro

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroInsight/internal/domain/models"
)

func TestFortune(t *testing.T) {
	parts, err := ArabicParts(References{RefAscendant: 0, RefMoon: 90, RefSun: 0})
	require.NoError(t, err)
	require.Contains(t, parts, PartFortune)
	assert.Equal(t, 90.0, parts[PartFortune].Longitude)
	assert.Equal(t, models.Cancer, parts[PartFortune].Sign)
	assert.Equal(t, models.Water, parts[PartFortune].Element)
	// spirito needs the same references
	assert.Contains(t, parts, "spirito")
	assert.NotContains(t, parts, "matrimonio")
}

func TestArabicPartsFullChart(t *testing.T) {
	refs := ReferencesFrom(map[models.Body]float64{
		models.Sun: 100, models.Moon: 200, models.Mercury: 110, models.Venus: 80,
		models.Mars: 300, models.Jupiter: 20, models.Saturn: 250, models.Pluto: 210,
	}, 350)
	parts, err := ArabicParts(refs)
	require.NoError(t, err)
	assert.Len(t, parts, 10)
	for name, p := range parts {
		assert.GreaterOrEqual(t, p.Longitude, 0.0, name)
		assert.Less(t, p.Longitude, 360.0, name)
	}
	// 350 + 200 - 100
	assert.Equal(t, 90.0, parts[PartFortune].Longitude)
	// 350 + 100 - 200
	assert.Equal(t, 250.0, parts["spirito"].Longitude)
}

func distribution(t *testing.T, bodies map[models.Body]float64) models.Distribution {
	t.Helper()
	positions, err := SignPositions(bodies)
	require.NoError(t, err)
	d, err := Distribution(positions)
	require.NoError(t, err)
	return d
}

func TestDistributionAllFire(t *testing.T) {
	d := distribution(t, map[models.Body]float64{
		models.Sun:   5,
		models.Moon:  125,
		models.Mars:  245,
		models.Venus: 15,
	})
	assert.Equal(t, 4, d.ElementCounts[models.Fire])
	assert.Equal(t, "Fuoco", d.DominantElement.String())
	assert.Equal(t, 4, d.PolarityCounts[models.Masculine])
	assert.Equal(t, 0, d.PolarityCounts[models.Feminine])
	assert.Equal(t, []models.Body{models.Sun, models.Moon, models.Venus, models.Mars}, d.Elements[models.Fire])
	assert.Empty(t, d.Elements[models.Water])
	// Aries x2, Leo, Sagittarius
	assert.Equal(t, 2, d.QualityCounts[models.Cardinal])
	assert.Equal(t, models.Cardinal, d.DominantQuality)
}

func TestDistributionTieGoesToFirstDeclared(t *testing.T) {
	d := distribution(t, map[models.Body]float64{
		models.Sun:  100, // Cancer, water
		models.Moon: 40,  // Taurus, earth
	})
	assert.Equal(t, models.Earth, d.DominantElement)
	assert.Equal(t, models.Cardinal, d.DominantQuality)

	empty := distribution(t, nil)
	assert.Equal(t, models.Fire, empty.DominantElement)
	assert.Equal(t, models.Cardinal, empty.DominantQuality)
}

func TestComposite(t *testing.T) {
	a := models.ChartPoints{
		Bodies:    map[models.Body]float64{models.Sun: 350, models.Moon: 100},
		Ascendant: 300, Midheaven: 210,
	}
	b := models.ChartPoints{
		Bodies:    map[models.Body]float64{models.Sun: 10, models.Moon: 120},
		Ascendant: 40, Midheaven: 230,
	}
	c, err := Composite(a, b)
	require.NoError(t, err)
	assert.Equal(t, 0.0, c.Bodies[models.Sun])
	assert.Equal(t, 110.0, c.Bodies[models.Moon])
	assert.Equal(t, 350.0, c.Ascendant)
	assert.Equal(t, 220.0, c.Midheaven)

	rev, err := Composite(b, a)
	require.NoError(t, err)
	assert.Equal(t, c, rev)
}

func TestCompositeMismatchedBodies(t *testing.T) {
	a := models.ChartPoints{Bodies: map[models.Body]float64{models.Sun: 1, models.Moon: 2}}
	b := models.ChartPoints{Bodies: map[models.Body]float64{models.Sun: 1}}
	_, err := Composite(a, b)
	assert.ErrorIs(t, err, ErrInvalidInput)

	b.Bodies[models.Mars] = 3
	_, err = Composite(a, b)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDominantPlanet(t *testing.T) {
	// ascendant, sun and moon in Leo all feed the Sun
	res, err := DominantPlanet(models.ChartPoints{
		Ascendant: 130,
		Bodies: map[models.Body]float64{
			models.Sun:  125,
			models.Moon: 140,
			models.Mars: 10,
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Sun, res.Planet)
	assert.Equal(t, 12.0, res.Score)
	assert.Equal(t, 2.0, res.Scores[models.Mars])
}

func TestDominantPlanetTieGoesToFirstScored(t *testing.T) {
	// ascendant in Aries feeds Mars first, sun in Taurus feeds Venus
	res, err := DominantPlanet(models.ChartPoints{
		Ascendant: 10,
		Bodies:    map[models.Body]float64{models.Sun: 40},
	})
	require.NoError(t, err)
	assert.Equal(t, models.Mars, res.Planet)
	assert.Equal(t, 4.0, res.Score)
}

func TestNonFiniteInputIsRejected(t *testing.T) {
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		bodies := map[models.Body]float64{models.Sun: 10, models.Moon: bad, models.Mars: 200}
		chart := models.ChartPoints{Bodies: bodies, Ascendant: 100}
		good := models.ChartPoints{Bodies: map[models.Body]float64{models.Sun: 1, models.Moon: 2, models.Mars: 3}}

		cases := []struct {
			name string
			fn   func() error
		}{
			{"position info", func() error {
				_, err := PositionInfo(bad, 1)
				return err
			}},
			{"position speed", func() error {
				_, err := PositionInfo(10, bad)
				return err
			}},
			{"body info", func() error {
				_, err := BodyInfo(models.Sun, models.BodyPosition{Longitude: bad})
				return err
			}},
			{"detect", func() error {
				_, err := NewPatternDetector().Detect(bodies)
				return err
			}},
			{"sign positions", func() error {
				_, err := SignPositions(bodies)
				return err
			}},
			{"distribution", func() error {
				_, err := Distribution(map[models.Body]models.SignPosition{models.Sun: {Longitude: bad}})
				return err
			}},
			{"dominant bodies", func() error {
				_, err := DominantPlanet(chart)
				return err
			}},
			{"dominant ascendant", func() error {
				_, err := DominantPlanet(models.ChartPoints{Ascendant: bad})
				return err
			}},
			{"part", func() error {
				_, err := Part(0, bad, 0)
				return err
			}},
			{"arabic parts", func() error {
				_, err := ArabicParts(References{RefAscendant: bad, RefMoon: 90, RefSun: 0})
				return err
			}},
			{"composite first", func() error {
				_, err := Composite(chart, good)
				return err
			}},
			{"composite second", func() error {
				_, err := Composite(good, chart)
				return err
			}},
			{"house", func() error {
				_, err := HouseOf(bad, []float64{0, 30, 60, 90, 120, 150, 180, 210, 240, 270, 300, 330})
				return err
			}},
		}
		for _, tc := range cases {
			t.Run(fmt.Sprintf("%s/%v", tc.name, bad), func(t *testing.T) {
				assert.ErrorIs(t, tc.fn(), ErrInvalidInput)
			})
		}
	}
}

func TestDistributionRejectsInvalidSign(t *testing.T) {
	_, err := Distribution(map[models.Body]models.SignPosition{models.Sun: {Longitude: 10, Sign: models.Sign(-1)}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
