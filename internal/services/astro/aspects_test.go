package astro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"AstroInsight/internal/domain/models"
)

func TestExactConjunctionIsNotApplying(t *testing.T) {
	e := NewAspectEngine()
	got := e.NatalAspects(PointsFrom("", map[models.Body]float64{models.Sun: 0, models.Moon: 0}))
	require.Len(t, got, 1)
	assert.Equal(t, "sole", got[0].PointA)
	assert.Equal(t, "luna", got[0].PointB)
	assert.Equal(t, Conjunction, got[0].Name)
	assert.Equal(t, 0.0, got[0].Orb)
	assert.False(t, got[0].Applying)
	assert.Equal(t, models.AspectMajor, got[0].Class)
}

func TestNatalAspectsEmitEachPairOnce(t *testing.T) {
	e := NewAspectEngine()
	pts := PointsFrom("", map[models.Body]float64{
		models.Sun:  10,
		models.Moon: 100,
		models.Mars: 190,
	})
	got := e.NatalAspects(pts)
	// sun-moon square, moon-mars square, sun-mars opposition
	require.Len(t, got, 3)
	seen := map[[2]string]bool{}
	for _, a := range got {
		key := [2]string{a.PointA, a.PointB}
		rev := [2]string{a.PointB, a.PointA}
		assert.False(t, seen[key] || seen[rev], "pair %v emitted twice", key)
		seen[key] = true
	}
}

func TestAspectsSortedByOrb(t *testing.T) {
	e := NewAspectEngine()
	pts := PointsFrom("", map[models.Body]float64{
		models.Sun:     0,
		models.Moon:    125,
		models.Mercury: 91,
		models.Venus:   178.5,
	})
	got := e.NatalAspects(pts)
	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].Orb, got[i].Orb)
	}
}

func TestOrbRoundedAndApplying(t *testing.T) {
	e := NewAspectEngine()
	got := e.NatalAspects([]Point{{Name: "a", Longitude: 0}, {Name: "b", Longitude: 117.456}})
	require.Len(t, got, 1)
	assert.Equal(t, Trine, got[0].Name)
	assert.Equal(t, 2.54, got[0].Orb)
	assert.True(t, got[0].Applying)
	assert.Equal(t, models.Harmonic, got[0].Valence)
}

func TestInterChartScanUsesLabels(t *testing.T) {
	e := NewAspectEngine()
	transit := PointsFrom("transito", map[models.Body]float64{models.Sun: 10})
	natal := PointsFrom("natale", map[models.Body]float64{models.Sun: 12, models.Moon: 190})
	got := e.Aspects(transit, natal)
	require.Len(t, got, 2)
	assert.Equal(t, Opposition, got[0].Name)
	assert.Equal(t, "natale_luna", got[0].PointB)
	assert.Equal(t, "transito_sole", got[1].PointA)
	assert.Equal(t, "natale_sole", got[1].PointB)
	assert.Equal(t, Conjunction, got[1].Name)
	assert.Equal(t, 2.0, got[1].Orb)
}

func TestSameNamedPointsSkipped(t *testing.T) {
	e := NewAspectEngine()
	a := []Point{{Name: "sole", Longitude: 0}}
	assert.Empty(t, e.Aspects(a, a))
}

func TestOverlappingOrbsEmitEveryMatch(t *testing.T) {
	e := NewAspectEngine(WithOrbs(20, 20))
	got := e.NatalAspects([]Point{{Name: "a", Longitude: 0}, {Name: "b", Longitude: 44}})
	names := []string{}
	for _, a := range got {
		names = append(names, a.Name)
	}
	assert.ElementsMatch(t, []string{"semiquadrato", "sestile"}, names)
}

func TestWithOrbs(t *testing.T) {
	tight := NewAspectEngine(WithOrbs(1, 1))
	assert.Empty(t, tight.NatalAspects([]Point{{Name: "a", Longitude: 0}, {Name: "b", Longitude: 95}}))
	assert.Empty(t, tight.NatalAspects([]Point{{Name: "a", Longitude: 0}, {Name: "b", Longitude: 63}}))
	// the default table is not shared with engines built with options
	assert.Equal(t, DefaultOrbMajor, AspectTable()[0].Orb)
}

func TestEmptyInputYieldsNoAspects(t *testing.T) {
	e := NewAspectEngine()
	assert.Empty(t, e.NatalAspects(nil))
	assert.Empty(t, e.Aspects(nil, []Point{{Name: "a"}}))
}

func TestTopAndFilter(t *testing.T) {
	as := []models.Aspect{{Name: Trine}, {Name: Square}, {Name: Sextile}, {Name: Opposition}}
	assert.Len(t, Top(as, 2), 2)
	assert.Len(t, Top(as, 0), 4)
	assert.Len(t, Top(as, 10), 4)
	soft := FilterByName(as, Conjunction, Trine, Sextile)
	require.Len(t, soft, 2)
	assert.Equal(t, Trine, soft[0].Name)
}
