package astro

import (
	"fmt"

	"AstroInsight/internal/domain/models"
)

// Reference points an arabic part may combine.
type Reference int

const (
	RefAscendant Reference = iota
	RefSun
	RefMoon
	RefMercury
	RefVenus
	RefMars
	RefJupiter
	RefSaturn
)

// References holds the longitudes arabic parts are built from.
type References map[Reference]float64

// ReferencesFrom collects the references from a chart.
func ReferencesFrom(bodies map[models.Body]float64, ascendant float64) References {
	refs := References{RefAscendant: ascendant}
	for ref, b := range map[Reference]models.Body{
		RefSun: models.Sun, RefMoon: models.Moon, RefMercury: models.Mercury, RefVenus: models.Venus,
		RefMars: models.Mars, RefJupiter: models.Jupiter, RefSaturn: models.Saturn,
	} {
		if lon, ok := bodies[b]; ok {
			refs[ref] = lon
		}
	}
	return refs
}

// PartDef is a part computed as plus1 + plus2 - minus.
type PartDef struct {
	Name  string
	Plus1 Reference
	Plus2 Reference
	Minus Reference
}

// Part names.
const (
	PartFortune = "fortuna"
)

var partTable = []PartDef{
	{Name: PartFortune, Plus1: RefAscendant, Plus2: RefMoon, Minus: RefSun},
	{Name: "spirito", Plus1: RefAscendant, Plus2: RefSun, Minus: RefMoon},
	{Name: "amore", Plus1: RefAscendant, Plus2: RefVenus, Minus: RefSun},
	{Name: "matrimonio", Plus1: RefAscendant, Plus2: RefVenus, Minus: RefSaturn},
	{Name: "padre", Plus1: RefAscendant, Plus2: RefSaturn, Minus: RefSun},
	{Name: "madre", Plus1: RefAscendant, Plus2: RefMoon, Minus: RefVenus},
	{Name: "commercio", Plus1: RefAscendant, Plus2: RefMercury, Minus: RefSun},
	{Name: "malattia", Plus1: RefAscendant, Plus2: RefMars, Minus: RefSaturn},
	{Name: "successo", Plus1: RefAscendant, Plus2: RefJupiter, Minus: RefSun},
	{Name: "amici", Plus1: RefAscendant, Plus2: RefMoon, Minus: RefMercury},
}

// Part computes a single a + b - c combination.
func Part(a, b, c float64) (models.ArabicPart, error) {
	for _, v := range []float64{a, b, c} {
		if err := CheckLongitude(v); err != nil {
			return models.ArabicPart{}, err
		}
	}
	sp := ToSignPosition(a + b - c)
	return models.ArabicPart{SignPosition: sp, Element: ElementOf(sp.Sign)}, nil
}

// ArabicParts computes every part whose three references are present.
func ArabicParts(refs References) (map[string]models.ArabicPart, error) {
	out := make(map[string]models.ArabicPart, len(partTable))
	for _, def := range partTable {
		p1, ok1 := refs[def.Plus1]
		p2, ok2 := refs[def.Plus2]
		m, ok3 := refs[def.Minus]
		if !ok1 || !ok2 || !ok3 {
			continue
		}
		p, err := Part(p1, p2, m)
		if err != nil {
			return nil, fmt.Errorf("part %s: %w", def.Name, err)
		}
		out[def.Name] = p
	}
	return out, nil
}
