package astro

import (
	"sort"

	"AstroInsight/internal/domain/models"
)

// AspectDef is one entry in the aspect table.
type AspectDef struct {
	Angle   float64
	Name    string
	Orb     float64
	Class   models.AspectClass
	Valence models.Valence
}

// DefaultOrbMajor and DefaultOrbMinor are the orbs of the luminous aspects
// (0, 90, 120, 180) and of the sextile.
const (
	DefaultOrbMajor = 8.0
	DefaultOrbMinor = 6.0
)

var aspectTable = []AspectDef{
	{Angle: 0, Name: "congiunzione", Orb: DefaultOrbMajor, Class: models.AspectMajor, Valence: models.Neutro},
	{Angle: 30, Name: "semisestile", Orb: 2, Class: models.AspectMinor, Valence: models.Harmonic},
	{Angle: 45, Name: "semiquadrato", Orb: 2, Class: models.AspectMinor, Valence: models.Tension},
	{Angle: 60, Name: "sestile", Orb: DefaultOrbMinor, Class: models.AspectMajor, Valence: models.Harmonic},
	{Angle: 72, Name: "quintile", Orb: 2, Class: models.AspectMinor, Valence: models.Harmonic},
	{Angle: 90, Name: "quadratura", Orb: DefaultOrbMajor, Class: models.AspectMajor, Valence: models.Tension},
	{Angle: 120, Name: "trigono", Orb: DefaultOrbMajor, Class: models.AspectMajor, Valence: models.Harmonic},
	{Angle: 135, Name: "sesquiquadrato", Orb: 2, Class: models.AspectMinor, Valence: models.Tension},
	{Angle: 150, Name: "quinconce", Orb: 3, Class: models.AspectMinor, Valence: models.Neutro},
	{Angle: 180, Name: "opposizione", Orb: DefaultOrbMajor, Class: models.AspectMajor, Valence: models.Tension},
}

// Aspect names used by callers that filter results.
const (
	Conjunction = "congiunzione"
	Sextile     = "sestile"
	Square      = "quadratura"
	Trine       = "trigono"
	Opposition  = "opposizione"
)

// AspectTable returns a copy of the default aspect table.
func AspectTable() []AspectDef {
	out := make([]AspectDef, len(aspectTable))
	copy(out, aspectTable)
	return out
}

// Point is a named longitude taking part in an aspect scan.
type Point struct {
	Name      string
	Longitude float64
}

// PointsFrom turns a body map into points in canonical body order. A non-empty
// label is prefixed to each name so two charts can be scanned against each other.
func PointsFrom(label string, bodies map[models.Body]float64) []Point {
	pts := make([]Point, 0, len(bodies))
	for _, b := range models.Bodies {
		lon, ok := bodies[b]
		if !ok {
			continue
		}
		pts = append(pts, Point{Name: PointName(label, b.String()), Longitude: lon})
	}
	return pts
}

// PointName joins an optional chart label and a point name.
func PointName(label, name string) string {
	if label == "" {
		return name
	}
	return label + "_" + name
}

// AspectOption configures an AspectEngine.
type AspectOption func(*AspectEngine)

// WithOrbs overrides the orb of conjunction, square, trine and opposition
// (major) and of the sextile (minor).
func WithOrbs(major, minor float64) AspectOption {
	return func(e *AspectEngine) {
		for i := range e.table {
			switch e.table[i].Angle {
			case 0, 90, 120, 180:
				e.table[i].Orb = major
			case 60:
				e.table[i].Orb = minor
			}
		}
	}
}

// AspectEngine classifies angular differences against an aspect table.
type AspectEngine struct {
	table []AspectDef
}

// NewAspectEngine builds an engine over the default table.
func NewAspectEngine(opts ...AspectOption) *AspectEngine {
	e := &AspectEngine{table: AspectTable()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Aspects scans every pair (a, b) with a from as and b from bs. Pairs with the
// same name are skipped, so charts scanned against each other should carry
// distinct labels. Results are sorted by ascending orb.
func (e *AspectEngine) Aspects(as, bs []Point) []models.Aspect {
	var out []models.Aspect
	for _, a := range as {
		for _, b := range bs {
			if a.Name == b.Name {
				continue
			}
			out = e.match(out, a, b)
		}
	}
	sortByOrb(out)
	return out
}

// NatalAspects scans one collection against itself, each unordered pair once.
func (e *AspectEngine) NatalAspects(points []Point) []models.Aspect {
	var out []models.Aspect
	for i := 0; i < len(points); i++ {
		for j := i + 1; j < len(points); j++ {
			if points[i].Name == points[j].Name {
				continue
			}
			out = e.match(out, points[i], points[j])
		}
	}
	sortByOrb(out)
	return out
}

// match appends one aspect per table entry whose orb contains the separation.
func (e *AspectEngine) match(out []models.Aspect, a, b Point) []models.Aspect {
	sep := Separation(a.Longitude, b.Longitude)
	for _, def := range e.table {
		dev := sep - def.Angle
		if dev < 0 {
			dev = -dev
		}
		if dev > def.Orb {
			continue
		}
		out = append(out, models.Aspect{
			PointA:   a.Name,
			PointB:   b.Name,
			Name:     def.Name,
			Angle:    def.Angle,
			Orb:      Round(dev, 2),
			Class:    def.Class,
			Valence:  def.Valence,
			Applying: sep < def.Angle,
		})
	}
	return out
}

func sortByOrb(as []models.Aspect) {
	sort.SliceStable(as, func(i, j int) bool { return as[i].Orb < as[j].Orb })
}

// Top returns at most n aspects; n <= 0 returns all.
func Top(as []models.Aspect, n int) []models.Aspect {
	if n <= 0 || len(as) <= n {
		return as
	}
	return as[:n]
}

// FilterByName keeps the aspects whose name is in names, preserving order.
func FilterByName(as []models.Aspect, names ...string) []models.Aspect {
	out := make([]models.Aspect, 0, len(as))
	for _, a := range as {
		for _, n := range names {
			if a.Name == n {
				out = append(out, a)
				break
			}
		}
	}
	return out
}
