package astro

import (
	"math"

	"AstroInsight/internal/domain/models"
)

const (
	trineOrb     = 8.0
	squareOrb    = 8.0
	oppositOrb   = 8.0
	yodSextOrb   = 6.0
	yodQuincOrb  = 3.0
	stelliumSize = 3
)

// PatternOption configures a PatternDetector.
type PatternOption func(*PatternDetector)

// WithPermutations emits one pattern per ordered body tuple that satisfies a
// configuration instead of one per body combination.
func WithPermutations(on bool) PatternOption {
	return func(d *PatternDetector) { d.permutations = on }
}

// WithSingleLegCross accepts a grand cross when only the first cross pair is
// a square, instead of requiring all four legs.
func WithSingleLegCross(on bool) PatternOption {
	return func(d *PatternDetector) { d.singleLegCross = on }
}

// PatternDetector searches a set of bodies for multi-body configurations.
type PatternDetector struct {
	permutations   bool
	singleLegCross bool
}

// NewPatternDetector builds a detector; by default every combination is
// reported once and grand crosses need four square legs.
func NewPatternDetector(opts ...PatternOption) *PatternDetector {
	d := &PatternDetector{}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

type placed struct {
	body models.Body
	lon  float64
}

func within(a, b, angle, orb float64) bool {
	return math.Abs(Separation(a, b)-angle) <= orb
}

// Detect returns grand trines, T-squares, grand crosses, yods and stelliums,
// in that order. Fewer than three bodies yield no patterns.
func (d *PatternDetector) Detect(bodies map[models.Body]float64) ([]models.Pattern, error) {
	if err := checkBodies(bodies); err != nil {
		return nil, err
	}
	ps := make([]placed, 0, len(bodies))
	for _, b := range models.Bodies {
		if lon, ok := bodies[b]; ok {
			ps = append(ps, placed{body: b, lon: lon})
		}
	}
	if len(ps) < 3 {
		return nil, nil
	}
	var out []models.Pattern
	out = append(out, d.grandTrines(ps)...)
	out = append(out, d.tSquares(ps)...)
	out = append(out, d.grandCrosses(ps)...)
	out = append(out, d.yods(ps)...)
	out = append(out, stelliums(ps)...)
	return out, nil
}

// next returns the lowest index a loop may start from. In permutation mode
// every index is visited; otherwise indices increase so each set appears once.
func (d *PatternDetector) next(i int) int {
	if d.permutations {
		return 0
	}
	return i + 1
}

func (d *PatternDetector) grandTrines(ps []placed) []models.Pattern {
	var out []models.Pattern
	for i := range ps {
		for j := d.next(i); j < len(ps); j++ {
			if j == i || !within(ps[i].lon, ps[j].lon, 120, trineOrb) {
				continue
			}
			for k := d.next(j); k < len(ps); k++ {
				if k == i || k == j {
					continue
				}
				if !within(ps[i].lon, ps[k].lon, 120, trineOrb) || !within(ps[j].lon, ps[k].lon, 120, trineOrb) {
					continue
				}
				out = append(out, models.Pattern{
					Kind:           models.GrandTrine,
					Bodies:         []models.Body{ps[i].body, ps[j].body, ps[k].body},
					Classification: sharedElement(ps[i], ps[j], ps[k]),
				})
			}
		}
	}
	return out
}

func (d *PatternDetector) tSquares(ps []placed) []models.Pattern {
	var out []models.Pattern
	for i := range ps {
		for j := d.next(i); j < len(ps); j++ {
			if j == i || !within(ps[i].lon, ps[j].lon, 180, oppositOrb) {
				continue
			}
			// any other body may be the apex
			for k := range ps {
				if k == i || k == j {
					continue
				}
				if !within(ps[k].lon, ps[i].lon, 90, squareOrb) || !within(ps[k].lon, ps[j].lon, 90, squareOrb) {
					continue
				}
				apex := ps[k].body
				out = append(out, models.Pattern{
					Kind:           models.TSquare,
					Bodies:         []models.Body{ps[i].body, ps[j].body, apex},
					Apex:           &apex,
					Classification: sharedQuality(ps[i], ps[j], ps[k]),
				})
			}
		}
	}
	return out
}

func (d *PatternDetector) grandCrosses(ps []placed) []models.Pattern {
	var out []models.Pattern
	for i := range ps {
		for j := d.next(i); j < len(ps); j++ {
			if j == i || !within(ps[i].lon, ps[j].lon, 180, oppositOrb) {
				continue
			}
			// the second opposition starts after i so the pair {i,j} is
			// always the one holding the lowest index
			start := i + 1
			if d.permutations {
				start = 0
			}
			for k := start; k < len(ps); k++ {
				if k == i || k == j {
					continue
				}
				for l := d.next(k); l < len(ps); l++ {
					if l == i || l == j || l == k || !within(ps[k].lon, ps[l].lon, 180, oppositOrb) {
						continue
					}
					if !d.crossLegs(ps[i], ps[j], ps[k], ps[l]) {
						continue
					}
					out = append(out, models.Pattern{
						Kind:           models.GrandCross,
						Bodies:         []models.Body{ps[i].body, ps[j].body, ps[k].body, ps[l].body},
						Classification: sharedQuality(ps[i], ps[j], ps[k], ps[l]),
					})
				}
			}
		}
	}
	return out
}

// crossLegs checks the squares between the oppositions a-b and c-d.
func (d *PatternDetector) crossLegs(a, b, c, e placed) bool {
	if !within(a.lon, c.lon, 90, squareOrb) {
		return false
	}
	if d.singleLegCross {
		return true
	}
	return within(a.lon, e.lon, 90, squareOrb) &&
		within(b.lon, c.lon, 90, squareOrb) &&
		within(b.lon, e.lon, 90, squareOrb)
}

func (d *PatternDetector) yods(ps []placed) []models.Pattern {
	var out []models.Pattern
	for i := range ps {
		for j := d.next(i); j < len(ps); j++ {
			if j == i || !within(ps[i].lon, ps[j].lon, 60, yodSextOrb) {
				continue
			}
			for k := range ps {
				if k == i || k == j {
					continue
				}
				if !within(ps[k].lon, ps[i].lon, 150, yodQuincOrb) || !within(ps[k].lon, ps[j].lon, 150, yodQuincOrb) {
					continue
				}
				apex := ps[k].body
				out = append(out, models.Pattern{
					Kind:           models.Yod,
					Bodies:         []models.Body{ps[i].body, ps[j].body, apex},
					Apex:           &apex,
					Classification: ToSignPosition(ps[k].lon).Sign.String(),
				})
			}
		}
	}
	return out
}

func stelliums(ps []placed) []models.Pattern {
	var groups [12][]models.Body
	for _, p := range ps {
		s := SignOf(p.lon)
		groups[s] = append(groups[s], p.body)
	}
	var out []models.Pattern
	for _, s := range models.Signs {
		if len(groups[s]) < stelliumSize {
			continue
		}
		sign := s
		out = append(out, models.Pattern{
			Kind:           models.Stellium,
			Bodies:         groups[s],
			Sign:           &sign,
			Classification: s.String(),
		})
	}
	return out
}

const mixed = "Misto"

func sharedElement(ps ...placed) string {
	e := ElementOf(SignOf(ps[0].lon))
	for _, p := range ps[1:] {
		if ElementOf(SignOf(p.lon)) != e {
			return mixed
		}
	}
	return e.String()
}

func sharedQuality(ps ...placed) string {
	q := QualityOf(SignOf(ps[0].lon))
	for _, p := range ps[1:] {
		if QualityOf(SignOf(p.lon)) != q {
			return mixed
		}
	}
	return q.String()
}
