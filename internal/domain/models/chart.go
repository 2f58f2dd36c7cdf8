package models

// SignPosition is a longitude decomposed into sign and degree within the sign.
// Longitude keeps full precision; Degree is rounded for display.
type SignPosition struct {
	Longitude float64 `json:"longitudine"`
	Sign      Sign    `json:"segno"`
	Degree    float64 `json:"gradi"`
}

// BodyPosition is what the ephemeris reports for a body at a moment.
type BodyPosition struct {
	Longitude float64 `json:"longitude" yaml:"longitude"`
	Speed     float64 `json:"speed" yaml:"speed"` // degrees per day, negative when retrograde
}

// Houses holds the twelve cusps (house I first) and the two angles.
type Houses struct {
	Cusps     [12]float64 `json:"cusps" yaml:"cusps"`
	Ascendant float64     `json:"ascendant" yaml:"ascendant"`
	Midheaven float64     `json:"midheaven" yaml:"midheaven"`
}

// LunarPoints are the sensitive points derived from the lunar orbit.
type LunarPoints struct {
	NorthNode float64 `json:"north_node" yaml:"north_node"` // true node
	Lilith    float64 `json:"lilith" yaml:"lilith"`         // mean apogee
}

// PositionInfo describes a point in the zodiac.
type PositionInfo struct {
	SignPosition
	Element    Element `json:"elemento"`
	Quality    Quality `json:"qualita"`
	Retrograde bool    `json:"retrogrado"`
	Speed      float64 `json:"velocita"`
}

// BodyInfo is PositionInfo plus the body's dignity in that sign.
type BodyInfo struct {
	PositionInfo
	Dignity Dignity `json:"dignita"`
	House   *House  `json:"casa,omitempty"`
}

// Nodes are the lunar nodes; the south node is always opposite the north node.
type Nodes struct {
	North SignPosition `json:"nodo_nord"`
	South SignPosition `json:"nodo_sud"`
}

// AspectClass separates the Ptolemaic aspects from the rest.
type AspectClass string

const (
	AspectMajor AspectClass = "maggiore"
	AspectMinor AspectClass = "minore"
)

// Valence is the traditional reading of an aspect.
type Valence string

const (
	Harmonic Valence = "armonico"
	Tension  Valence = "tensione"
	Neutro   Valence = "neutro"
)

// Aspect relates two named points.
type Aspect struct {
	PointA   string      `json:"pianeta_a"`
	PointB   string      `json:"pianeta_b"`
	Name     string      `json:"aspetto"`
	Angle    float64     `json:"angolo_esatto"`
	Orb      float64     `json:"orb"`
	Class    AspectClass `json:"classe"`
	Valence  Valence     `json:"valenza"`
	Applying bool        `json:"applicante"`
}

// PatternKind names a multi-body configuration.
type PatternKind string

const (
	GrandTrine PatternKind = "Grande Trigono"
	TSquare    PatternKind = "T-Quadrata"
	GrandCross PatternKind = "Grande Croce"
	Yod        PatternKind = "Yod"
	Stellium   PatternKind = "Stellium"
)

// Pattern is a configuration of three or more bodies.
type Pattern struct {
	Kind           PatternKind `json:"tipo"`
	Bodies         []Body      `json:"pianeti"`
	Apex           *Body       `json:"apice,omitempty"`
	Sign           *Sign       `json:"segno,omitempty"`
	Classification string      `json:"classificazione"`
}

// ArabicPart is a derived point decorated with its zodiac position.
type ArabicPart struct {
	SignPosition
	Element Element `json:"elemento"`
}

// Distribution groups bodies by element, quality and polarity.
type Distribution struct {
	Elements        map[Element][]Body  `json:"elementi"`
	Qualities       map[Quality][]Body  `json:"qualita"`
	Polarities      map[Polarity][]Body `json:"polarita"`
	ElementCounts   map[Element]int     `json:"conteggio_elementi"`
	QualityCounts   map[Quality]int     `json:"conteggio_qualita"`
	PolarityCounts  map[Polarity]int    `json:"conteggio_polarita"`
	DominantElement Element             `json:"elemento_dominante"`
	DominantQuality Quality             `json:"qualita_dominante"`
}

// DominantPlanet is the ruler with the highest accumulated weight.
type DominantPlanet struct {
	Planet Body             `json:"pianeta"`
	Score  float64          `json:"punteggio"`
	Scores map[Body]float64 `json:"punteggi"`
}

// ChartPoints is a bare set of longitudes with the two angles, enough for
// composite synthesis and dominant scoring.
type ChartPoints struct {
	Bodies    map[Body]float64 `json:"pianeti"`
	Ascendant float64          `json:"ascendente"`
	Midheaven float64          `json:"medio_cielo"`
}
