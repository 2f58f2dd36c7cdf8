package models

import "fmt"

// Body is a celestial body tracked by the engine.
type Body int

const (
	Sun Body = iota
	Moon
	Mercury
	Venus
	Mars
	Jupiter
	Saturn
	Uranus
	Neptune
	Pluto
	Chiron
)

// Bodies lists every Body in canonical iteration order.
var Bodies = []Body{Sun, Moon, Mercury, Venus, Mars, Jupiter, Saturn, Uranus, Neptune, Pluto, Chiron}

var bodyLabels = [...]string{"sole", "luna", "mercurio", "venere", "marte", "giove", "saturno", "urano", "nettuno", "plutone", "chirone"}

// Valid reports whether b is one of the tracked bodies.
func (b Body) Valid() bool { return b >= Sun && b <= Chiron }

// String returns the wire label, or body(n) for an unknown value.
func (b Body) String() string {
	if !b.Valid() {
		return fmt.Sprintf("body(%d)", int(b))
	}
	return bodyLabels[b]
}

// MarshalText encodes b as its wire label and rejects unknown bodies.
func (b Body) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, fmt.Errorf("invalid body %d", int(b))
	}
	return []byte(bodyLabels[b]), nil
}

// UnmarshalText decodes a wire label through ParseBody.
func (b *Body) UnmarshalText(text []byte) error {
	v, ok := ParseBody(string(text))
	if !ok {
		return fmt.Errorf("unknown body %q", string(text))
	}
	*b = v
	return nil
}

// ParseBody resolves a wire label such as "sole" into a Body.
func ParseBody(s string) (Body, bool) {
	for i, l := range bodyLabels {
		if l == s {
			return Body(i), true
		}
	}
	return 0, false
}

// Sign is one of the twelve zodiac signs, in ecliptic order from 0°.
type Sign int

const (
	Aries Sign = iota
	Taurus
	Gemini
	Cancer
	Leo
	Virgo
	Libra
	Scorpio
	Sagittarius
	Capricorn
	Aquarius
	Pisces
)

// Signs lists the zodiac in ecliptic order.
var Signs = []Sign{Aries, Taurus, Gemini, Cancer, Leo, Virgo, Libra, Scorpio, Sagittarius, Capricorn, Aquarius, Pisces}

var signLabels = [...]string{"Ariete", "Toro", "Gemelli", "Cancro", "Leone", "Vergine", "Bilancia", "Scorpione", "Sagittario", "Capricorno", "Acquario", "Pesci"}

// Valid reports whether s is one of the twelve signs.
func (s Sign) Valid() bool { return s >= Aries && s <= Pisces }

// String returns the Italian sign name, or sign(n) for an unknown value.
func (s Sign) String() string {
	if !s.Valid() {
		return fmt.Sprintf("sign(%d)", int(s))
	}
	return signLabels[s]
}

// MarshalText encodes s as its sign name and rejects unknown signs.
func (s Sign) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("invalid sign %d", int(s))
	}
	return []byte(signLabels[s]), nil
}

// Element of a sign.
type Element int

const (
	Fire Element = iota
	Earth
	Air
	Water
)

// Elements is the declaration order used for tie-breaking.
var Elements = []Element{Fire, Earth, Air, Water}

var elementLabels = [...]string{"Fuoco", "Terra", "Aria", "Acqua"}

// String returns the Italian element name.
func (e Element) String() string {
	if e < Fire || e > Water {
		return fmt.Sprintf("element(%d)", int(e))
	}
	return elementLabels[e]
}

// MarshalText encodes e as its name.
func (e Element) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

// Quality (modality) of a sign.
type Quality int

const (
	Cardinal Quality = iota
	Fixed
	Mutable
)

// Qualities is the declaration order used for tie-breaking.
var Qualities = []Quality{Cardinal, Fixed, Mutable}

var qualityLabels = [...]string{"Cardinale", "Fisso", "Mobile"}

// String returns the Italian quality name.
func (q Quality) String() string {
	if q < Cardinal || q > Mutable {
		return fmt.Sprintf("quality(%d)", int(q))
	}
	return qualityLabels[q]
}

// MarshalText encodes q as its name.
func (q Quality) MarshalText() ([]byte, error) { return []byte(q.String()), nil }

// Polarity is derived from the element: fire and air are masculine.
type Polarity int

const (
	Masculine Polarity = iota
	Feminine
)

// Polarities is the declaration order used for tie-breaking.
var Polarities = []Polarity{Masculine, Feminine}

// String returns the Italian polarity name.
func (p Polarity) String() string {
	switch p {
	case Masculine:
		return "Maschile"
	case Feminine:
		return "Femminile"
	default:
		return fmt.Sprintf("polarity(%d)", int(p))
	}
}

// MarshalText encodes p as its name.
func (p Polarity) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// Dignity classifies a body's strength in the sign it occupies.
type Dignity int

const (
	Neutral Dignity = iota
	Domicile
	Exaltation
	Exile
	Fall
)

var dignityLabels = [...]string{"neutra", "domicilio", "esaltazione", "esilio", "caduta"}

// String returns the Italian dignity label.
func (d Dignity) String() string {
	if d < Neutral || d > Fall {
		return fmt.Sprintf("dignity(%d)", int(d))
	}
	return dignityLabels[d]
}

// MarshalText encodes d as its label.
func (d Dignity) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// House is a zero-based house index; House(0) is the first house.
type House int

var houseLabels = [...]string{"I", "II", "III", "IV", "V", "VI", "VII", "VIII", "IX", "X", "XI", "XII"}

// Valid reports whether h is one of the twelve houses.
func (h House) Valid() bool { return h >= 0 && h < 12 }

// Number returns the 1-based house number.
func (h House) Number() int { return int(h) + 1 }

// String returns the Roman numeral of the house, or house(n) when invalid.
func (h House) String() string {
	if !h.Valid() {
		return fmt.Sprintf("house(%d)", int(h))
	}
	return houseLabels[h]
}

// MarshalText encodes h as its Roman numeral and rejects invalid houses.
func (h House) MarshalText() ([]byte, error) {
	if !h.Valid() {
		return nil, fmt.Errorf("invalid house %d", int(h))
	}
	return []byte(houseLabels[h]), nil
}
