package astro

import (
	"fmt"
	"math"

	"AstroInsight/internal/domain/models"
)

var signElements = [12]models.Element{
	models.Fire, models.Earth, models.Air, models.Water,
	models.Fire, models.Earth, models.Air, models.Water,
	models.Fire, models.Earth, models.Air, models.Water,
}

var signQualities = [12]models.Quality{
	models.Cardinal, models.Fixed, models.Mutable,
	models.Cardinal, models.Fixed, models.Mutable,
	models.Cardinal, models.Fixed, models.Mutable,
	models.Cardinal, models.Fixed, models.Mutable,
}

// Modern rulerships.
var signRulers = [12]models.Body{
	models.Aries:       models.Mars,
	models.Taurus:      models.Venus,
	models.Gemini:      models.Mercury,
	models.Cancer:      models.Moon,
	models.Leo:         models.Sun,
	models.Virgo:       models.Mercury,
	models.Libra:       models.Venus,
	models.Scorpio:     models.Pluto,
	models.Sagittarius: models.Jupiter,
	models.Capricorn:   models.Saturn,
	models.Aquarius:    models.Uranus,
	models.Pisces:      models.Neptune,
}

// ElementOf returns the element of s.
func ElementOf(s models.Sign) models.Element { return signElements[s] }

// QualityOf returns the quality of s.
func QualityOf(s models.Sign) models.Quality { return signQualities[s] }

// PolarityOf returns the polarity of element e.
func PolarityOf(e models.Element) models.Polarity {
	if e == models.Fire || e == models.Air {
		return models.Masculine
	}
	return models.Feminine
}

// RulerOf returns the modern ruler of s.
func RulerOf(s models.Sign) models.Body { return signRulers[s] }

// PositionInfo describes a longitude together with the speed of the body on it.
func PositionInfo(longitude, speed float64) (models.PositionInfo, error) {
	if err := CheckLongitude(longitude); err != nil {
		return models.PositionInfo{}, err
	}
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return models.PositionInfo{}, fmt.Errorf("%w: speed %v is not finite", ErrInvalidInput, speed)
	}
	sp := ToSignPosition(longitude)
	return models.PositionInfo{
		SignPosition: sp,
		Element:      ElementOf(sp.Sign),
		Quality:      QualityOf(sp.Sign),
		Retrograde:   speed < 0,
		Speed:        speed,
	}, nil
}

// BodyInfo is PositionInfo decorated with the dignity of b in its sign.
func BodyInfo(b models.Body, pos models.BodyPosition) (models.BodyInfo, error) {
	info, err := PositionInfo(pos.Longitude, pos.Speed)
	if err != nil {
		return models.BodyInfo{}, err
	}
	return models.BodyInfo{
		PositionInfo: info,
		Dignity:      DignityOf(b, info.Sign),
	}, nil
}
