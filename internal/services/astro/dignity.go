package astro

import "AstroInsight/internal/domain/models"

type dignitySet struct {
	domicile   []models.Sign
	exaltation []models.Sign
	exile      []models.Sign
	fall       []models.Sign
}

// Mercury, Uranus, Neptune and Pluto use the modern exaltations so that no
// sign is both domicile and exaltation. Chiron has no dignities.
var dignities = map[models.Body]dignitySet{
	models.Sun: {
		domicile: []models.Sign{models.Leo}, exaltation: []models.Sign{models.Aries},
		exile: []models.Sign{models.Aquarius}, fall: []models.Sign{models.Libra},
	},
	models.Moon: {
		domicile: []models.Sign{models.Cancer}, exaltation: []models.Sign{models.Taurus},
		exile: []models.Sign{models.Capricorn}, fall: []models.Sign{models.Scorpio},
	},
	models.Mercury: {
		domicile: []models.Sign{models.Gemini, models.Virgo}, exaltation: []models.Sign{models.Aquarius},
		exile: []models.Sign{models.Sagittarius, models.Pisces}, fall: []models.Sign{models.Leo},
	},
	models.Venus: {
		domicile: []models.Sign{models.Taurus, models.Libra}, exaltation: []models.Sign{models.Pisces},
		exile: []models.Sign{models.Scorpio, models.Aries}, fall: []models.Sign{models.Virgo},
	},
	models.Mars: {
		domicile: []models.Sign{models.Aries, models.Scorpio}, exaltation: []models.Sign{models.Capricorn},
		exile: []models.Sign{models.Libra, models.Taurus}, fall: []models.Sign{models.Cancer},
	},
	models.Jupiter: {
		domicile: []models.Sign{models.Sagittarius, models.Pisces}, exaltation: []models.Sign{models.Cancer},
		exile: []models.Sign{models.Gemini, models.Virgo}, fall: []models.Sign{models.Capricorn},
	},
	models.Saturn: {
		domicile: []models.Sign{models.Capricorn, models.Aquarius}, exaltation: []models.Sign{models.Libra},
		exile: []models.Sign{models.Cancer, models.Leo}, fall: []models.Sign{models.Aries},
	},
	models.Uranus: {
		domicile: []models.Sign{models.Aquarius}, exaltation: []models.Sign{models.Scorpio},
		exile: []models.Sign{models.Leo}, fall: []models.Sign{models.Taurus},
	},
	models.Neptune: {
		domicile: []models.Sign{models.Pisces}, exaltation: []models.Sign{models.Cancer},
		exile: []models.Sign{models.Virgo}, fall: []models.Sign{models.Capricorn},
	},
	models.Pluto: {
		domicile: []models.Sign{models.Scorpio}, exaltation: []models.Sign{models.Aries},
		exile: []models.Sign{models.Taurus}, fall: []models.Sign{models.Libra},
	},
}

// DignityOf classifies body b in sign s. Domicile is checked first, then
// exaltation, exile and fall.
func DignityOf(b models.Body, s models.Sign) models.Dignity {
	set, ok := dignities[b]
	if !ok {
		return models.Neutral
	}
	switch {
	case containsSign(set.domicile, s):
		return models.Domicile
	case containsSign(set.exaltation, s):
		return models.Exaltation
	case containsSign(set.exile, s):
		return models.Exile
	case containsSign(set.fall, s):
		return models.Fall
	}
	return models.Neutral
}

func containsSign(signs []models.Sign, s models.Sign) bool {
	for _, x := range signs {
		if x == s {
			return true
		}
	}
	return false
}
