package astro

import "AstroInsight/internal/domain/models"

// LunarNodes places the south node opposite the north node.
func LunarNodes(north float64) models.Nodes {
	return models.Nodes{
		North: ToSignPosition(north),
		South: ToSignPosition(north + 180),
	}
}
