package fridge

import (
	"strings"

	"github.com/carnegieJiang/pocketfridge/entities"
)

// NormalizeCategory maps free-text extractor output onto the fixed category
// set. The extractor is allowed to say "carbs" and "condiment"; the fridge
// files those under grain and other respectively. Anything unrecognized or
// missing becomes other.
func NormalizeCategory(raw string) string {
	cat := strings.ToLower(strings.TrimSpace(raw))
	switch cat {
	case "carbs":
		return entities.CategoryGrain
	case "condiment":
		return entities.CategoryOther
	}
	for _, known := range entities.CategoryOrder {
		if cat == known {
			return known
		}
	}
	return entities.CategoryOther
}
