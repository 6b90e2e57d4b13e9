package order

import (
	"strings"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

// SanitizeLocations drops custom locations whose label was never filled in.
// Order of the remaining locations is kept.
func SanitizeLocations(locations []domain.PrintLocation) []domain.PrintLocation {
	out := make([]domain.PrintLocation, 0, len(locations))
	for _, loc := range locations {
		if loc.IsCustom() && strings.TrimSpace(loc.Label()) == "" {
			continue
		}
		out = append(out, loc)
	}
	return out
}

// MissingDesigns lists the selected locations that still lack a design.
// Custom locations are only checked when includeCustom is set, and incomplete
// custom entries are never reported since they get sanitized away.
func MissingDesigns(item domain.OrderLineItem, includeCustom bool) []domain.PrintLocation {
	var missing []domain.PrintLocation
	for _, loc := range item.PrintLocations {
		if loc.IsCustom() {
			if !includeCustom || strings.TrimSpace(loc.Label()) == "" {
				continue
			}
		}
		if strings.TrimSpace(item.Designs[loc]) == "" {
			missing = append(missing, loc)
		}
	}
	return missing
}
