package order

import "github.com/addictedsalas/project-printing-sub000/internal/domain"

// Freeze copies item so later edits of the active form never leak into a
// saved item. Print locations are sanitized on the way.
func Freeze(item domain.OrderLineItem) domain.OrderLineItem {
	frozen := item
	frozen.Sizes = make(domain.Sizes, len(item.Sizes))
	for key, entries := range item.Sizes {
		frozen.Sizes[key] = append([]domain.SizeEntry{}, entries...)
	}
	frozen.PrintLocations = SanitizeLocations(item.PrintLocations)
	frozen.Designs = make(map[domain.PrintLocation]string, len(item.Designs))
	for loc, design := range item.Designs {
		frozen.Designs[loc] = design
	}
	return frozen
}

// Upsert stores item in saved, replacing the entry with the same item index
// or appending when there is none. saved itself is not modified.
func Upsert(saved []domain.OrderLineItem, item domain.OrderLineItem) []domain.OrderLineItem {
	out := make([]domain.OrderLineItem, 0, len(saved)+1)
	replaced := false
	for _, existing := range saved {
		if existing.ItemIndex == item.ItemIndex {
			out = append(out, item)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, item)
	}
	return out
}

// Merge combines the saved items with the in-progress one. The active item
// only counts when it carries a quantity.
func Merge(saved []domain.OrderLineItem, active domain.OrderLineItem) []domain.OrderLineItem {
	if TotalQuantity(active.Sizes) == 0 {
		return append([]domain.OrderLineItem{}, saved...)
	}
	return Upsert(saved, Freeze(active))
}
