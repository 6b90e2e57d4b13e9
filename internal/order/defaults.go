// Package order holds the pure rules for building, checking and freezing
// order line items.
package order

import "github.com/addictedsalas/project-printing-sub000/internal/domain"

// NewLineItem returns a blank line item with every size key present.
func NewLineItem() domain.OrderLineItem {
	return domain.OrderLineItem{
		SizeCategory:   domain.SizeCategoryAdult,
		Sizes:          emptySizes(),
		PrintLocations: []domain.PrintLocation{},
		Designs:        map[domain.PrintLocation]string{},
		ContactInfo:    domain.ContactInfo{},
	}
}

// NextLineItem resets the form after an item was saved. Only the contact
// details survive and the item index moves forward by one.
func NextLineItem(prev domain.OrderLineItem) domain.OrderLineItem {
	next := NewLineItem()
	next.ContactInfo = prev.ContactInfo
	next.ItemIndex = prev.ItemIndex + 1
	return next
}

// NormalizeSizes returns a copy of sizes where every known key is present and
// unknown keys are dropped.
func NormalizeSizes(sizes domain.Sizes) domain.Sizes {
	out := emptySizes()
	for _, key := range domain.AllSizes {
		if entries, ok := sizes[key]; ok && len(entries) > 0 {
			out[key] = append([]domain.SizeEntry(nil), entries...)
		}
	}
	return out
}

func emptySizes() domain.Sizes {
	sizes := make(domain.Sizes, len(domain.AllSizes))
	for _, key := range domain.AllSizes {
		sizes[key] = []domain.SizeEntry{}
	}
	return sizes
}
