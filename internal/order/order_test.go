package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

func TestNewLineItemHasEveryEmptySize(t *testing.T) {
	item := NewLineItem()

	require.Len(t, item.Sizes, len(domain.AllSizes))
	for _, key := range domain.AllSizes {
		entries, ok := item.Sizes[key]
		assert.True(t, ok, "size %s missing", key)
		assert.Empty(t, entries)
	}
	assert.Equal(t, domain.SizeCategoryAdult, item.SizeCategory)
	assert.Equal(t, domain.ContactInfo{}, item.ContactInfo)
	assert.Zero(t, item.ItemIndex)
	assert.NotNil(t, item.Designs)
}

func TestNextLineItemKeepsContactAndBumpsIndex(t *testing.T) {
	prev := NewLineItem()
	prev.GarmentType = domain.GarmentHoodie
	prev.ItemIndex = 2
	prev.Sizes[domain.SizeLarge] = []domain.SizeEntry{{Quantity: "3", Color: "black"}}
	prev.PrintLocations = []domain.PrintLocation{domain.LocationBack}
	prev.ContactInfo = domain.ContactInfo{FullName: "Ana", Email: "ana@example.com", Phone: "555"}

	next := NextLineItem(prev)

	assert.Equal(t, 3, next.ItemIndex)
	assert.Equal(t, prev.ContactInfo, next.ContactInfo)
	assert.Empty(t, next.GarmentType)
	assert.Empty(t, next.PrintLocations)
	assert.Zero(t, TotalQuantity(next.Sizes))
	for _, key := range domain.AllSizes {
		assert.Empty(t, next.Sizes[key])
	}
}

func TestNormalizeSizes(t *testing.T) {
	in := domain.Sizes{
		domain.SizeMedium: {{Quantity: "2", Color: "white"}},
		"gigantic":        {{Quantity: "9", Color: "white"}},
	}
	out := NormalizeSizes(in)

	assert.Len(t, out, len(domain.AllSizes))
	assert.Equal(t, []domain.SizeEntry{{Quantity: "2", Color: "white"}}, out[domain.SizeMedium])
	_, ok := out["gigantic"]
	assert.False(t, ok)

	in[domain.SizeMedium][0].Quantity = "7"
	assert.Equal(t, "2", out[domain.SizeMedium][0].Quantity)
}

func TestTotalQuantity(t *testing.T) {
	cases := []struct {
		name  string
		sizes domain.Sizes
		want  int
	}{
		{name: "nil", sizes: nil, want: 0},
		{name: "all empty", sizes: NewLineItem().Sizes, want: 0},
		{name: "single", sizes: domain.Sizes{domain.SizeMedium: {{Quantity: "5", Color: "white"}}}, want: 5},
		{
			name: "many sizes and colors",
			sizes: domain.Sizes{
				domain.SizeSmall:  {{Quantity: "2", Color: "white"}, {Quantity: "3", Color: "black"}},
				domain.SizeYouthM: {{Quantity: " 4 ", Color: "navy"}},
			},
			want: 9,
		},
		{
			name: "junk counts as zero",
			sizes: domain.Sizes{
				domain.SizeLarge: {{Quantity: "", Color: "white"}, {Quantity: "abc"}, {Quantity: "-4"}, {Quantity: "1.5"}, {Quantity: "6"}},
			},
			want: 6,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TotalQuantity(tc.sizes))
		})
	}
}

func TestSanitizeLocations(t *testing.T) {
	in := []domain.PrintLocation{
		domain.LocationFront,
		domain.CustomLocation(""),
		domain.CustomLocation("hood"),
		domain.CustomLocation("   "),
		domain.LocationBack,
	}
	out := SanitizeLocations(in)

	assert.Equal(t, []domain.PrintLocation{domain.LocationFront, domain.CustomLocation("hood"), domain.LocationBack}, out)
	assert.Len(t, in, 5, "input must not be modified")
	assert.Empty(t, SanitizeLocations([]domain.PrintLocation{domain.CustomLocation("")}))
}

func TestMissingDesigns(t *testing.T) {
	item := NewLineItem()
	item.PrintLocations = []domain.PrintLocation{domain.LocationLeftChest, domain.LocationBack, domain.CustomLocation("hood"), domain.CustomLocation("")}
	item.Designs[domain.LocationLeftChest] = "data:image/png;base64,AAAA"

	assert.Equal(t, []domain.PrintLocation{domain.LocationBack}, MissingDesigns(item, false))
	assert.Equal(t, []domain.PrintLocation{domain.LocationBack, domain.CustomLocation("hood")}, MissingDesigns(item, true))

	item.Designs[domain.LocationBack] = domain.DesignHelpRequested
	assert.Empty(t, MissingDesigns(item, false))
}

func TestFreezeIsIndependentCopy(t *testing.T) {
	item := NewLineItem()
	item.Sizes[domain.SizeMedium] = []domain.SizeEntry{{Quantity: "5", Color: "white"}}
	item.PrintLocations = []domain.PrintLocation{domain.LocationFront, domain.CustomLocation("")}
	item.Designs[domain.LocationFront] = domain.DesignHelpRequested

	frozen := Freeze(item)
	item.Sizes[domain.SizeMedium][0].Quantity = "50"
	item.Designs[domain.LocationFront] = "changed"

	assert.Equal(t, "5", frozen.Sizes[domain.SizeMedium][0].Quantity)
	assert.Equal(t, domain.DesignHelpRequested, frozen.Designs[domain.LocationFront])
	assert.Equal(t, []domain.PrintLocation{domain.LocationFront}, frozen.PrintLocations)
}

func TestUpsertReplacesByItemIndex(t *testing.T) {
	first := NewLineItem()
	second := NextLineItem(first)
	saved := Upsert(nil, first)
	saved = Upsert(saved, second)
	require.Len(t, saved, 2)

	second.GarmentType = domain.GarmentTank
	updated := Upsert(saved, second)
	require.Len(t, updated, 2)
	assert.Equal(t, domain.GarmentTank, updated[1].GarmentType)
	assert.Empty(t, saved[1].GarmentType)
}

func TestMergeIgnoresEmptyActiveItem(t *testing.T) {
	saved := []domain.OrderLineItem{NewLineItem()}
	active := NextLineItem(saved[0])

	assert.Len(t, Merge(saved, active), 1)

	active.Sizes[domain.SizeSmall] = []domain.SizeEntry{{Quantity: "1", Color: "red"}}
	assert.Len(t, Merge(saved, active), 2)

	saved[0].Sizes[domain.SizeSmall] = []domain.SizeEntry{{Quantity: "1", Color: "red"}}
	merged := Merge(saved, saved[0])
	assert.Len(t, merged, 1, "an item already saved is replaced, not duplicated")
}

func TestValidateContact(t *testing.T) {
	ok := domain.ContactInfo{FullName: "Ana", Email: "ana@example.com", Phone: "555-0100"}
	assert.NoError(t, ValidateContact(ok))

	missingPhone := ok
	missingPhone.Phone = "  "
	assert.ErrorIs(t, ValidateContact(missingPhone), ErrMissingContact)

	missingName := ok
	missingName.FullName = ""
	assert.ErrorIs(t, ValidateContact(missingName), ErrMissingContact)

	badEmail := ok
	badEmail.Email = "not-an-email"
	assert.ErrorIs(t, ValidateContact(badEmail), ErrInvalidEmail)
}

func TestValidateOrder(t *testing.T) {
	contact := domain.ContactInfo{FullName: "Ana", Email: "ana@example.com", Phone: "555"}
	assert.ErrorIs(t, ValidateOrder(domain.Order{ContactInfo: contact}), ErrEmptyOrder)

	item := NewLineItem()
	item.GarmentType = domain.GarmentTShirt
	item.Sizes[domain.SizeMedium] = []domain.SizeEntry{{Quantity: "5", Color: "white"}}

	err := ValidateOrder(domain.Order{ContactInfo: contact, Items: []domain.OrderLineItem{item}})
	var itemErr *ItemError
	require.ErrorAs(t, err, &itemErr)
	assert.Equal(t, "material type required", itemErr.Reason)

	item.MaterialType = "cotton"
	item.CottonType = "ringspun"
	item.Brand = "gildan"
	assert.NoError(t, ValidateOrder(domain.Order{ContactInfo: contact, Items: []domain.OrderLineItem{item}}))

	tank := NewLineItem()
	tank.GarmentType = domain.GarmentTank
	tank.Sizes[domain.SizeSmall] = []domain.SizeEntry{{Quantity: "1"}}
	assert.NoError(t, ValidateOrder(domain.Order{ContactInfo: contact, Items: []domain.OrderLineItem{tank}}))
}
