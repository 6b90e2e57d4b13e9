// Package catalog lists the garments, fabrics, brands, colors and print
// locations the shop offers.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"github.com/addictedsalas/project-printing-sub000/internal/domain"
)

// Garment is one orderable garment type with its options.
type Garment struct {
	Type        domain.GarmentType `json:"type"`
	Label       string             `json:"label"`
	Standard    bool               `json:"standard"`
	Materials   []string           `json:"materials"`
	CottonTypes []string           `json:"cottonTypes"`
	Brands      []string           `json:"brands"`
	Colors      []string           `json:"colors"`
}

// Catalog is read-only once built.
type Catalog struct {
	Garments  []Garment              `json:"garments"`
	Locations []domain.PrintLocation `json:"printLocations"`
	Sizes     map[string][]string    `json:"sizes"`
	byType    map[domain.GarmentType]Garment
}

var (
	defaultMaterials   = []string{"cotton", "polyester", "cotton-poly-blend", "tri-blend"}
	defaultCottonTypes = []string{"standard", "ringspun", "organic", "heavyweight"}
	defaultBrands      = []string{"gildan", "bella-canvas", "next-level", "comfort-colors", "champion", "independent"}
	defaultColors      = []string{"white", "black", "navy", "heather-gray", "red", "royal-blue", "forest-green", "maroon", "sand"}
	defaultLocations   = []domain.PrintLocation{
		domain.LocationFront,
		domain.LocationBack,
		domain.LocationLeftChest,
		domain.LocationRightChest,
		domain.LocationLeftSleeve,
		domain.LocationRightSleeve,
		domain.LocationBackNeck,
		domain.LocationFullFront,
		domain.LocationFullBack,
	}
)

// Default returns the built-in catalog.
func Default() *Catalog {
	garment := func(t domain.GarmentType, label string) Garment {
		return Garment{
			Type:        t,
			Label:       label,
			Standard:    t.IsStandard(),
			Materials:   defaultMaterials,
			CottonTypes: defaultCottonTypes,
			Brands:      defaultBrands,
			Colors:      defaultColors,
		}
	}
	return New([]Garment{
		garment(domain.GarmentTShirt, "T-Shirt"),
		garment(domain.GarmentHoodie, "Hoodie"),
		garment(domain.GarmentSweatshirt, "Sweatshirt"),
		garment(domain.GarmentTank, "Tank Top"),
		garment(domain.GarmentLongSleeve, "Long Sleeve"),
		garment(domain.GarmentPolo, "Polo"),
	})
}

// New indexes garments. Print locations and sizes are fixed.
func New(garments []Garment) *Catalog {
	c := &Catalog{
		Garments:  garments,
		Locations: defaultLocations,
		Sizes: map[string][]string{
			string(domain.SizeCategoryAdult): sizeNames(domain.AdultSizes),
			string(domain.SizeCategoryYouth): sizeNames(domain.YouthSizes),
		},
		byType: make(map[domain.GarmentType]Garment, len(garments)),
	}
	for _, g := range garments {
		c.byType[g.Type] = g
	}
	return c
}

// Garment looks a garment up by type.
func (c *Catalog) Garment(t domain.GarmentType) (Garment, bool) {
	g, ok := c.byType[t]
	return g, ok
}

// ValidateItem rejects enumeration values the shop does not offer. Empty
// values are allowed: the wizard fills the item in over several steps.
func (c *Catalog) ValidateItem(item domain.OrderLineItem) error {
	if item.SizeCategory != "" && !item.SizeCategory.Valid() {
		return invalid("unknown size category %q", item.SizeCategory)
	}
	colors := allColors(c.Garments)
	if item.GarmentType != "" {
		g, ok := c.byType[item.GarmentType]
		if !ok {
			return invalid("unknown garment type %q", item.GarmentType)
		}
		if err := oneOf("material type", item.MaterialType, g.Materials); err != nil {
			return err
		}
		if err := oneOf("cotton type", item.CottonType, g.CottonTypes); err != nil {
			return err
		}
		if err := oneOf("brand", item.Brand, g.Brands); err != nil {
			return err
		}
		colors = g.Colors
	}
	for size, entries := range item.Sizes {
		if !slices.Contains(domain.AllSizes, size) {
			return invalid("unknown size %q", size)
		}
		for _, e := range entries {
			if err := oneOf("color", e.Color, colors); err != nil {
				return err
			}
		}
	}
	for _, loc := range item.PrintLocations {
		if loc.IsCustom() {
			continue
		}
		if !slices.Contains(c.Locations, loc) {
			return invalid("unknown print location %q", loc)
		}
	}
	return nil
}

func oneOf(field, value string, allowed []string) error {
	value = strings.TrimSpace(value)
	if value == "" || slices.Contains(allowed, value) {
		return nil
	}
	return invalid("unknown %s %q", field, value)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{domain.ErrInvalidInput}, args...)...)
}

func allColors(garments []Garment) []string {
	var out []string
	for _, g := range garments {
		for _, col := range g.Colors {
			if !slices.Contains(out, col) {
				out = append(out, col)
			}
		}
	}
	return out
}

func sizeNames(keys []domain.SizeKey) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, string(k))
	}
	return out
}
