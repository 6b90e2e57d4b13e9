package domain

import "strings"

type GarmentType string

const (
	GarmentTShirt     GarmentType = "tshirt"
	GarmentHoodie     GarmentType = "hoodie"
	GarmentSweatshirt GarmentType = "sweatshirt"
	GarmentTank       GarmentType = "tank"
	GarmentLongSleeve GarmentType = "longsleeve"
	GarmentPolo       GarmentType = "polo"
)

// IsStandard reports whether the garment needs material, cotton type and brand.
func (g GarmentType) IsStandard() bool {
	return g == GarmentTShirt || g == GarmentHoodie
}

type SizeCategory string

const (
	SizeCategoryAdult SizeCategory = "adult"
	SizeCategoryYouth SizeCategory = "youth"
)

func (c SizeCategory) Valid() bool {
	return c == SizeCategoryAdult || c == SizeCategoryYouth
}

type SizeKey string

const (
	SizeXSmall  SizeKey = "xsmall"
	SizeSmall   SizeKey = "small"
	SizeMedium  SizeKey = "medium"
	SizeLarge   SizeKey = "large"
	SizeXLarge  SizeKey = "xlarge"
	SizeXXLarge SizeKey = "xxlarge"
	SizeYouthS  SizeKey = "youth_s"
	SizeYouthM  SizeKey = "youth_m"
	SizeYouthL  SizeKey = "youth_l"
)

var (
	AdultSizes = []SizeKey{SizeXSmall, SizeSmall, SizeMedium, SizeLarge, SizeXLarge, SizeXXLarge}
	YouthSizes = []SizeKey{SizeYouthS, SizeYouthM, SizeYouthL}
	// AllSizes is the fixed key set every Sizes map is normalized to.
	AllSizes = append(append([]SizeKey{}, AdultSizes...), YouthSizes...)
)

// SizeEntry is one quantity/color pair. Quantity stays a string because it is
// typed free-form by the customer.
type SizeEntry struct {
	Quantity string `json:"quantity"`
	Color    string `json:"color"`
}

type Sizes map[SizeKey][]SizeEntry

// CustomLocationPrefix marks a free-text print location.
const CustomLocationPrefix = "custom:"

type PrintLocation string

const (
	LocationFront       PrintLocation = "front"
	LocationBack        PrintLocation = "back"
	LocationLeftChest   PrintLocation = "left-chest"
	LocationRightChest  PrintLocation = "right-chest"
	LocationLeftSleeve  PrintLocation = "left-sleeve"
	LocationRightSleeve PrintLocation = "right-sleeve"
	LocationBackNeck    PrintLocation = "back-neck"
	LocationFullFront   PrintLocation = "full-front"
	LocationFullBack    PrintLocation = "full-back"
)

// CustomLocation builds a custom print location for label.
func CustomLocation(label string) PrintLocation {
	return PrintLocation(CustomLocationPrefix + label)
}

func (p PrintLocation) IsCustom() bool {
	return strings.HasPrefix(string(p), CustomLocationPrefix)
}

// Label returns the free text of a custom location, or the location itself.
func (p PrintLocation) Label() string {
	if p.IsCustom() {
		return strings.TrimPrefix(string(p), CustomLocationPrefix)
	}
	return string(p)
}

// DesignHelpRequested is stored instead of an upload when the customer wants
// the shop to prepare the artwork.
const DesignHelpRequested = "help-requested"

type ContactInfo struct {
	FullName string `json:"fullName" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required"`
	Company  string `json:"company,omitempty"`
	Message  string `json:"message,omitempty"`
}

// OrderLineItem is one configured garment.
type OrderLineItem struct {
	GarmentType    GarmentType              `json:"garmentType"`
	MaterialType   string                   `json:"materialType"`
	CottonType     string                   `json:"cottonType"`
	Brand          string                   `json:"brand"`
	SizeCategory   SizeCategory             `json:"sizeCategory"`
	Sizes          Sizes                    `json:"sizes"`
	PrintLocations []PrintLocation          `json:"printLocations"`
	Designs        map[PrintLocation]string `json:"designs"`
	ContactInfo    ContactInfo              `json:"contactInfo"`
	ItemIndex      int                      `json:"itemIndex"`
}

// Order is what gets handed to the email dispatcher.
type Order struct {
	ContactInfo ContactInfo     `json:"contactInfo"`
	Items       []OrderLineItem `json:"items"`
}

type ContactMessage struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}
