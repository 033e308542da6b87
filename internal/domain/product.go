package domain

// Product category constants.
const (
	CategoryIndoor     = "Indoor"
	CategoryOutdoor    = "Outdoor"
	CategorySucculents = "Succulents"
	CategoryCacti      = "Cacti"
)

// Product tag constants.
const (
	TagFullSun      = "Full Sun"
	TagPartialShade = "Partial Shade"
	TagLowLight     = "Low Light"
	TagPetFriendly  = "Pet-Friendly"
	TagAirPurifying = "Air Purifying"
)

// Product represents a plant in the catalog.
type Product struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Price       int64            `json:"price"` // in cents, for the default variant
	Images      []string         `json:"images"`
	Category    string           `json:"category"`
	Tags        []string         `json:"tags"`
	Variants    []ProductVariant `json:"variants"`
}

// ProductVariant represents a purchasable variant of a product (e.g. pot size).
type ProductVariant struct {
	ID        string `json:"id"`
	Name      string `json:"name"` // e.g. "6\" Pot"
	SKU       string `json:"sku"`
	Price     int64  `json:"price"` // in cents
	Inventory int    `json:"inventory"`
}

// ValidCategories returns the set of valid product categories.
func ValidCategories() []string {
	return []string{CategoryIndoor, CategoryOutdoor, CategorySucculents, CategoryCacti}
}

// IsValidCategory checks whether the given string is a valid product category.
func IsValidCategory(category string) bool {
	for _, c := range ValidCategories() {
		if c == category {
			return true
		}
	}
	return false
}

// DisplayPrice returns the price shown in catalog listings: the first
// variant's price, falling back to the product's own base price.
func (p *Product) DisplayPrice() int64 {
	if len(p.Variants) > 0 {
		return p.Variants[0].Price
	}
	return p.Price
}

// FindVariant returns the variant with the given display name, or nil if the
// product has no such variant.
func (p *Product) FindVariant(name string) *ProductVariant {
	for i := range p.Variants {
		if p.Variants[i].Name == name {
			return &p.Variants[i]
		}
	}
	return nil
}
