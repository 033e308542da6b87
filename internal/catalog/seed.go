package catalog

import (
	"github.com/kristopher-lab/verdure-premium-plant-shop/internal/domain"
	"github.com/kristopher-lab/verdure-premium-plant-shop/pkg/slug"
)

// seedProducts returns the static catalog dataset, in seeding order. Records
// missing a slug get one derived from the display name.
func seedProducts() []domain.Product {
	products := []domain.Product{
		{
			ID:          "prod_01",
			Name:        "Monstera Deliciosa",
			Slug:        "monstera-deliciosa",
			Description: "Iconic for its large, glossy, heart-shaped leaves that develop characteristic splits or holes. A must-have for any plant enthusiast.",
			Price:       3500,
			Images: []string{
				"https://images.unsplash.com/photo-1614594975525-e45190c55d0b?q=80&w=800",
				"https://images.unsplash.com/photo-1591348278463-88a421189ac8?q=80&w=800",
			},
			Category: domain.CategoryIndoor,
			Tags:     []string{domain.TagPartialShade, domain.TagAirPurifying},
			Variants: []domain.ProductVariant{
				{ID: "var_01a", Name: `6" Pot`, SKU: "MD-S-01", Price: 3500, Inventory: 15},
				{ID: "var_01b", Name: `10" Pot`, SKU: "MD-L-01", Price: 6500, Inventory: 8},
			},
		},
		{
			ID:          "prod_02",
			Name:        "Snake Plant",
			Slug:        "sansevieria-trifasciata",
			Description: "Extremely hardy and low-maintenance, the Snake Plant features stiff, upright leaves and is known for its air-purifying qualities.",
			Price:       2800,
			Images: []string{
				"https://images.unsplash.com/photo-1593482892290-f549329980a8?q=80&w=800",
				"https://images.unsplash.com/photo-1609242598199-elsonb14689f?q=80&w=800",
			},
			Category: domain.CategoryIndoor,
			Tags:     []string{domain.TagLowLight, domain.TagAirPurifying, domain.TagPetFriendly},
			Variants: []domain.ProductVariant{
				{ID: "var_02a", Name: `4" Pot`, SKU: "SP-S-02", Price: 2800, Inventory: 20},
				{ID: "var_02b", Name: `8" Pot`, SKU: "SP-L-02", Price: 5200, Inventory: 10},
			},
		},
		{
			ID:          "prod_03",
			Name:        "Fiddle Leaf Fig",
			Slug:        "ficus-lyrata",
			Description: "A trendy and dramatic plant with large, violin-shaped leaves. It makes a stunning statement piece in any bright room.",
			Price:       7500,
			Images: []string{
				"https://images.unsplash.com/photo-1584589167171-543706e47c18?q=80&w=800",
				"https://images.unsplash.com/photo-1632207691143-643e2a9a9361?q=80&w=800",
			},
			Category: domain.CategoryIndoor,
			Tags:     []string{domain.TagFullSun, domain.TagPartialShade},
			Variants: []domain.ProductVariant{
				{ID: "var_03a", Name: "3ft Tall", SKU: "FLF-M-03", Price: 7500, Inventory: 5},
				{ID: "var_03b", Name: "5ft Tall", SKU: "FLF-L-03", Price: 15000, Inventory: 3},
			},
		},
		{
			ID:          "prod_04",
			Name:        `Echeveria "Lola"`,
			Slug:        "echeveria-lola",
			Description: "A beautiful rosette-forming succulent with pale, silvery-green leaves that have a hint of pink and lavender. Perfect for sunny windowsills.",
			Price:       1200,
			Images: []string{
				"https://images.unsplash.com/photo-1520429308892-3541a623a05d?q=80&w=800",
				"https://images.unsplash.com/photo-1587397279439-694143523380?q=80&w=800",
			},
			Category: domain.CategorySucculents,
			Tags:     []string{domain.TagFullSun},
			Variants: []domain.ProductVariant{
				{ID: "var_04a", Name: `2" Pot`, SKU: "ECH-S-04", Price: 1200, Inventory: 30},
			},
		},
		{
			ID:          "prod_05",
			Name:        `Pothos "Marble Queen"`,
			Slug:        "epipremnum-aureum-marble-queen",
			Description: "A popular and easy-to-care-for vining plant with heart-shaped leaves variegated with creamy white. Great for hanging baskets.",
			Price:       2200,
			Images: []string{
				"https://images.unsplash.com/photo-1622383439233-0c21a13c133a?q=80&w=800",
				"https://images.unsplash.com/photo-1600415918422-a1896b291c36?q=80&w=800",
			},
			Category: domain.CategoryIndoor,
			Tags:     []string{domain.TagPartialShade, domain.TagLowLight, domain.TagAirPurifying},
			Variants: []domain.ProductVariant{
				{ID: "var_05a", Name: `6" Hanging Basket`, SKU: "PQ-M-05", Price: 2200, Inventory: 18},
			},
		},
		{
			ID:          "prod_06",
			Name:        "Bird of Paradise",
			Slug:        "strelitzia-nicolai",
			Description: "Bring a tropical vibe indoors with this large, upright plant featuring banana-like leaves. A true showstopper.",
			Price:       8500,
			Images: []string{
				"https://images.unsplash.com/photo-1600415918422-a1896b291c36?q=80&w=800",
				"https://images.unsplash.com/photo-1470058869958-2a77ade41c02?q=80&w=800",
			},
			Category: domain.CategoryIndoor,
			Tags:     []string{domain.TagFullSun},
			Variants: []domain.ProductVariant{
				{ID: "var_06a", Name: `10" Pot`, SKU: "BOP-L-06", Price: 8500, Inventory: 7},
			},
		},
		{
			ID:          "prod_07",
			Name:        "Bunny Ear Cactus",
			Slug:        "opuntia-microdasys",
			Description: "A charming cactus that grows in pads resembling bunny ears, covered in fuzzy glochids instead of sharp spines.",
			Price:       1800,
			Images: []string{
				"https://images.unsplash.com/photo-1519336056116-bc0f1771dec8?q=80&w=800",
				"https://images.unsplash.com/photo-1593538192693-9595a9332732?q=80&w=800",
			},
			Category: domain.CategoryCacti,
			Tags:     []string{domain.TagFullSun},
			Variants: []domain.ProductVariant{
				{ID: "var_07a", Name: `4" Pot`, SKU: "BEC-S-07", Price: 1800, Inventory: 25},
			},
		},
		{
			ID:          "prod_08",
			Name:        "Calathea Orbifolia",
			Slug:        "calathea-orbifolia",
			Description: "Known for its large, round leaves with beautiful silver stripes. A statement plant that is also pet-friendly.",
			Price:       4000,
			Images: []string{
				"https://images.unsplash.com/photo-1629231802877-39a73145d4e1?q=80&w=800",
				"https://images.unsplash.com/photo-1629231802877-39a73145d4e1?q=80&w=800",
			},
			Category: domain.CategoryIndoor,
			Tags:     []string{domain.TagPartialShade, domain.TagPetFriendly},
			Variants: []domain.ProductVariant{
				{ID: "var_08a", Name: `6" Pot`, SKU: "CO-M-08", Price: 4000, Inventory: 12},
			},
		},
	}

	for i := range products {
		if products[i].Slug == "" {
			products[i].Slug = slug.Generate(products[i].Name)
		}
	}

	return products
}
