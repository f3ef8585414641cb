package catalog

import (
	"strings"

	"stylesai-service/models"
)

// ValidCategories is the fixed set accepted by the category route.
var ValidCategories = []string{"menswear", "womenswear", "kidswear", "genz", "jewelry"}

func IsValidCategory(category string) bool {
	for _, c := range ValidCategories {
		if c == strings.ToLower(category) {
			return true
		}
	}
	return false
}

// The filters below are pure functions over a product slice.

func FilterByCategory(products []models.Product, category string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

func FilterBySubcategory(products []models.Product, subcategory string) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Subcategory == subcategory {
			out = append(out, p)
		}
	}
	return out
}

func FilterByMinPrice(products []models.Product, min float64) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Price >= min {
			out = append(out, p)
		}
	}
	return out
}

func FilterByMaxPrice(products []models.Product, max float64) []models.Product {
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.Price <= max {
			out = append(out, p)
		}
	}
	return out
}

// FilterByStyle matches a style tag case-insensitively.
func FilterByStyle(products []models.Product, style string) []models.Product {
	style = strings.ToLower(style)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		for _, tag := range p.StyleTags {
			if strings.ToLower(tag) == style {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

// Search matches name, description or brand case-insensitively.
func Search(products []models.Product, query string) []models.Product {
	query = strings.ToLower(query)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), query) ||
			strings.Contains(strings.ToLower(p.Description), query) ||
			strings.Contains(strings.ToLower(p.Brand), query) {
			out = append(out, p)
		}
	}
	return out
}
