package catalog

import "stylesai-service/models"

// categoryTree is the fixed category/subcategory skeleton shown by the
// categories listing. Products outside it are not listed there.
var categoryTree = map[string][]string{
	"menswear":   {"shirts", "tshirts", "blazers", "hoodies", "sweatshirts", "pants", "footwear", "accessories"},
	"womenswear": {"tops", "long_frocks", "sleeveless", "ethnic_wear", "bottoms", "footwear", "accessories", "jackets"},
	"kidswear":   {"boys", "girls", "accessories"},
	"genz":       {"oversized", "cargo", "hoodies", "pants", "jackets", "footwear", "accessories"},
	"jewelry":    {"nose_piercing", "ear_piercing", "jhumkas", "necklaces", "chains", "designer_bangles"},
}

// Categories groups the catalog into the fixed category/subcategory tree,
// each leaf holding short product references.
func (r *Reader) Categories() (map[string]map[string][]models.ProductRef, error) {
	products, err := r.ListAll()
	if err != nil {
		return nil, err
	}

	tree := make(map[string]map[string][]models.ProductRef, len(categoryTree))
	for category, subcategories := range categoryTree {
		tree[category] = make(map[string][]models.ProductRef, len(subcategories))
		for _, sub := range subcategories {
			tree[category][sub] = []models.ProductRef{}
		}
	}

	for _, p := range products {
		subs, ok := tree[p.Category]
		if !ok {
			continue
		}
		if _, ok := subs[p.Subcategory]; !ok {
			continue
		}
		subs[p.Subcategory] = append(subs[p.Subcategory], models.ProductRef{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
		})
	}
	return tree, nil
}
