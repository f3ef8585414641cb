package stylist

import (
	"sort"
	"strings"

	"stylesai-service/models"
)

// complements maps a subcategory to the subcategories that complete an
// outfit with it. Used whenever the external stylist is unavailable or
// returns unusable output.
var complements = map[string][]string{
	"shirts":      {"pants", "bottoms", "footwear", "accessories"},
	"tshirts":     {"pants", "footwear", "accessories"},
	"tops":        {"bottoms", "footwear", "accessories"},
	"dresses":     {"footwear", "accessories"},
	"long_frocks": {"footwear", "accessories"},
	"pants":       {"shirts", "tops", "footwear", "accessories"},
	"bottoms":     {"shirts", "tops", "footwear", "accessories"},
	"footwear":    {"pants", "bottoms", "shirts", "tops"},
	"accessories": {"shirts", "tops", "pants", "dresses"},
	"blazers":     {"shirts", "pants", "footwear"},
	"hoodies":     {"pants", "footwear"},
	"sweatshirts": {"pants", "footwear"},
	"jackets":     {"shirts", "tops", "pants", "bottoms"},
	"boys":        {"accessories", "footwear"},
	"girls":       {"accessories", "footwear"},
	"oversized":   {"cargo", "pants", "footwear", "accessories"},
	"cargo":       {"oversized", "hoodies", "footwear"},
	"sleeveless":  {"bottoms", "pants", "accessories"},
	"ethnic_wear": {"footwear", "accessories"},
}

var defaultComplements = []string{"shirts", "pants", "footwear", "accessories"}

// ComplementsOf returns the complementary subcategories for a subcategory.
func ComplementsOf(subcategory string) []string {
	if c, ok := complements[subcategory]; ok {
		return c
	}
	return defaultComplements
}

// matchComplements is the narrower pairing table behind the match
// endpoint. Unlike the outfit fallback table it carries jackets as a
// complement and yields no matches for subcategories it does not know.
var matchComplements = map[string][]string{
	"shirts":      {"pants", "footwear", "accessories", "jackets"},
	"tops":        {"bottoms", "footwear", "accessories", "jackets"},
	"dresses":     {"footwear", "accessories", "jackets"},
	"pants":       {"shirts", "tops", "footwear", "accessories", "jackets"},
	"bottoms":     {"tops", "shirts", "footwear", "accessories", "jackets"},
	"footwear":    {"pants", "bottoms", "shirts", "tops"},
	"accessories": {"shirts", "tops", "pants", "bottoms", "dresses"},
	"jackets":     {"shirts", "tops", "pants", "bottoms", "dresses"},
	"boys":        {"accessories", "footwear"},
	"girls":       {"accessories", "footwear"},
}

// MatchComplementsOf returns the pairing subcategories used by the match
// endpoint; unknown subcategories have none.
func MatchComplementsOf(subcategory string) []string {
	return matchComplements[subcategory]
}

// FallbackMatches picks up to limit products from subcategories that
// complement the selected product, in catalog order. Deterministic for a
// given input.
func FallbackMatches(selected models.Product, all []models.Product, limit int) []models.Product {
	wanted := ComplementsOf(selected.Subcategory)
	out := make([]models.Product, 0, limit)
	for _, p := range all {
		if p.ID == selected.ID {
			continue
		}
		for _, sub := range wanted {
			if p.Subcategory == sub {
				out = append(out, p)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

// FallbackRecommendation is the deterministic substitute outfit used when
// the external stylist call fails.
func FallbackRecommendation(selected models.Product, all []models.Product) models.OutfitRecommendation {
	return models.OutfitRecommendation{
		MainItem:      selected,
		MatchingItems: FallbackMatches(selected, all, 5),
		StyleScore:    7.5,
		Reasoning:     "Based on your selection",
	}
}

// DefaultTrends is the substitute trend report.
func DefaultTrends() models.TrendReport {
	return models.TrendReport{
		TrendingColors: []string{"Neutral"},
		PopularStyles:  []string{"Casual"},
		MustHaveItems:  []string{},
		StylingTips:    []string{},
	}
}

// FallbackImageAnalysis is the substitute result when no vision model can
// analyze the upload.
func FallbackImageAnalysis() models.ImageAnalysis {
	return models.ImageAnalysis{
		DetectedItems:  []string{"Fashion item"},
		TopPredictions: []models.Prediction{{Label: "Fashion item", Confidence: 0.5}},
		Category:       "unisex",
		Confidence:     0.5,
		Colors:         []string{"Various"},
		StyleTags:      []string{"versatile"},
	}
}

// FallbackAdvice is the substitute quick-advice string.
func FallbackAdvice() string {
	return "Thank you for your question! For personalized fashion advice, explore our curated collections and try our AI outfit matching feature to discover your perfect style."
}

// PersonalizedFallbackAdvice builds the substitute personalized advice.
func PersonalizedFallbackAdvice(style, occasion string) string {
	return "Focus on " + style + " for " + occasion + ". Start with neutral basics and add statement pieces."
}

// SimilarByStyle returns up to limit products sharing at least one style
// tag with the given product, in catalog order.
func SimilarByStyle(product models.Product, all []models.Product, limit int) []models.Product {
	tags := make(map[string]struct{}, len(product.StyleTags))
	for _, t := range product.StyleTags {
		tags[strings.ToLower(t)] = struct{}{}
	}

	out := make([]models.Product, 0, limit)
	for _, p := range all {
		if p.ID == product.ID {
			continue
		}
		for _, t := range p.StyleTags {
			if _, ok := tags[strings.ToLower(t)]; ok {
				out = append(out, p)
				break
			}
		}
		if len(out) == limit {
			break
		}
	}
	return out
}

// TopRated returns up to limit products ranked by rating, best first.
// Rating stands in for popularity.
func TopRated(products []models.Product, limit int) []models.Product {
	ranked := make([]models.Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Rating > ranked[j].Rating })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
