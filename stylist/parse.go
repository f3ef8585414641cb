package stylist

import (
	"encoding/json"

	"stylesai-service/models"
)

type outfitResponse struct {
	MatchingItems []int    `json:"matching_items"`
	StyleScore    *float64 `json:"style_score"`
	Reasoning     string   `json:"reasoning"`
}

// ParseOutfit interprets free-form model output as an outfit
// recommendation. On any structural mismatch it returns the deterministic
// fallback for the same input, so the result is always usable.
func ParseOutfit(text string, selected models.Product, all []models.Product) models.OutfitRecommendation {
	region, ok := ExtractJSON(text)
	if !ok {
		return FallbackRecommendation(selected, all)
	}

	var resp outfitResponse
	if err := json.Unmarshal([]byte(region), &resp); err != nil {
		return FallbackRecommendation(selected, all)
	}

	wanted := make(map[int]struct{}, len(resp.MatchingItems))
	for _, id := range resp.MatchingItems {
		wanted[id] = struct{}{}
	}

	matching := make([]models.Product, 0, len(wanted))
	for _, p := range all {
		if _, ok := wanted[p.ID]; ok && p.ID != selected.ID {
			matching = append(matching, p)
		}
	}
	if len(matching) == 0 {
		matching = FallbackMatches(selected, all, 5)
	}
	if len(matching) > 5 {
		matching = matching[:5]
	}

	score := 8.0
	if resp.StyleScore != nil {
		score = *resp.StyleScore
	}

	return models.OutfitRecommendation{
		MainItem:      selected,
		MatchingItems: matching,
		StyleScore:    score,
		Reasoning:     resp.Reasoning,
	}
}

// ParseTrends interprets free-form model output as a trend report, falling
// back to the default report on any mismatch.
func ParseTrends(text string) models.TrendReport {
	region, ok := ExtractJSON(text)
	if !ok {
		return DefaultTrends()
	}

	var report models.TrendReport
	if err := json.Unmarshal([]byte(region), &report); err != nil {
		return DefaultTrends()
	}
	if report.TrendingColors == nil {
		report.TrendingColors = []string{}
	}
	if report.PopularStyles == nil {
		report.PopularStyles = []string{}
	}
	if report.MustHaveItems == nil {
		report.MustHaveItems = []string{}
	}
	if report.StylingTips == nil {
		report.StylingTips = []string{}
	}
	return report
}
