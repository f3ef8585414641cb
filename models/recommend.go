package models

type OutfitRequest struct {
	ProductID       int     `json:"product_id" binding:"required,min=1"`
	StylePreference string  `json:"style_preference"`
	Occasion        string  `json:"occasion"`
	Budget          float64 `json:"budget"`
}

type MatchRequest struct {
	ProductID int    `json:"product_id" binding:"required,min=1"`
	Category  string `json:"category"`
}

type PersonalizeRequest struct {
	Style    string   `json:"style"`
	Colors   []string `json:"colors"`
	Budget   string   `json:"budget"`
	BodyType string   `json:"body_type"`
	Occasion string   `json:"occasion"`
}

type AdviceRequest struct {
	Query string `json:"query" binding:"required"`
}

type OutfitRecommendation struct {
	MainItem      Product   `json:"main_item"`
	MatchingItems []Product `json:"matching_items"`
	StyleScore    float64   `json:"style_score"`
	Reasoning     string    `json:"reasoning"`
}

type TrendReport struct {
	TrendingColors []string `json:"trending_colors"`
	PopularStyles  []string `json:"popular_styles"`
	MustHaveItems  []string `json:"must_have_items"`
	StylingTips    []string `json:"styling_tips"`
}

type Prediction struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type ImageAnalysis struct {
	DetectedItems  []string     `json:"detected_items"`
	TopPredictions []Prediction `json:"top_predictions"`
	Category       string       `json:"category"`
	Confidence     float64      `json:"confidence"`
	Colors         []string     `json:"colors"`
	StyleTags      []string     `json:"style_tags"`
}
