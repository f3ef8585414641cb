package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"stylesai-service/catalog"
	"stylesai-service/models"
	"stylesai-service/stylist"

	"github.com/gin-gonic/gin"
)

// TextGenerator produces free-form text from a prompt.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// VisionGenerator produces free-form text from a prompt plus an image.
type VisionGenerator interface {
	GenerateWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
}

// Completer produces a quick single-turn completion.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// RecommendHandler forwards structured requests to the external advice
// generators. Every endpoint is total: an external failure, timeout or
// unparsable response degrades to the deterministic stylist heuristic and
// is never surfaced to the caller.
type RecommendHandler struct {
	catalog *catalog.Reader
	text    TextGenerator
	vision  VisionGenerator
	quick   Completer
}

func NewRecommendHandler(catalogReader *catalog.Reader, text TextGenerator, vision VisionGenerator, quick Completer) *RecommendHandler {
	return &RecommendHandler{
		catalog: catalogReader,
		text:    text,
		vision:  vision,
		quick:   quick,
	}
}

// Outfit handles POST /recommend/outfit.
func (h *RecommendHandler) Outfit(c *gin.Context) {
	var req models.OutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	products, selected, ok := h.loadSelected(c, req.ProductID)
	if !ok {
		return
	}

	recommendation := h.outfitFor(c.Request.Context(), *selected, products)

	if req.Budget > 0 {
		within := make([]models.Product, 0, len(recommendation.MatchingItems))
		for _, p := range recommendation.MatchingItems {
			if p.Price <= req.Budget {
				within = append(within, p)
			}
		}
		recommendation.MatchingItems = within
	}

	c.JSON(http.StatusOK, recommendation)
}

func (h *RecommendHandler) outfitFor(ctx context.Context, selected models.Product, products []models.Product) models.OutfitRecommendation {
	if h.text == nil {
		return stylist.FallbackRecommendation(selected, products)
	}

	var listing strings.Builder
	for _, p := range products {
		if p.ID == selected.ID {
			continue
		}
		fmt.Fprintf(&listing, "- %s (ID:%d, %s, %.2f)\n", p.Name, p.ID, p.Subcategory, p.Price)
	}

	prompt := fmt.Sprintf(`You are a professional fashion stylist. A user has selected: %s (%s-%s, %.2f)

Based on this selection, recommend matching items from:
%s
Provide JSON:
{"matching_items": [product IDs], "style_score": 0.0-10.0, "reasoning": "explanation"}
`, selected.Name, selected.Category, selected.Subcategory, selected.Price, listing.String())

	response, err := h.text.Generate(ctx, prompt)
	if err != nil {
		log.Printf("Outfit generation failed, using fallback: %v", err)
		return stylist.FallbackRecommendation(selected, products)
	}
	return stylist.ParseOutfit(response, selected, products)
}

// Match handles POST /recommend/match. Purely local: groups catalog items
// from complementary subcategories.
func (h *RecommendHandler) Match(c *gin.Context) {
	var req models.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	products, selected, ok := h.loadSelected(c, req.ProductID)
	if !ok {
		return
	}

	wanted := stylist.MatchComplementsOf(selected.Subcategory)
	matching := make([]models.Product, 0, len(products))
	for _, p := range products {
		if p.ID == selected.ID {
			continue
		}
		if req.Category != "" && p.Category != req.Category {
			continue
		}
		for _, sub := range wanted {
			if p.Subcategory == sub {
				matching = append(matching, p)
				break
			}
		}
	}

	grouped := make(map[string][]models.Product)
	for _, p := range matching {
		grouped[p.Subcategory] = append(grouped[p.Subcategory], p)
	}

	limit := matching
	if len(limit) > 10 {
		limit = limit[:10]
	}

	c.JSON(http.StatusOK, gin.H{
		"selected_product":    selected,
		"matching_categories": grouped,
		"all_matching":        limit,
	})
}

// Personalize handles POST /recommend/personalize.
func (h *RecommendHandler) Personalize(c *gin.Context) {
	var req models.PersonalizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	products, err := h.catalog.ListAll()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	style := req.Style
	if style == "" {
		style = "versatile"
	}
	occasion := req.Occasion
	if occasion == "" {
		occasion = "casual"
	}
	colors := req.Colors
	if len(colors) == 0 {
		colors = []string{"neutral"}
	}
	budget := req.Budget
	if budget == "" {
		budget = "medium"
	}

	prefs := gin.H{
		"style":     style,
		"colors":    colors,
		"budget":    budget,
		"body_type": req.BodyType,
	}

	advice := h.adviceFor(c.Request.Context(), fmt.Sprintf(
		"Fashion advice for %s style, %s occasion. Preferences: colors %s, budget %s.",
		style, occasion, strings.Join(colors, ", "), budget),
		stylist.PersonalizedFallbackAdvice(style, occasion))

	filtered := products
	if req.Style != "" {
		filtered = catalog.FilterByStyle(filtered, req.Style)
	}
	if len(req.Colors) > 0 {
		filtered = filterByColors(filtered, req.Colors)
	}
	if len(filtered) > 12 {
		filtered = filtered[:12]
	}

	c.JSON(http.StatusOK, gin.H{
		"advice":               advice,
		"recommended_products": filtered,
		"user_preferences":     prefs,
	})
}

// adviceFor tries the text generator, then the quick completer, then the
// supplied deterministic fallback.
func (h *RecommendHandler) adviceFor(ctx context.Context, prompt, fallback string) string {
	if h.text != nil {
		if response, err := h.text.Generate(ctx, prompt); err == nil {
			return response
		} else {
			log.Printf("Advice generation failed, trying quick completer: %v", err)
		}
	}
	if h.quick != nil {
		if response, err := h.quick.Complete(ctx, prompt); err == nil {
			return response
		} else {
			log.Printf("Quick advice failed, using fallback: %v", err)
		}
	}
	return fallback
}

// Advice handles POST /recommend/advice: a quick free-form styling
// question.
func (h *RecommendHandler) Advice(c *gin.Context) {
	var req models.AdviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	prompt := fmt.Sprintf(`You are a professional fashion stylist. Provide helpful, concise fashion advice.

User Question: %s

Keep it to 2-3 specific, actionable sentences.`, req.Query)

	advice := stylist.FallbackAdvice()
	if h.quick != nil {
		if response, err := h.quick.Complete(c.Request.Context(), prompt); err == nil {
			advice = response
		} else {
			log.Printf("Quick advice failed, using fallback: %v", err)
		}
	}

	c.JSON(http.StatusOK, gin.H{"advice": advice})
}

type imageAnalysisResponse struct {
	models.ImageAnalysis
	MatchingProducts []models.ProductRef `json:"matching_products"`
}

// AnalyzeImage handles POST /recommend/analyze-image (multipart field
// "image").
func (h *RecommendHandler) AnalyzeImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "An image file is required",
			Details: err.Error(),
		})
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "INVALID_INPUT",
			Message: "Could not read uploaded image",
			Details: err.Error(),
		})
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	analysis := h.analyzeWith(c.Request.Context(), imageData, mimeType)

	products, err := h.catalog.ListAll()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	matching := make([]models.ProductRef, 0, 8)
	for _, p := range products {
		if analysis.Category != "unisex" && p.Category != analysis.Category {
			continue
		}
		matching = append(matching, models.ProductRef{
			ID:       p.ID,
			Name:     p.Name,
			Price:    p.Price,
			ImageURL: p.ImageURL,
		})
		if len(matching) == 8 {
			break
		}
	}

	c.JSON(http.StatusOK, imageAnalysisResponse{
		ImageAnalysis:    analysis,
		MatchingProducts: matching,
	})
}

func (h *RecommendHandler) analyzeWith(ctx context.Context, imageData []byte, mimeType string) models.ImageAnalysis {
	fallback := stylist.FallbackImageAnalysis()
	if h.vision == nil {
		return fallback
	}

	prompt := `Analyze this clothing image. Provide JSON:
{"detected_items": ["items"], "category": "menswear|womenswear|kidswear|unisex", "colors": ["colors"], "style_tags": ["tags"]}`

	response, err := h.vision.GenerateWithImage(ctx, prompt, imageData, mimeType)
	if err != nil {
		log.Printf("Image analysis failed, using fallback: %v", err)
		return fallback
	}

	region, ok := stylist.ExtractJSON(response)
	if !ok {
		return fallback
	}
	var parsed models.ImageAnalysis
	if err := json.Unmarshal([]byte(region), &parsed); err != nil {
		return fallback
	}
	if len(parsed.DetectedItems) == 0 || parsed.Category == "" {
		return fallback
	}
	if parsed.Confidence == 0 {
		parsed.Confidence = 0.5
	}
	if len(parsed.TopPredictions) == 0 {
		for _, item := range parsed.DetectedItems {
			parsed.TopPredictions = append(parsed.TopPredictions, models.Prediction{Label: item, Confidence: parsed.Confidence})
		}
	}
	if len(parsed.StyleTags) == 0 {
		parsed.StyleTags = []string{"versatile"}
	}
	return parsed
}

// Trends handles GET /recommend/trends/:category.
func (h *RecommendHandler) Trends(c *gin.Context) {
	category := strings.ToLower(c.Param("category"))

	products, err := h.catalog.ListAll()
	if err != nil {
		catalogUnavailable(c, err)
		return
	}

	report := stylist.DefaultTrends()
	if h.text != nil {
		prompt := fmt.Sprintf(`Provide current fashion trend insights for %s as JSON:
{"trending_colors": [], "popular_styles": [], "must_have_items": [], "styling_tips": []}`, category)
		if response, err := h.text.Generate(c.Request.Context(), prompt); err == nil {
			report = stylist.ParseTrends(response)
		} else {
			log.Printf("Trend analysis failed, using fallback: %v", err)
		}
	}

	trending := stylist.TopRated(catalog.FilterByCategory(products, category), 8)

	c.JSON(http.StatusOK, gin.H{
		"trends":            report,
		"category":          category,
		"trending_products": trending,
	})
}

// Similar handles GET /recommend/similar/:id.
func (h *RecommendHandler) Similar(c *gin.Context) {
	id, ok := parseProductID(c, c.Param("id"))
	if !ok {
		return
	}

	products, selected, ok := h.loadSelected(c, id)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product":          selected,
		"similar_products": stylist.SimilarByStyle(*selected, products, 6),
	})
}

func (h *RecommendHandler) loadSelected(c *gin.Context, productID int) ([]models.Product, *models.Product, bool) {
	products, err := h.catalog.ListAll()
	if err != nil {
		catalogUnavailable(c, err)
		return nil, nil, false
	}

	for i := range products {
		if products[i].ID == productID {
			return products, &products[i], true
		}
	}

	c.JSON(http.StatusNotFound, models.ErrorResponse{
		Error:   "NOT_FOUND",
		Message: "Product not found",
	})
	return nil, nil, false
}

func filterByColors(products []models.Product, colors []string) []models.Product {
	wanted := make(map[string]struct{}, len(colors))
	for _, c := range colors {
		wanted[strings.ToLower(c)] = struct{}{}
	}

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		for _, pc := range p.Colors {
			if _, ok := wanted[strings.ToLower(pc)]; ok {
				out = append(out, p)
				break
			}
		}
	}
	return out
}
