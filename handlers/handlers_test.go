package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"stylesai-service/cart"
	"stylesai-service/catalog"
	"stylesai-service/coupons"
	"stylesai-service/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testCatalog = `{
  "products": [
    {"id": 1, "name": "Oxford Shirt", "description": "Crisp cotton shirt", "price": 1299, "category": "menswear", "subcategory": "shirts", "brand": "Harbor Lane", "style_tags": ["classic", "formal"], "colors": ["White", "Blue"], "rating": 4.5, "discount": 10},
    {"id": 2, "name": "Chinos", "description": "Slim fit chinos", "price": 1599, "category": "menswear", "subcategory": "pants", "brand": "Harbor Lane", "style_tags": ["classic", "casual"], "colors": ["Beige"], "rating": 4.3, "discount": 0},
    {"id": 3, "name": "Derby Shoes", "description": "Polished leather shoes", "price": 2999, "category": "menswear", "subcategory": "footwear", "brand": "Stride", "style_tags": ["formal"], "colors": ["Brown"], "rating": 4.7, "discount": 15},
    {"id": 7, "name": "Denim Jacket", "description": "Mid-wash trucker jacket", "price": 500, "category": "menswear", "subcategory": "jackets", "brand": "Harbor Lane", "style_tags": ["casual"], "colors": ["Blue"], "rating": 4.1, "discount": 10},
    {"id": 8, "name": "Dino Tee", "description": "Soft cotton tee", "price": 499, "category": "kidswear", "subcategory": "boys", "brand": "Little Wonders", "style_tags": ["casual"], "colors": ["Green"], "rating": 4.8, "discount": 0},
    {"id": 9, "name": "Party Dress", "description": "Layered tulle dress", "price": 1000, "category": "kidswear", "subcategory": "girls", "brand": "Little Wonders", "style_tags": ["elegant"], "colors": ["Pink"], "rating": 4.5, "discount": 100}
  ]
}`

type testEnv struct {
	router      *gin.Engine
	store       *cart.Store
	reader      *catalog.Reader
	ledger      *coupons.Ledger
	catalogPath string
	published   []models.Order
}

func (e *testEnv) PublishOrder(order models.Order) error {
	e.published = append(e.published, order)
	return nil
}

// newTestEnv wires the full route table against a temp catalog, no broker
// and failing AI generators.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(testCatalog), 0o644))

	env := &testEnv{
		reader:      catalog.NewReader(path),
		ledger:      coupons.NewLedger(),
		catalogPath: path,
	}
	env.store = cart.NewStore(env.reader)
	env.router = newRouter(env, failingGenerator{}, failingGenerator{}, failingGenerator{})
	return env
}

func newRouter(env *testEnv, text TextGenerator, vision VisionGenerator, quick Completer) *gin.Engine {
	productHandler := NewProductHandler(env.reader)
	cartHandler := NewCartHandler(env.store, env.ledger)
	checkoutHandler := NewCheckoutHandler(env.store, env.ledger, env)
	recommendHandler := NewRecommendHandler(env.reader, text, vision, quick)

	router := gin.New()
	router.GET("/products", productHandler.ListProducts)
	router.GET("/products/categories", productHandler.GetCategories)
	router.GET("/products/:id", productHandler.GetProduct)
	router.GET("/products/category/:category", productHandler.GetByCategory)
	router.GET("/products/subcategory/:subcategory", productHandler.GetBySubcategory)
	router.GET("/cart", cartHandler.GetCart)
	router.POST("/cart", cartHandler.AddItem)
	router.PUT("/cart/:productId", cartHandler.UpdateItem)
	router.DELETE("/cart/:productId", cartHandler.RemoveItem)
	router.DELETE("/cart", cartHandler.ClearCart)
	router.POST("/cart/checkout", checkoutHandler.Checkout)
	router.GET("/cart/coupons", cartHandler.ListCoupons)
	router.POST("/cart/apply-coupon", cartHandler.ApplyCoupon)
	router.POST("/recommend/outfit", recommendHandler.Outfit)
	router.POST("/recommend/match", recommendHandler.Match)
	router.POST("/recommend/personalize", recommendHandler.Personalize)
	router.POST("/recommend/advice", recommendHandler.Advice)
	router.POST("/recommend/analyze-image", recommendHandler.AnalyzeImage)
	router.GET("/recommend/trends/:category", recommendHandler.Trends)
	router.GET("/recommend/similar/:id", recommendHandler.Similar)
	return router
}

type failingGenerator struct{}

func (failingGenerator) Generate(context.Context, string) (string, error) {
	return "", errExternal
}

func (failingGenerator) GenerateWithImage(context.Context, string, []byte, string) (string, error) {
	return "", errExternal
}

func (failingGenerator) Complete(context.Context, string) (string, error) {
	return "", errExternal
}

type cannedGenerator struct {
	text string
}

func (g cannedGenerator) Generate(context.Context, string) (string, error) {
	return g.text, nil
}

func (g cannedGenerator) GenerateWithImage(context.Context, string, []byte, string) (string, error) {
	return g.text, nil
}

func (g cannedGenerator) Complete(context.Context, string) (string, error) {
	return g.text, nil
}

var errExternal = &externalError{}

type externalError struct{}

func (*externalError) Error() string { return "external service unavailable" }

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
