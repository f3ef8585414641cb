package main

import (
	"log"
	"time"

	"stylesai-service/cart"
	"stylesai-service/catalog"
	"stylesai-service/clients"
	"stylesai-service/config"
	"stylesai-service/coupons"
	"stylesai-service/handlers"
	"stylesai-service/rabbitmq"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.LoadConfig()

	log.Printf("Starting StyleSai service on port %s", cfg.Port)

	// Set Gin mode
	if cfg.LogLevel == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	catalogReader := catalog.NewReader(cfg.ProductsFile)
	cartStore := cart.NewStore(catalogReader)
	couponLedger := coupons.NewLedger()

	aiTimeout := time.Duration(cfg.AITimeoutSeconds) * time.Second
	geminiClient := clients.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiBaseURL, cfg.GeminiModel, aiTimeout)
	groqClient := clients.NewGroqClient(cfg.GroqAPIKey, cfg.GroqBaseURL, cfg.GroqModel, aiTimeout)

	// The order events broker is a side channel; run without it when
	// unreachable instead of refusing to start.
	var publisher handlers.OrderPublisher
	channelPool, err := rabbitmq.NewChannelPool(cfg.RabbitMQURL, cfg.RabbitMQQueue, cfg.ChannelPoolSize)
	if err != nil {
		log.Printf("RabbitMQ unavailable, order events disabled: %v", err)
	} else {
		defer channelPool.Close()
		publisher = rabbitmq.NewPublisher(channelPool, cfg.RabbitMQQueue)
	}

	productHandler := handlers.NewProductHandler(catalogReader)
	cartHandler := handlers.NewCartHandler(cartStore, couponLedger)
	checkoutHandler := handlers.NewCheckoutHandler(cartStore, couponLedger, publisher)
	recommendHandler := handlers.NewRecommendHandler(catalogReader, geminiClient, geminiClient, groqClient)

	router := gin.Default()

	// Product routes
	router.GET("/products", productHandler.ListProducts)
	router.GET("/products/categories", productHandler.GetCategories)
	router.GET("/products/:id", productHandler.GetProduct)
	router.GET("/products/category/:category", productHandler.GetByCategory)
	router.GET("/products/subcategory/:subcategory", productHandler.GetBySubcategory)

	// Cart routes
	router.GET("/cart", cartHandler.GetCart)
	router.POST("/cart", cartHandler.AddItem)
	router.PUT("/cart/:productId", cartHandler.UpdateItem)
	router.DELETE("/cart/:productId", cartHandler.RemoveItem)
	router.DELETE("/cart", cartHandler.ClearCart)
	router.POST("/cart/checkout", checkoutHandler.Checkout)
	router.GET("/cart/coupons", cartHandler.ListCoupons)
	router.POST("/cart/apply-coupon", cartHandler.ApplyCoupon)

	// Recommendation routes
	router.POST("/recommend/outfit", recommendHandler.Outfit)
	router.POST("/recommend/match", recommendHandler.Match)
	router.POST("/recommend/personalize", recommendHandler.Personalize)
	router.POST("/recommend/advice", recommendHandler.Advice)
	router.POST("/recommend/analyze-image", recommendHandler.AnalyzeImage)
	router.GET("/recommend/trends/:category", recommendHandler.Trends)
	router.GET("/recommend/similar/:id", recommendHandler.Similar)

	// Service info
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    "StyleSai API",
			"version": "1.0.0",
			"endpoints": gin.H{
				"products":        "/products",
				"cart":            "/cart",
				"recommendations": "/recommend",
			},
		})
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	log.Fatal(router.Run(":" + cfg.Port))
}
