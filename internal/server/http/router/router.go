package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/gearmart/checkout/internal/server/http/handlers"
	"github.com/gearmart/checkout/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.CheckoutFacade, tokens middleware.TokenParser, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	cartHandler := handlers.NewCartHandler(facade)
	balanceHandler := handlers.NewBalanceHandler(facade)
	streakHandler := handlers.NewStreakHandler(facade)
	settlementHandler := handlers.NewSettlementHandler(facade)

	api := engine.Group("/api")
	user := api.Group("/user")
	user.Use(middleware.AuthRequired(tokens))
	user.GET("/cart", cartHandler.Price)
	user.POST("/cart", cartHandler.Add)
	user.DELETE("/cart", cartHandler.Clear)
	user.PATCH("/cart/items/:productID", cartHandler.UpdateQuantity)
	user.DELETE("/cart/items/:productID", cartHandler.Remove)
	user.POST("/cart/settlement", settlementHandler.Create)
	user.GET("/balance", balanceHandler.Summary)
	user.GET("/streak", streakHandler.State)
	user.POST("/streak/claim", streakHandler.Claim)

	return engine
}
