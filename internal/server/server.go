// Package server assembles the gin engine: middleware, the token guard,
// and the sync routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glad47/pos-sync-service/internal/auth"
	"github.com/glad47/pos-sync-service/internal/loyalty"
	"github.com/glad47/pos-sync-service/internal/products"
	"github.com/glad47/pos-sync-service/internal/promotions"
)

type Handlers struct {
	Products   *products.Handler
	Loyalty    *loyalty.Handler
	Promotions *promotions.Handler
}

// New builds the router. Every /api route sits behind the token guard;
// the guard runs before any catalog query.
func New(appEnv string, tokens auth.TokenValidator, h Handlers) *gin.Engine {
	if appEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), Logging())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.Use(auth.RequireToken(tokens))
	{
		// POS clients call these with either verb
		api.GET("/products/all", h.Products.All)
		api.POST("/products/all", h.Products.All)
		api.POST("/products/changed", h.Products.Changed)

		api.GET("/loyalty/all", h.Loyalty.All)
		api.POST("/loyalty/all", h.Loyalty.All)
		api.POST("/loyalty/changed", h.Loyalty.Changed)

		api.GET("/promotions/all", h.Promotions.All)
		api.POST("/promotions/all", h.Promotions.All)
	}

	return r
}
