package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pzf-studio/MAshop-sub000/internal/infrastructure/logger"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/handler"
	"github.com/pzf-studio/MAshop-sub000/internal/interfaces/http/middleware"
)

// AdminHandlers groups the handlers of the admin console API.
type AdminHandlers struct {
	System   *handler.SystemHandler
	Items    *handler.ItemHandler
	Sections *handler.SectionHandler
}

// StorefrontHandlers groups the handlers of the storefront API.
type StorefrontHandlers struct {
	System     *handler.SystemHandler
	Storefront *handler.StorefrontHandler
	Cart       *handler.CartHandler
	Checkout   *handler.CheckoutHandler
}

// NewEngine builds a gin engine with the shared middleware chain.
func NewEngine(log *zap.Logger, corsOrigins []string) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(log))
	engine.Use(logger.Recovery(log))

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowOrigins = corsOrigins
	engine.Use(middleware.CORSWithConfig(corsCfg))
	return engine
}

// SetupAdmin registers the admin console routes.
func SetupAdmin(engine *gin.Engine, h AdminHandlers) {
	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	{
		items := api.Group("/items")
		items.GET("", h.Items.List)
		items.POST("", h.Items.Create)
		items.GET("/:id", h.Items.Get)
		items.PUT("/:id", h.Items.Update)
		items.DELETE("/:id", h.Items.Delete)

		sections := api.Group("/sections")
		sections.GET("", h.Sections.List)
		sections.POST("", h.Sections.Create)
		sections.PUT("/:code", h.Sections.Update)
		sections.DELETE("/:code", h.Sections.Delete)
	}
}

// SetupStorefront registers the storefront routes.
func SetupStorefront(engine *gin.Engine, h StorefrontHandlers) {
	engine.GET("/health", h.System.Health)

	api := engine.Group("/api/v1")
	{
		catalog := api.Group("/catalog")
		catalog.GET("", h.Storefront.View)
		catalog.GET("/items/:id", h.Storefront.Item)
		catalog.GET("/sections/:code/items", h.Storefront.Section)
		catalog.GET("/featured", h.Storefront.Featured)
		catalog.GET("/stats", h.Storefront.Stats)

		cart := api.Group("/cart")
		cart.GET("", h.Cart.Get)
		cart.POST("/items", h.Cart.Add)
		cart.PUT("/items/:id", h.Cart.SetQuantity)
		cart.DELETE("/items/:id", h.Cart.Remove)

		checkout := api.Group("/checkout")
		checkout.POST("", h.Checkout.Submit)
		checkout.POST("/fallback", h.Checkout.ConfirmFallback)
	}
}
