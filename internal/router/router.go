package router

import (
	"time"

	"unitpos/internal/config"
	"unitpos/internal/handler"
	"unitpos/internal/middleware"
	"unitpos/internal/repository"
	"unitpos/internal/service"
	"unitpos/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(cfg.RateLimitPerMinute, time.Minute))

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	unitRepo := repository.NewUnitRepository(db)
	stockRepo := repository.NewStockRepository(db)
	historyRepo := repository.NewHistoryRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	productSvc := service.NewProductService(productRepo, unitRepo, dispatcher)
	catalogSvc := service.NewCatalogService(unitRepo, productRepo, historyRepo, dispatcher)
	pricingSvc := service.NewPricingService(productRepo, unitRepo, stockRepo, cfg.CurrencyPrefix)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(productSvc, pricingSvc)
	unitsH := handler.NewUnitsHandler(catalogSvc, rdb, cfg.CacheTTL())
	pricingH := handler.NewPricingHandler(catalogSvc, pricingSvc, rdb, cfg.CacheTTL())

	// ── Routes ───────────────────────────────────────────────────────────────
	r.GET("/health", handler.Health(db, rdb))

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Deactivate)
			products.PATCH("/:id/reactivate", productsH.Reactivate)

			products.GET("/:id/units", unitsH.List)
			products.POST("/:id/units", unitsH.Create)

			products.GET("/:id/price", pricingH.Quote)

			products.GET("/:id/stock", productsH.GetStock)
			products.PATCH("/:id/stock", productsH.AdjustStock)
		}

		units := v1.Group("/units")
		{
			units.PUT("/:id", unitsH.Update)
			units.DELETE("/:id", unitsH.Delete)
			units.GET("/:id/price-history", unitsH.PriceHistory)
		}

		v1.POST("/convert", pricingH.Convert)
		v1.POST("/stock/validate", pricingH.ValidateStock)
	}

	return r
}
