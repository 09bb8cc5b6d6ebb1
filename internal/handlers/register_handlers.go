package handlers

import (
	"net/http"

	"github.com/SscSPs/wallet_fx_engine/docs"
	portssvc "github.com/SscSPs/wallet_fx_engine/internal/core/ports/services"
	"github.com/SscSPs/wallet_fx_engine/internal/middleware"
	"github.com/SscSPs/wallet_fx_engine/internal/platform/config"
	"github.com/SscSPs/wallet_fx_engine/internal/utils"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/ulule/limiter/v3"
)

// RouteDeps are the optional cross-cutting pieces RegisterRoutes wires in.
type RouteDeps struct {
	Limiter *limiter.Limiter
	Posthog *utils.PosthogClientWrapper
}

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	setupAPIV1Routes(r, cfg, services, deps)

	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
	deps RouteDeps,
) {
	handlers := []gin.HandlerFunc{}
	if deps.Limiter != nil {
		handlers = append(handlers, middleware.RateLimit(deps.Limiter))
	}
	handlers = append(handlers, middleware.AuthMiddleware(cfg.JWTSecret, cfg.JWTIssuer))
	if deps.Posthog != nil {
		handlers = append(handlers, middleware.PosthogMiddleware(deps.Posthog))
	}
	v1 := r.Group("/api/v1", handlers...)

	registerCurrencyRoutes(v1, service.Currency)
	registerCountryRoutes(v1, service.CountryResolver)
	registerExchangeRateRoutes(v1, service.ExchangeRate, service.RateSync, deps.Posthog)
	registerSimulationRoutes(v1, service.Simulator, service.TransferLimit, service.Currency)
	registerTransferRoutes(v1, service.Transfer, deps.Posthog)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
