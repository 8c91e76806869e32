package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"cabs/internal/handler"
	"cabs/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	TransitHandler *handler.TransitHandler
	ClaimHandler   *handler.ClaimHandler
	DriverHandler  *handler.DriverHandler
	CarTypeHandler *handler.CarTypeHandler
	ClientHandler  *handler.ClientHandler
	RedisClient    *redis.Client
	NewRelicApp    *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	router.Use(middleware.IdempotencyMiddleware(deps.RedisClient))

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Client routes.
		clients := v1.Group("/clients")
		{
			clients.POST("/register", deps.ClientHandler.Register)
			clients.GET("/:id", deps.ClientHandler.GetClient)
		}

		// Transit routes.
		transits := v1.Group("/transits")
		{
			transits.POST("", deps.TransitHandler.CreateTransit)
			transits.GET("/:id", deps.TransitHandler.GetTransit)
			transits.POST("/:id/change-from", deps.TransitHandler.ChangeAddressFrom)
			transits.POST("/:id/change-to", deps.TransitHandler.ChangeAddressTo)
			transits.POST("/:id/cancel", deps.TransitHandler.CancelTransit)
			transits.POST("/:id/publish", deps.TransitHandler.PublishTransit)
			transits.POST("/:id/accept", deps.TransitHandler.AcceptTransit)
			transits.POST("/:id/start", deps.TransitHandler.StartTransit)
			transits.POST("/:id/reject", deps.TransitHandler.RejectTransit)
			transits.POST("/:id/complete", deps.TransitHandler.CompleteTransit)
		}

		// Claim routes.
		claims := v1.Group("/claims")
		{
			claims.POST("", deps.ClaimHandler.CreateClaim)
			claims.POST("/:id/mark-as-new", deps.ClaimHandler.MarkAsNew)
			claims.POST("/:id/resolve", deps.ClaimHandler.Resolve)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("/register", deps.DriverHandler.Register)
			drivers.POST("/:id/status", deps.DriverHandler.ChangeStatus)
			drivers.POST("/:id/license", deps.DriverHandler.ChangeLicense)
			drivers.POST("/:id/position", deps.DriverHandler.UpdatePosition)
			drivers.POST("/:id/session/start", deps.DriverHandler.StartSession)
			drivers.POST("/:id/session/end", deps.DriverHandler.EndSession)
			drivers.PUT("/:id/fee", deps.DriverHandler.SetFee)
			drivers.GET("/:id/payments/monthly", deps.DriverHandler.GetMonthlyPayment)
			drivers.GET("/:id/payments/yearly", deps.DriverHandler.GetYearlyPayment)
		}

		// Car type routes.
		carTypes := v1.Group("/car-types")
		{
			carTypes.POST("", deps.CarTypeHandler.Create)
			carTypes.GET("/active", deps.CarTypeHandler.GetActiveClasses)
			carTypes.POST("/:class/register-car", deps.CarTypeHandler.RegisterCar)
			carTypes.POST("/:class/unregister-car", deps.CarTypeHandler.UnregisterCar)
			carTypes.POST("/:class/activate", deps.CarTypeHandler.Activate)
			carTypes.POST("/:class/deactivate", deps.CarTypeHandler.Deactivate)
		}
	}

	return router
}
