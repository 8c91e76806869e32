package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"cabs/internal/app"
	"cabs/internal/config"
	"cabs/internal/handler"
	internalRedis "cabs/internal/redis"
	"cabs/internal/repository/postgres"
	"cabs/internal/service"
)

func main() {
	// Load configuration.
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic FIRST (before database so we can instrument DB).
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s (with DB instrumentation)", cfg.NewRelic.AppName)
		}
	}

	// Initialize database with New Relic instrumentation.
	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	// Initialize Redis with New Relic instrumentation.
	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	// Wire dependencies.
	server := wireServer(db, redisClient, nrApp, cfg)

	// Start server in goroutine.
	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Initialize Redis stores.
	locationStore := internalRedis.NewLocationStore(redisClient)
	lockStore := internalRedis.NewLockStore(redisClient)
	cacheStore := internalRedis.NewCacheStore(redisClient)

	// Initialize repositories.
	transitRepo := postgres.NewTransitRepository(db)
	claimRepo := postgres.NewClaimRepository(db)
	resolverRepo := postgres.NewClaimResolverRepository(db)
	driverRepo := postgres.NewDriverRepository(db)
	clientRepo := postgres.NewClientRepository(db)
	feeRepo := postgres.NewDriverFeeRepository(db)
	carTypeRepo := postgres.NewCarTypeRepository(db)
	positionRepo := postgres.NewDriverPositionRepository(db)
	sessionRepo := postgres.NewDriverSessionRepository(db)
	txProvider := postgres.NewTxProvider(db)

	// Initialize the geocoder. Without an API key addresses resolve locally.
	var geocoder service.Geocoder
	if cfg.Geocoding.APIKey != "" {
		googleGeocoder, err := service.NewGoogleGeocoder(cfg.Geocoding.APIKey)
		if err != nil {
			log.Fatalf("failed to initialize geocoder: %v", err)
		}
		geocoder = googleGeocoder
	} else {
		geocoder = service.NewLocalGeocoder()
	}

	// Initialize services.
	driverNotifications := service.NewLogDriverNotificationService()
	clientNotifications := service.NewLogClientNotificationService()
	awards := service.NewLogAwardsService()
	invoices := service.NewLogInvoiceGenerator()
	carTypeService := service.NewCarTypeService(carTypeRepo, cacheStore, cfg.CarTypes.MinNoOfCarsForEcoClass)
	feeService := service.NewDriverFeeService(feeRepo, transitRepo)
	driverService := service.NewDriverService(driverRepo, positionRepo, sessionRepo, locationStore, carTypeService)
	dispatcher := service.NewDispatcher(transitRepo, driverRepo, positionRepo, sessionRepo, carTypeService, geocoder, driverNotifications, cfg.Dispatch.RetryDelay)
	transitService := service.NewTransitService(transitRepo, clientRepo, driverRepo, txProvider, lockStore, dispatcher, geocoder, feeService, awards, invoices, driverNotifications)
	claimService := service.NewClaimService(claimRepo, resolverRepo, transitRepo, clientRepo, lockStore, awards, clientNotifications, driverNotifications,
		cfg.Claims.AutomaticRefundForVipThreshold, cfg.Claims.NoOfTransitsForClaimAutomaticRefund)

	// Initialize handlers.
	transitHandler := handler.NewTransitHandler(transitService)
	claimHandler := handler.NewClaimHandler(claimService)
	driverHandler := handler.NewDriverHandler(driverService, feeService)
	carTypeHandler := handler.NewCarTypeHandler(carTypeService)
	clientHandler := handler.NewClientHandler(clientRepo)

	// Create router.
	router := app.NewRouter(app.RouterDeps{
		TransitHandler: transitHandler,
		ClaimHandler:   claimHandler,
		DriverHandler:  driverHandler,
		CarTypeHandler: carTypeHandler,
		ClientHandler:  clientHandler,
		RedisClient:    redisClient,
		NewRelicApp:    nrApp,
	})

	// Create HTTP server.
	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}
