package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	NewRelic  NewRelicConfig
	Claims    ClaimsConfig
	Dispatch  DispatchConfig
	CarTypes  CarTypesConfig
	Geocoding GeocodingConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// ClaimsConfig holds the claim resolution thresholds.
type ClaimsConfig struct {
	// AutomaticRefundForVipThreshold is a minor-unit price below which
	// eligible claims are refunded without asking anyone.
	AutomaticRefundForVipThreshold int

	// NoOfTransitsForClaimAutomaticRefund is the ride count from which a
	// non-VIP client counts as loyal.
	NoOfTransitsForClaimAutomaticRefund int
}

// DispatchConfig holds the driver-search loop configuration.
type DispatchConfig struct {
	// RetryDelay is the pause between search rounds that found no drivers.
	RetryDelay time.Duration
}

// CarTypesConfig holds fleet activation thresholds.
type CarTypesConfig struct {
	MinNoOfCarsForEcoClass int
}

// GeocodingConfig holds the Google Maps geocoding configuration.
// With an empty APIKey the local deterministic geocoder is used instead.
type GeocodingConfig struct {
	APIKey string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "cabs"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "cabs"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Claims: ClaimsConfig{
			AutomaticRefundForVipThreshold:      getIntEnv("CLAIMS_VIP_REFUND_THRESHOLD", 4000),
			NoOfTransitsForClaimAutomaticRefund: getIntEnv("CLAIMS_LOYAL_TRANSITS_THRESHOLD", 10),
		},
		Dispatch: DispatchConfig{
			RetryDelay: getDurationEnv("DISPATCH_RETRY_DELAY", 50*time.Millisecond),
		},
		CarTypes: CarTypesConfig{
			MinNoOfCarsForEcoClass: getIntEnv("CAR_TYPES_MIN_CARS_ECO", 5),
		},
		Geocoding: GeocodingConfig{
			APIKey: getEnv("GOOGLE_MAPS_API_KEY", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
