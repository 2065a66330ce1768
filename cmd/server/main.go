package main

import (
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/arkapradana/flightdeck/internal/amadeus"
	"github.com/arkapradana/flightdeck/internal/bookmarks"
	"github.com/arkapradana/flightdeck/internal/cache"
	"github.com/arkapradana/flightdeck/internal/citysearch"
	"github.com/arkapradana/flightdeck/internal/engine"
	"github.com/arkapradana/flightdeck/internal/handler"
	"github.com/arkapradana/flightdeck/internal/ratelimit"
)

type Config struct {
	Port         string
	BaseURL      string
	ClientID     string
	ClientSecret string
	CacheEnabled bool
	RedisHost    string
	RedisPort    string
	RedisTTL     time.Duration
	BookmarksKey string
}

func main() {
	cfg := loadConfig()

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	rateLimiter := ratelimit.NewEndpointLimiterWithDefaults()
	rateLimiter.SetEndpointLimit(amadeus.FlightOffersEndpoint, 10, 20)
	rateLimiter.SetEndpointLimit(amadeus.LocationsEndpoint, 10, 20)

	tokens := amadeus.NewTokenManager(cfg.BaseURL, cfg.ClientID, cfg.ClientSecret, nil)
	client := amadeus.NewClient(cfg.BaseURL, tokens, nil, rateLimiter)

	var offerCache cache.Cache
	var bookmarkStore bookmarks.Store
	if cfg.CacheEnabled {
		redisCache, err := cache.NewRedisCache(cache.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			TTL:  cfg.RedisTTL,
		})
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		offerCache = redisCache

		redisStore, err := bookmarks.NewRedisStore(bookmarks.RedisConfig{
			Host: cfg.RedisHost,
			Port: cfg.RedisPort,
			Key:  cfg.BookmarksKey,
		})
		if err != nil {
			log.Fatalf("Failed to open bookmark store: %v", err)
		}
		bookmarkStore = redisStore

		log.Infof("Redis enabled (host: %s:%s, offer TTL: %v)", cfg.RedisHost, cfg.RedisPort, cfg.RedisTTL)
	} else {
		offerCache = cache.NewNoOpCache()
		bookmarkStore = bookmarks.NewMemoryStore()
		log.Info("Redis disabled, offers uncached and bookmarks in-memory")
	}

	eng := engine.New(client, offerCache)
	searcher := citysearch.NewSearcher(client)

	searchHandler := handler.NewSearchHandler(eng)
	locationsHandler := handler.NewLocationsHandler(searcher)
	bookmarksHandler := handler.NewBookmarksHandler(bookmarkStore)

	api := e.Group("/api/v1")
	api.POST("/flights/search", searchHandler.Search)
	api.GET("/locations", locationsHandler.Search)
	api.GET("/bookmarks", bookmarksHandler.List)
	api.POST("/bookmarks", bookmarksHandler.Add)
	api.DELETE("/bookmarks/:id", bookmarksHandler.Remove)
	e.GET("/health", handler.HealthHandler)

	log.Infof("Starting flightdeck server on port %s", cfg.Port)

	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func loadConfig() Config {
	cfg := Config{
		Port:         getEnv("PORT", "8080"),
		BaseURL:      getEnv("AMADEUS_BASE_URL", "https://test.api.amadeus.com"),
		ClientID:     os.Getenv("AMADEUS_CLIENT_ID"),
		ClientSecret: os.Getenv("AMADEUS_CLIENT_SECRET"),
		CacheEnabled: getEnvBool("CACHE_ENABLED", true),
		RedisHost:    getEnv("REDIS_HOST", "localhost"),
		RedisPort:    getEnv("REDIS_PORT", "6379"),
		RedisTTL:     getEnvDuration("REDIS_TTL", 5*time.Minute),
		BookmarksKey: getEnv("BOOKMARKS_KEY", bookmarks.DefaultKey),
	}

	// Missing credentials are a startup-time configuration error, not a
	// per-request one.
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		log.Fatal("AMADEUS_CLIENT_ID and AMADEUS_CLIENT_SECRET must be set")
	}

	return cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
