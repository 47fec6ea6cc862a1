package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/accountd/accountd/handlers"
	"github.com/accountd/accountd/internal/config"
	"github.com/accountd/accountd/internal/database"
	"github.com/accountd/accountd/internal/hashing"
	"github.com/accountd/accountd/internal/tokens"
	"github.com/accountd/accountd/internal/users"
	"github.com/accountd/accountd/pkg/logger"
	"github.com/accountd/accountd/pkg/metrics"
	"github.com/accountd/accountd/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWT.Secret == "" {
		logger.Fatalf("JWT_SECRET is required")
	}
	logger.Infof("config loaded: mongo=%v redis=%v jwt_ttl=%v", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.JWT.TTL)

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate-limiter can use it when configured
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Connect to MongoDB with retry/backoff to tolerate startup races. Fall
	// back to the in-memory store when Mongo is not configured or unreachable
	// (useful for local development; data does not survive restarts).
	ctx := context.Background()
	var repo users.UserRepository
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Fatalf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
		}
		defer func() { _ = mongoClient.Disconnect(ctx) }()

		col := mongoClient.Database(cfg.MongoDB.Database).Collection("users")
		if err := database.EnsureUserIndexes(ctx, col); err != nil {
			logger.Fatalf("failed to ensure indexes: %v", err)
		}
		repo = users.NewMongoUserRepository(col)
	} else {
		logger.Warnf("MONGODB_URI not set — using in-memory store")
		repo = users.NewMemoryUserRepository()
	}

	hasher := hashing.NewBcryptHasher(cfg.Hashing.BcryptCost)
	issuer := tokens.NewIssuer(cfg.JWT.Secret, cfg.JWT.TTL)
	svc := users.NewService(repo, hasher, issuer)

	// Public credential endpoints
	h := handlers.NewAuthHandler(svc)
	h.Register(r.Group("/"))
	r.GET("/me", middleware.AuthMiddleware(issuer), h.Me)

	// Admin surface: deletion and listing, deliberately left unauthenticated
	// for compatibility with existing clients
	handlers.NewAdminHandler(svc).Register(r)

	handlers.RegisterSwagger(r)

	// Basic health endpoint
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness endpoint — return 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		if mongoClient != nil {
			deps["storage"] = mongoClient.Ping(c.Request.Context(), nil) == nil
		} else {
			// memory store is always "ready"
			deps["storage"] = true
		}
		if !deps["storage"] {
			ready = false
		}

		if cfg.Redis.Host != "" && cfg.RateLimit.UseRedis {
			deps["redis"] = redisClient != nil
			if !deps["redis"] {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": fmt.Sprintf("%s", time.Since(startTime))})
	})

	// Expose Prometheus metrics
	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting accountd on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
