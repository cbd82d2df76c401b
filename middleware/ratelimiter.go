package middleware

import (
	"log"
	"time"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	ginlimiter "github.com/ulule/limiter/v3/drivers/middleware/gin"
	memory "github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"

	"github.com/outingclub/trips-backend/config"
)

// RateLimiter limits requests per client IP. With Redis configured the limit
// is shared across instances, otherwise an in-memory store is used.
func RateLimiter(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  100,
	}
	return ginlimiter.NewMiddleware(limiter.New(newStore(cfg, "ratelimit"), rate))
}

// OfficerVerifyLimiter is a tighter limit for the passcode check endpoint so
// the shared secret cannot be brute forced.
func OfficerVerifyLimiter(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: 1 * time.Minute,
		Limit:  10,
	}
	return ginlimiter.NewMiddleware(limiter.New(newStore(cfg, "ratelimit_verify"), rate))
}

func newStore(cfg *config.Config, prefix string) limiter.Store {
	if cfg.RedisAddr == "" {
		return memory.NewStore()
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	store, err := sredis.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix: prefix,
	})
	if err != nil {
		log.Printf("⚠️ Redis rate limit store unavailable, falling back to memory: %v", err)
		return memory.NewStore()
	}
	return store
}
