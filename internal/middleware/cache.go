package middleware

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// CacheConfig configures the cache middleware
type CacheConfig struct {
	TTL       time.Duration
	KeyPrefix string
}

// DefaultCacheConfig returns default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TTL:       5 * time.Minute,
		KeyPrefix: "kanji:cache:",
	}
}

type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        string `json:"body"`
}

// Cache caches successful GET responses in Redis. Only use it on routes
// whose response does not depend on the caller.
func Cache(redisClient *redis.Client, cfg CacheConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || redisClient == nil || cfg.TTL <= 0 {
			c.Next()
			return
		}

		key := cfg.KeyPrefix + cacheKey(c.Request.URL.Path, c.Request.URL.RawQuery)

		ctx := c.Request.Context()
		if val, err := redisClient.Get(ctx, key).Bytes(); err == nil {
			var cached cachedResponse
			if json.Unmarshal(val, &cached) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(cached.Status, cached.ContentType, []byte(cached.Body))
				c.Abort()
				return
			}
		}

		// headers must be set before the handler writes the body
		c.Header("X-Cache", "MISS")
		w := &responseWriter{ResponseWriter: c.Writer, body: make([]byte, 0, 1024)}
		c.Writer = w

		c.Next()

		if w.Status() >= 200 && w.Status() < 300 {
			data, err := json.Marshal(cachedResponse{
				Status:      w.Status(),
				ContentType: w.Header().Get("Content-Type"),
				Body:        string(w.body),
			})
			if err != nil {
				return
			}
			redisClient.Set(ctx, key, data, cfg.TTL)
		}
	}
}

func cacheKey(path, query string) string {
	raw := path
	if query != "" {
		raw += "?" + query
	}
	return fmt.Sprintf("%x", sha256.Sum256([]byte(raw)))
}

// responseWriter captures the response body
type responseWriter struct {
	gin.ResponseWriter
	body []byte
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body = append(w.body, b...)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body = append(w.body, s...)
	return w.ResponseWriter.WriteString(s)
}
