package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotencyHeader    = "Idempotency-Key"
	idempotencyKeyPrefix = "cabs:idempotency:"
	idempotencyTTL       = 24 * time.Hour
)

// replayedResponse is the stored outcome of a transit or claim submission,
// replayed verbatim when the client retries with the same key.
type replayedResponse struct {
	StatusCode int             `json:"status_code"`
	Body       json.RawMessage `json:"body"`
	Headers    http.Header     `json:"headers"`
}

// responseWriter wraps gin.ResponseWriter to capture the response body.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyMiddleware deduplicates retried submissions. Publishing a
// transit, accepting it or filing a claim must not run twice when a mobile
// client resends after a timeout, so the first response is kept in Redis
// under the client-supplied Idempotency-Key and replayed on retry. The key
// is scoped to method and path; reusing it against another endpoint is a
// fresh request.
func IdempotencyMiddleware(redisClient *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Only mutating methods are deduplicated.
		if c.Request.Method != http.MethodPost && c.Request.Method != http.MethodPut && c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(idempotencyHeader)
		if key == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		cacheKey := idempotencyKeyPrefix + c.Request.Method + ":" + c.Request.URL.Path + ":" + key

		replayed, err := getReplayedResponse(ctx, redisClient, cacheKey)
		if err != nil && err != redis.Nil {
			// Redis unavailable; the request proceeds without deduplication.
			c.Next()
			return
		}

		if replayed != nil {
			for k, v := range replayed.Headers {
				for _, val := range v {
					c.Header(k, val)
				}
			}
			c.Data(replayed.StatusCode, "application/json", replayed.Body)
			c.Abort()
			return
		}

		w := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = w

		c.Next()

		// Server errors are not stored; a retry after a 5xx should re-run.
		if c.Writer.Status() >= 200 && c.Writer.Status() < 500 {
			response := replayedResponse{
				StatusCode: c.Writer.Status(),
				Body:       w.body.Bytes(),
				Headers:    extractResponseHeaders(c),
			}
			_ = setReplayedResponse(ctx, redisClient, cacheKey, &response, idempotencyTTL)
		}
	}
}

func getReplayedResponse(ctx context.Context, client *redis.Client, key string) (*replayedResponse, error) {
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var replayed replayedResponse
	if err := json.Unmarshal(data, &replayed); err != nil {
		return nil, err
	}

	return &replayed, nil
}

func setReplayedResponse(ctx context.Context, client *redis.Client, key string, response *replayedResponse, ttl time.Duration) error {
	data, err := json.Marshal(response)
	if err != nil {
		return err
	}

	return client.Set(ctx, key, data, ttl).Err()
}

// extractResponseHeaders picks the headers worth replaying.
func extractResponseHeaders(c *gin.Context) http.Header {
	headers := make(http.Header)
	if ct := c.Writer.Header().Get("Content-Type"); ct != "" {
		headers.Set("Content-Type", ct)
	}
	return headers
}
