package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
	"github.com/pharmacare/pharmacare-api/internal/presentation/http/dto/response"
)

const idempotencyKeyTTL = 24 * time.Hour

// IdempotencyConfig holds configuration for the idempotency middleware.
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
}

// bodyCapturingWriter tees the response body so it can be stored and
// replayed for a repeated key.
type bodyCapturingWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCapturingWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// IdempotencyRequired makes a POST route safe to retry: the Idempotency-Key
// header is mandatory, and a repeated key within the TTL replays the stored
// response instead of re-running the handler. Used on checkout so a client
// retry cannot create a duplicate sale.
func IdempotencyRequired(config IdempotencyConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader("Idempotency-Key")
		if key == "" {
			response.BadRequest(c, "Idempotency-Key header is required for this request")
			c.Abort()
			return
		}

		userIDVal, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}
		userID, ok := userIDVal.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "Invalid user ID")
			c.Abort()
			return
		}

		// Keys are scoped per user, so one operator's key cannot replay
		// another's response.
		existing, err := config.Repo.GetByKey(c.Request.Context(), key, userID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		if existing != nil && !existing.IsExpired() {
			c.Header("X-Idempotency-Replayed", "true")
			replayResponse(c, existing)
			c.Abort()
			return
		}

		writer := &bodyCapturingWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = writer

		c.Next()

		// Only successful responses are worth replaying; a failed attempt
		// should be allowed to run again with the same key.
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		_ = config.Repo.Create(c.Request.Context(), &entity.IdempotencyKey{
			Key:          key,
			UserID:       userID,
			Endpoint:     c.Request.Method + " " + c.FullPath(),
			ResponseCode: status,
			ResponseBody: writer.body.String(),
			ExpiresAt:    time.Now().Add(idempotencyKeyTTL),
		})
	}
}

func replayResponse(c *gin.Context, stored *entity.IdempotencyKey) {
	var cached map[string]interface{}
	if err := json.Unmarshal([]byte(stored.ResponseBody), &cached); err == nil {
		c.JSON(stored.ResponseCode, cached)
		return
	}
	c.Data(stored.ResponseCode, "application/json", []byte(stored.ResponseBody))
}
