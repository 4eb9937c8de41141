package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDCtxKey = "request_id"
	requestIDHeader = "X-Request-Id"
)

func (h *handlerImpl) HandleRequestIDMiddleware(c *gin.Context) {
	requestID := c.GetHeader(requestIDHeader)
	if requestID == "" {
		requestUUID, err := uuid.NewV7()
		if err != nil {
			h.logger.Error().
				Err(err).
				Msg("failed to generate request id")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		requestID = requestUUID.String()
	}

	c.Set(requestIDCtxKey, requestID)
	c.Header(requestIDHeader, requestID)
	c.Next()
}

func (h *handlerImpl) HandleLoggingMiddleware(c *gin.Context) {
	start := time.Now()
	c.Next()

	requestID, _ := getStringFromContext(c, requestIDCtxKey)
	h.logger.Info().
		Str("request_id", requestID).
		Str("method", c.Request.Method).
		Str("path", c.Request.URL.Path).
		Int("status", c.Writer.Status()).
		Dur("duration", time.Since(start)).
		Msg("handled request")
}

func getStringFromContext(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		return "", false
	}
	str, ok := value.(string)
	return str, ok
}
