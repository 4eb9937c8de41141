package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HandleHealth reports whether the task store is reachable.
func (h *handlerImpl) HandleHealth(c *gin.Context) {
	err := h.tasks.Ping(c)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("store ping failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
