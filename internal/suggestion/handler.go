package suggestion

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/outingclub/trips-backend/internal/apierr"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// 💡 Submit Suggestion - POST /api/suggest
func (h *Handler) Submit(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	if err := h.Service.Submit(c.Request.Context(), in); err != nil {
		c.JSON(apierr.Status(err), gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
