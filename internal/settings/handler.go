package settings

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
// ⚙️ Get - GET /api/settings
func (h *Handler) Get(c *gin.Context) {
	parsed, err := h.Service.Get(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": parsed.Settings, "warnings": parsed.Warnings})
}

// ===========================
// ⚙️ Update - POST /api/settings
func (h *Handler) Update(c *gin.Context) {
	var in struct {
		OfficerSecret string            `json:"officerSecret"`
		Settings      map[string]string `json:"settings"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	parsed, err := h.Service.Update(c.Request.Context(), in.OfficerSecret, in.Settings)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "settings": parsed.Settings, "warnings": parsed.Warnings})
}

func fail(c *gin.Context, err error) {
	c.JSON(apierr.Status(err), gin.H{"ok": false, "error": err.Error()})
}
