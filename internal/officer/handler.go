package officer

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Passcode string
}

func NewHandler(passcode string) *Handler {
	return &Handler{Passcode: passcode}
}

// ===========================
// 🔑 Verify Officer - POST /api/officer/verify
func (h *Handler) Verify(c *gin.Context) {
	var req struct {
		OfficerSecret string `json:"officerSecret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	if !Verify(req.OfficerSecret, h.Passcode) {
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "error": "not authorized (officer passcode)"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
