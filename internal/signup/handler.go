package signup

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
// 📝 Submit - POST /api/rsvp
func (h *Handler) Submit(c *gin.Context) {
	var in SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	req, err := h.Service.Submit(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requestId": req.RequestID, "status": req.Status})
}

// ===========================
// 📋 List For Trip - GET /api/trips/:id/requests
func (h *Handler) ListForTrip(c *gin.Context) {
	secret := c.Query("officerSecret")
	if secret == "" {
		var req struct {
			OfficerSecret string `json:"officerSecret"`
		}
		if err := c.ShouldBindJSON(&req); err == nil {
			secret = req.OfficerSecret
		}
	}
	requests, err := h.Service.ListForTrip(c.Request.Context(), c.Param("id"), secret)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requests": requests})
}

// ===========================
// ✅ Review - PATCH /api/requests/:id
func (h *Handler) Review(c *gin.Context) {
	var in ReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	status, err := h.Service.Review(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requestId": c.Param("id"), "status": status})
}

func fail(c *gin.Context, err error) {
	c.JSON(apierr.Status(err), gin.H{"ok": false, "error": err.Error()})
}
