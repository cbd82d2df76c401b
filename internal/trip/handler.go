package trip

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/outingclub/trips-backend/internal/apierr"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

// syncTimeout bounds a background reconciliation pass kicked off after a
// mutating request.
const syncTimeout = 2 * time.Minute

// ===========================
// 📄 List Trips - GET /api/trips
func (h *Handler) ListTrips(c *gin.Context) {
	trips, err := h.Service.ListPublic(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "trips": trips})
}

// ===========================
// 🗂 List Trips Admin - POST /api/trips/admin
func (h *Handler) ListTripsAdmin(c *gin.Context) {
	var req struct {
		OfficerSecret string `json:"officerSecret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	trips, err := h.Service.ListAdmin(c.Request.Context(), req.OfficerSecret)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "trips": trips})
}

// ===========================
// 🎯 Create Trip - POST /api/trips
func (h *Handler) CreateTrip(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	result, err := h.Service.Create(c.Request.Context(), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tripId": result.TripID, "eventId": result.EventID, "requestUrl": result.RequestURL})
	h.kickSync()
}

// ===========================
// 🛠 Update Trip - PATCH /api/trips/:id
func (h *Handler) UpdateTrip(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	result, err := h.Service.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tripId": result.TripID, "eventId": result.EventID, "requestUrl": result.RequestURL})
	h.kickSync()
}

// ===========================
// ❌ Delete Trip - DELETE /api/trips/:id
func (h *Handler) DeleteTrip(c *gin.Context) {
	var req struct {
		OfficerSecret string `json:"officerSecret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	tripID := c.Param("id")
	if err := h.Service.Delete(c.Request.Context(), tripID, req.OfficerSecret); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "tripId": tripID})
	h.kickSync()
}

// ===========================
// 🔄 Sync - POST /api/sync
func (h *Handler) Sync(c *gin.Context) {
	var req struct {
		OfficerSecret string `json:"officerSecret"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid JSON body"})
		return
	}
	if err := h.Service.RunSync(c.Request.Context(), req.OfficerSecret); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// kickSync runs a best-effort reconciliation after a mutating request has
// been answered. Its failure never fails the triggering request.
func (h *Handler) kickSync() {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("⚠️ background sync panicked: %v", r)
			}
		}()
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		if err := h.Service.Reconcile(ctx); err != nil {
			log.Printf("⚠️ background sync failed: %v", err)
		}
	}()
}

func fail(c *gin.Context, err error) {
	c.JSON(apierr.Status(err), gin.H{"ok": false, "error": err.Error()})
}
