package routes

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/outingclub/trips-backend/config"
	"github.com/outingclub/trips-backend/internal/gcal"
	"github.com/outingclub/trips-backend/internal/officer"
	"github.com/outingclub/trips-backend/internal/settings"
	"github.com/outingclub/trips-backend/internal/sheetstore"
	"github.com/outingclub/trips-backend/internal/signup"
	"github.com/outingclub/trips-backend/internal/suggestion"
	"github.com/outingclub/trips-backend/internal/trip"
	"github.com/outingclub/trips-backend/middleware"
	"github.com/outingclub/trips-backend/utils"
)

// Setup wires every module and registers the HTTP surface. It returns the
// trip service so the caller can schedule background calendar syncs.
func Setup(r *gin.Engine, cfg *config.Config, store *sheetstore.Client, cal *gcal.Client, mailer *utils.Mailer) *trip.Service {
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 0 {
		corsConfig.AllowOrigins = nil
		corsConfig.AllowAllOrigins = true
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	tz, err := time.LoadLocation(cfg.DisplayTimezone)
	if err != nil {
		log.Printf("⚠️ Unknown DISPLAY_TIMEZONE %q, using UTC", cfg.DisplayTimezone)
		tz = time.UTC
	}

	api := r.Group("/api")
	api.Use(middleware.RateLimiter(cfg))

	// ========== Trips ==========
	tripRepo := trip.NewRepository(store)
	tripSvc := trip.NewService(tripRepo, cal, cfg.OfficerPasscode, cfg.SiteBaseURL, tz, cfg.SyncPastDays, cfg.SyncFutureDays)
	tripHandler := trip.NewHandler(tripSvc)

	api.GET("/trips", tripHandler.ListTrips)
	api.POST("/trips", tripHandler.CreateTrip)
	api.POST("/trips/admin", tripHandler.ListTripsAdmin)
	api.PATCH("/trips/:id", tripHandler.UpdateTrip)
	api.DELETE("/trips/:id", tripHandler.DeleteTrip)
	api.POST("/sync", tripHandler.Sync)

	// ========== Signup Requests ==========
	signupRepo := signup.NewRepository(store)
	signupSvc := signup.NewService(signupRepo, cfg.OfficerPasscode, mailer)
	signupHandler := signup.NewHandler(signupSvc)

	api.POST("/rsvp", signupHandler.Submit)
	api.GET("/trips/:id/requests", signupHandler.ListForTrip)
	api.PATCH("/requests/:id", signupHandler.Review)

	// ========== Suggestions ==========
	suggestionSvc := suggestion.NewService(store, mailer)
	suggestionHandler := suggestion.NewHandler(suggestionSvc)

	api.POST("/suggest", suggestionHandler.Submit)

	// ========== Site Settings ==========
	settingsSvc := settings.NewService(store, cfg.OfficerPasscode)
	settingsHandler := settings.NewHandler(settingsSvc)

	api.GET("/settings", settingsHandler.Get)
	api.POST("/settings", settingsHandler.Update)

	// ========== Officer ==========
	officerHandler := officer.NewHandler(cfg.OfficerPasscode)
	api.POST("/officer/verify", middleware.OfficerVerifyLimiter(cfg), officerHandler.Verify)

	return tripSvc
}
