package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/outingclub/trips-backend/config"
	"github.com/outingclub/trips-backend/internal/gcal"
	"github.com/outingclub/trips-backend/internal/sheetstore"
	"github.com/outingclub/trips-backend/routes"
	"github.com/outingclub/trips-backend/utils"
)

const syncTimeout = 5 * time.Minute

func main() {
	cfg := config.Load()
	if cfg.SpreadsheetID == "" {
		log.Fatal("❌ SPREADSHEET_ID is required")
	}
	if cfg.CalendarID == "" {
		log.Fatal("❌ CALENDAR_ID is required")
	}

	ctx := context.Background()

	// Init Google API clients
	log.Println("🔄 Connecting to Google APIs...")
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}
	sheetsSvc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		log.Fatalf("❌ Sheets client init failed: %v", err)
	}
	calendarSvc, err := calendar.NewService(ctx, opts...)
	if err != nil {
		log.Fatalf("❌ Calendar client init failed: %v", err)
	}
	log.Println("✅ Google API clients ready")

	store := sheetstore.NewClient(sheetsSvc, cfg.SpreadsheetID)
	cal := gcal.NewClient(calendarSvc, cfg.CalendarID)
	mailer := utils.NewMailer(cfg)

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	tripSvc := routes.Setup(router, cfg, store, cal, mailer)

	// Scheduled calendar reconciliation
	scheduler := cron.New()
	if _, err := scheduler.AddFunc(cfg.SyncCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
		defer cancel()
		if err := tripSvc.Reconcile(ctx); err != nil {
			log.Printf("⚠️ Scheduled sync failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("❌ Invalid SYNC_CRON %q: %v", cfg.SyncCron, err)
	}
	scheduler.Start()
	defer scheduler.Stop()
	log.Printf("🔄 Calendar sync scheduled: %s", cfg.SyncCron)

	log.Printf("🚀 Server starting on port %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
