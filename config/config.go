package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// ✅ Google APIs
	SpreadsheetID   string
	CalendarID      string
	CredentialsPath string

	// ✅ Officer auth + site
	OfficerPasscode string
	SiteBaseURL     string
	NotifyEmail     string

	// ✅ Display timezone for officer-entered dates/times (IANA name)
	DisplayTimezone string

	// ✅ Calendar sync
	SyncCron       string
	SyncPastDays   int
	SyncFutureDays int

	// ✅ Redis Config (optional, backs the rate limiter)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ SMTP Config
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string

	AllowedOrigins []string
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	cfg := &Config{
		Port: getEnv("PORT", "8080"),

		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CalendarID:      os.Getenv("CALENDAR_ID"),
		CredentialsPath: os.Getenv("GOOGLE_CREDENTIALS_PATH"),

		OfficerPasscode: os.Getenv("OFFICER_PASSCODE"),
		SiteBaseURL:     strings.TrimRight(os.Getenv("SITE_BASE_URL"), "/"),
		NotifyEmail:     os.Getenv("NOTIFY_EMAIL"),

		DisplayTimezone: getEnv("DISPLAY_TIMEZONE", "America/New_York"),

		SyncCron:       getEnv("SYNC_CRON", "@hourly"),
		SyncPastDays:   getEnvInt("SYNC_PAST_DAYS", 30),
		SyncFutureDays: getEnvInt("SYNC_FUTURE_DAYS", 365),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      os.Getenv("SMTP_PORT"),
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  os.Getenv("SMTP_FROM_NAME"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	} else if cfg.SiteBaseURL != "" {
		cfg.AllowedOrigins = []string{cfg.SiteBaseURL}
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️ Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
