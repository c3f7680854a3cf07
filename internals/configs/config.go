package configs

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"
)

var (
	JWTSecret        string
	JWTRefreshSecret string

	// Midtrans (billing provider)
	MidtransServerKey string
	MidtransUseProd   bool

	// SendGrid (transactional email)
	SendgridAPIKey string
	MailFromName   string
	MailFromEmail  string

	// Web Push (VAPID)
	VapidPublicKey  string
	VapidPrivateKey string
	VapidSubscriber string

	FrontendBaseURL string
)

/* =======================
   ENV LOADER
======================= */

func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("[WARN] .env tidak ditemukan, pakai ENV sistem")
		}
	}

	JWTSecret = GetEnv("JWT_SECRET")
	JWTRefreshSecret = GetEnv("JWT_REFRESH_SECRET")

	MidtransServerKey = GetEnv("MIDTRANS_SERVER_KEY")
	MidtransUseProd = GetEnv("MIDTRANS_USE_PROD") == "true"

	SendgridAPIKey = GetEnv("SENDGRID_API_KEY")
	MailFromName = GetEnv("MAIL_FROM_NAME", "Sekolahku")
	MailFromEmail = GetEnv("MAIL_FROM_EMAIL", "no-reply@sekolahku.app")

	VapidPublicKey = GetEnv("VAPID_PUBLIC_KEY")
	VapidPrivateKey = GetEnv("VAPID_PRIVATE_KEY")
	VapidSubscriber = GetEnv("VAPID_SUBSCRIBER", "mailto:admin@sekolahku.app")

	FrontendBaseURL = GetEnv("FRONTEND_BASE_URL", "http://localhost:5173")

	if JWTSecret == "" {
		log.Println("[ERROR] JWT_SECRET belum diset!")
	}
	if SendgridAPIKey == "" {
		log.Println("[WARN] SENDGRID_API_KEY kosong — email sender jalan mode no-op")
	}
	if VapidPrivateKey == "" {
		log.Println("[WARN] VAPID keys kosong — push sender jalan mode no-op")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

/* =======================
   GORM LOGGER CUSTOM
======================= */

type GormLogger struct {
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger() gormLogger.Interface {
	return &GormLogger{
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	l.LogLevel = level
	return l
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[INFO] "+msg, data...)
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[WARN] "+msg, data...)
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	log.Printf("[ERROR] "+msg, data...)
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	sql, rows := fc()
	file := utils.FileWithLineNum()

	if err != nil {
		log.Printf("[ERROR] %s | %v | %s | %d rows | %s", file, err, elapsed, rows, sql)
	} else if elapsed > l.SlowThreshold {
		log.Printf("[SLOW SQL] %s | %s | %d rows | %s", file, elapsed, rows, sql)
	}
}
