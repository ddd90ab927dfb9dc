package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Env        string
	ServerPort string
	CORSOrigin string

	DBDriver   string // postgres, sqlite
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	JWTSecret    string
	AdminHandles []string

	RedisAddr string
	CacheTTL  time.Duration

	UploadBackend string // local, s3
	UploadDir     string
	S3Bucket      string
	S3Region      string
	S3Prefix      string

	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPass     string
	ContactInbox string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "4000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:5173"),

		DBDriver:   getEnv("DB_DRIVER", "postgres"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "ratemyschedule"),
		DBPath:     getEnv("DB_PATH", "data/ratemyschedule.db"),

		JWTSecret:    getEnv("JWT_SECRET", "dev-secret-change-me"),
		AdminHandles: splitList(getEnv("ADMIN_HANDLES", "")),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		CacheTTL:  time.Duration(getEnvInt("CACHE_TTL_SECONDS", 30)) * time.Second,

		UploadBackend: getEnv("UPLOAD_BACKEND", "local"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3Region:      getEnv("S3_REGION", "us-east-1"),
		S3Prefix:      getEnv("S3_PREFIX", "uploads/"),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUser:     getEnv("SMTP_USER", ""),
		SMTPPass:     getEnv("SMTP_PASS", ""),
		ContactInbox: getEnv("CONTACT_INBOX", ""),
	}, nil
}

// IsProduction reports whether dev-only endpoints must be disabled.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// IsAdminHandle is case-insensitive.
func (c *Config) IsAdminHandle(handle string) bool {
	for _, h := range c.AdminHandles {
		if strings.EqualFold(h, handle) {
			return true
		}
	}
	return false
}

// SMTPConfigured is true only when every setting needed to deliver contact mail is present.
func (c *Config) SMTPConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != "" && c.ContactInbox != ""
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Invalid %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
