package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
)

type Config struct {
	ListenAddr   string
	DBPath       string
	BaseURL      string
	SessionKey   []byte
	CookieSecure bool

	BlobBackend   string // "local" or "s3"
	BlobLocalPath string
	S3Endpoint    string
	S3Region      string
	S3Bucket      string
	S3AccessKey   string
	S3SecretKey   string

	MailBackend  string // "resend", "smtp" or "off"
	ResendAPIKey string
	SMTPHost     string
	SMTPPort     string
	MailFrom     string
	MailReplyTo  string
	AdminEmail   string

	LogLevel string
	LogFile  string
}

func Load() *Config {
	return &Config{
		ListenAddr:   getEnv("LISTEN_ADDR", ":8080"),
		DBPath:       getEnv("DB_PATH", "/data/fotobestel.db"),
		BaseURL:      getEnv("BASE_URL", "http://localhost:8080"),
		SessionKey:   loadSessionKey(),
		CookieSecure: getEnv("COOKIE_SECURE", "true") == "true",

		BlobBackend:   getEnv("BLOB_BACKEND", "local"),
		BlobLocalPath: getEnv("BLOB_LOCAL_PATH", "/data/photos"),
		S3Endpoint:    getEnv("S3_ENDPOINT", ""),
		S3Region:      getEnv("S3_REGION", "auto"),
		S3Bucket:      getEnv("S3_BUCKET", ""),
		S3AccessKey:   getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretKey:   getEnv("S3_SECRET_ACCESS_KEY", ""),

		MailBackend:  getEnv("MAIL_BACKEND", "off"),
		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		SMTPHost:     getEnv("SMTP_HOST", "localhost"),
		SMTPPort:     getEnv("SMTP_PORT", "1025"),
		MailFrom:     getEnv("MAIL_FROM", "orders@fotobestel.local"),
		MailReplyTo:  getEnv("MAIL_REPLY_TO", ""),
		AdminEmail:   getEnv("ADMIN_EMAIL", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogFile:  getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

// loadSessionKey decodes SESSION_KEY (base64, 32+ bytes). Without one, a
// random key is generated so the server still runs in development; sessions
// then become invalid on every restart.
func loadSessionKey() []byte {
	raw := os.Getenv("SESSION_KEY")
	if raw != "" {
		key, err := base64.StdEncoding.DecodeString(raw)
		if err == nil && len(key) >= 32 {
			return key
		}
		slog.Warn("SESSION_KEY is not valid base64 or shorter than 32 bytes, generating a random key")
	} else {
		slog.Warn("SESSION_KEY not set, generating a random key; sessions will not survive a restart")
	}

	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		// crypto/rand failing means the platform is broken; nothing sane to do.
		panic("failed to generate session key: " + err.Error())
	}
	return key
}
