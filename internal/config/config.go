package config

import (
	"os"
	"strconv"
)

type Config struct {
	AppEnv  string
	AppPort string
	DBDSN   string

	SessionSecret string
	SessionTTLMin int
	SessionCookie string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	UploadDir   string
	UploadMaxMB int

	LogLevel  string
	LogFormat string

	GoogleClientID string
	GoogleSecret   string
	GoogleRedirect string
}

func Load() Config {
	return Config{
		AppEnv:         get("APP_ENV", "production"),
		AppPort:        get("APP_PORT", "3000"),
		DBDSN:          must("DB_DSN"),
		SessionSecret:  must("SESSION_SECRET"),
		SessionTTLMin:  getInt("SESSION_TTL_MIN", 24*60),
		SessionCookie:  get("SESSION_COOKIE", "ll_session"),
		RedisAddr:      get("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  get("REDIS_PASSWORD", ""),
		RedisDB:        getInt("REDIS_DB", 0),
		UploadDir:      get("UPLOAD_DIR", "./public/uploads"),
		UploadMaxMB:    getInt("UPLOAD_MAX_MB", 5),
		LogLevel:       get("LOG_LEVEL", ""),
		LogFormat:      get("LOG_FORMAT", ""),
		GoogleClientID: get("GOOGLE_CLIENT_ID", ""),
		GoogleSecret:   get("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirect: get("GOOGLE_REDIRECT_URL", ""),
	}
}

// LoadDatabase reads only what the management commands need.
func LoadDatabase() Config {
	return Config{
		AppEnv:    get("APP_ENV", "production"),
		DBDSN:     must("DB_DSN"),
		LogLevel:  get("LOG_LEVEL", ""),
		LogFormat: get("LOG_FORMAT", ""),
	}
}

// IsDevelopment gates error details in responses and the Secure cookie flag.
// Only an explicit APP_ENV=development turns it on.
func (c Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleSecret != ""
}

func get(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getInt(k string, def int) int {
	n, err := strconv.Atoi(os.Getenv(k))
	if err != nil {
		return def
	}
	return n
}

func must(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("missing env: " + k)
	}
	return v
}
