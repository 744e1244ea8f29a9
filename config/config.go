package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config is the runtime configuration of the storefront, read from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port              string
	StorageDriver     string
	SQLitePath        string
	MongoURI          string
	DBName            string
	DatabaseURL       string
	StorageQuota      int
	JWTSecret         string
	AdminUsername     string
	AdminPasswordHash string
	SessionTTL        time.Duration
	ExchangeRate      float64
	SeedFile          string
	AllowedOrigins    []string
}

const (
	DefaultPort         = "8080"
	DefaultDriver       = "sqlite"
	DefaultSQLitePath   = "furuth.db"
	DefaultDBName       = "furuth"
	DefaultAdminUser    = "admin"
	DefaultSessionTTL   = 12 * time.Hour
	DefaultExchangeRate = 110.0
)

// LoadEnv loads variables from the given .env files (or ./.env when none are
// given). A missing file is not an error; variables already set in the
// process environment win.
func LoadEnv(files ...string) {
	if err := godotenv.Load(files...); err != nil {
		log.Println("⚠️  No .env file loaded, using process environment")
	}
}

// GetEnv returns the value of key, or fallback when it is unset or empty.
func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from the environment.
func Load() Config {
	return Config{
		Port:              GetEnv("PORT", DefaultPort),
		StorageDriver:     strings.ToLower(GetEnv("STORAGE_DRIVER", DefaultDriver)),
		SQLitePath:        GetEnv("SQLITE_PATH", DefaultSQLitePath),
		MongoURI:          GetEnv("MONGO_URI", ""),
		DBName:            GetEnv("DB_NAME", DefaultDBName),
		DatabaseURL:       GetEnv("DATABASE_URL", ""),
		StorageQuota:      getInt("STORAGE_QUOTA", 0),
		JWTSecret:         GetEnv("JWT_SECRET", ""),
		AdminUsername:     GetEnv("ADMIN_USERNAME", DefaultAdminUser),
		AdminPasswordHash: GetEnv("ADMIN_PASSWORD_HASH", ""),
		SessionTTL:        getDuration("SESSION_TTL", DefaultSessionTTL),
		ExchangeRate:      getFloat("EXCHANGE_RATE", DefaultExchangeRate),
		SeedFile:          GetEnv("SEED_FILE", ""),
		AllowedOrigins:    getList("ALLOWED_ORIGINS", []string{"*"}),
	}
}

func getInt(key string, fallback int) int {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		log.Printf("⚠️  Invalid %s=%q, using %d", key, raw, fallback)
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || !(v > 0) {
		log.Printf("⚠️  Invalid %s=%q, using %g", key, raw, fallback)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		log.Printf("⚠️  Invalid %s=%q, using %s", key, raw, fallback)
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
