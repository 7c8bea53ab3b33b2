package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	defaultJWTSecret = "change-me-in-production"
)

type Config struct {
	AppPort           string
	DbDriver          string
	DbHost            string
	DbPort            string
	DbUser            string
	DbPassword        string
	DbName            string
	DbParams          string
	SqlitePath        string
	JWTSecret         string
	JWTTTL            time.Duration
	TranslationFolder string
	TrustedProxies    []string
	ShutdownTimeout   time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load(".env")

	return &Config{
		AppPort:           getEnv("APP_PORT", "8080"),
		DbDriver:          parseDriver(getEnv("DB_DRIVER", DriverMySQL)),
		DbHost:            getEnv("MYSQL_HOST", "db"),
		DbPort:            getEnv("MYSQL_PORT", "3306"),
		DbUser:            getEnv("MYSQL_USER", "taskboard"),
		DbPassword:        getEnv("MYSQL_PASSWORD", "taskboard"),
		DbName:            getEnv("MYSQL_DATABASE", "taskboard"),
		DbParams:          getEnv("MYSQL_PARAMS", "parseTime=true&charset=utf8mb4&loc=UTC"),
		SqlitePath:        getEnv("SQLITE_PATH", "taskboard.db"),
		JWTSecret:         getEnv("JWT_SECRET", defaultJWTSecret),
		JWTTTL:            parseDuration(os.Getenv("JWT_TTL"), 24*time.Hour),
		TranslationFolder: getEnv("TRANSLATION_FOLDER", "pkg/translator/translation"),
		TrustedProxies:    parseTrustedProxies(os.Getenv("TRUSTED_PROXIES")),
		ShutdownTimeout:   parseDuration(os.Getenv("SHUTDOWN_TIMEOUT"), 15*time.Second),
	}
}

// UsesDefaultSecret reports whether JWT_SECRET was left unset.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func parseDriver(value string) string {
	if strings.EqualFold(strings.TrimSpace(value), DriverSQLite) {
		return DriverSQLite
	}
	return DriverMySQL
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseTrustedProxies(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	proxies := make([]string, 0, len(parts))
	for _, part := range parts {
		proxy := strings.TrimSpace(part)
		if proxy == "" {
			continue
		}
		proxies = append(proxies, proxy)
	}

	if len(proxies) == 0 {
		return nil
	}

	return proxies
}
