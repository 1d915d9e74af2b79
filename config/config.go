package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Calendar sources accepted by CALENDAR_SOURCE.
const (
	SourceRules    = "rules"
	SourcePostgres = "postgres"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// It is composed of smaller structs that represent different concerns of the system,
// such as server settings, Postgres connection details and calendar loading.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	POSTGRES_PORT=5432
//	POSTGRES_USER=admin
//	POSTGRES_PASSWORD=secret
//	POSTGRES_DB=sessioncal
//	POSTGRES_SSLMODE=disable
//	CALENDAR_SOURCE=rules
//	CALENDAR_MARKETS=NYSE,B3
//	CALENDAR_FIRST_YEAR=1990
//	CALENDAR_LAST_YEAR=2030
//	CHUNK_SIZE_DEFAULT=0
//	CHUNK_MAX_COUNT=5000
//	LOG_LEVEL=info
//	LOG_PRETTY=false
//	RATE_LIMIT_REQUESTS=60
//	RATE_LIMIT_WINDOW=1m
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Calendar CalendarConfig // Which calendars are served and where they come from
	Log      LogConfig      // Global logger settings
}

// ServerConfig holds HTTP server settings.
//
// Fields:
//   - Port: TCP port the HTTP server listens on (e.g., "8080").
//   - RateLimitRequests: requests allowed per client IP and window (0 disables limiting).
//   - RateLimitWindow: length of the rate limiting window.
type ServerConfig struct {
	Port              string
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// PostgresConfig defines connection details for PostgreSQL.
//
// Fields:
//   - Host: hostname of the database server.
//   - Port: port number of the database server (default 5432).
//   - User: username for authentication.
//   - Password: password for authentication.
//   - DBName: target database name.
//   - SSLMode: SSL mode (e.g., "disable", "require").
//   - URL: computed DSN used by database/sql to connect.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// CalendarConfig controls the served market calendars.
//
// Fields:
//   - Source: "rules" builds calendars from the built-in holiday rules,
//     "postgres" reads sessions written by the seed mode.
//   - Markets: upper-cased market names (e.g., ["NYSE", "B3"]).
//   - FirstYear / LastYear: inclusive span of generated sessions.
//   - DefaultChunkSize: chunk size used when a request omits it (0 = whole range).
//   - MaxChunks: largest number of chunks returned by one request.
type CalendarConfig struct {
	Source           string
	Markets          []string
	FirstYear        int
	LastYear         int
	DefaultChunkSize int
	MaxChunks        int
}

// LogConfig mirrors the options of the logger package.
type LogConfig struct {
	Level  string
	Pretty bool
}

// UsesPostgres reports whether calendars are read from the database.
func (c Config) UsesPostgres() bool {
	return c.Calendar.Source == SourcePostgres
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
// All services should import this package and read from AppConfig instead of
// reloading environment variables directly.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() will
//     terminate the app with a descriptive log message.
func LoadConfig() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 60)
	viper.SetDefault("RATE_LIMIT_WINDOW", "1m")

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "sessioncal")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("CALENDAR_SOURCE", SourceRules)
	viper.SetDefault("CALENDAR_MARKETS", "NYSE,B3")
	viper.SetDefault("CALENDAR_FIRST_YEAR", 1990)
	viper.SetDefault("CALENDAR_LAST_YEAR", 2030)
	viper.SetDefault("CHUNK_SIZE_DEFAULT", 0)
	viper.SetDefault("CHUNK_MAX_COUNT", 5000)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:              viper.GetString("SERVER_PORT"),
			RateLimitRequests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			RateLimitWindow:   viper.GetDuration("RATE_LIMIT_WINDOW"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Calendar: CalendarConfig{
			Source:           strings.ToLower(strings.TrimSpace(viper.GetString("CALENDAR_SOURCE"))),
			Markets:          splitMarkets(viper.GetString("CALENDAR_MARKETS")),
			FirstYear:        viper.GetInt("CALENDAR_FIRST_YEAR"),
			LastYear:         viper.GetInt("CALENDAR_LAST_YEAR"),
			DefaultChunkSize: viper.GetInt("CHUNK_SIZE_DEFAULT"),
			MaxChunks:        viper.GetInt("CHUNK_MAX_COUNT"),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	AppConfig.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		AppConfig.Postgres.User,
		AppConfig.Postgres.Password,
		AppConfig.Postgres.Host,
		AppConfig.Postgres.Port,
		AppConfig.Postgres.DBName,
		AppConfig.Postgres.SSLMode,
	)

	validateConfig()
}

// splitMarkets parses a comma separated list, upper-casing names and dropping
// blanks and duplicates.
func splitMarkets(s string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, m := range strings.Split(s, ",") {
		m = strings.ToUpper(strings.TrimSpace(m))
		if m == "" || seen[m] {
			continue
		}
		seen[m] = true
		out = append(out, m)
	}
	return out
}

// problems lists every missing or invalid setting of cfg.
// Postgres settings are only required when calendars are read from the database.
func problems(cfg Config) []string {
	var out []string

	if cfg.Server.Port == "" {
		out = append(out, "SERVER_PORT")
	}
	if cfg.Server.RateLimitRequests < 0 {
		out = append(out, "RATE_LIMIT_REQUESTS (must be >= 0)")
	}
	if cfg.Server.RateLimitRequests > 0 && cfg.Server.RateLimitWindow <= 0 {
		out = append(out, "RATE_LIMIT_WINDOW (must be a positive duration)")
	}

	switch cfg.Calendar.Source {
	case SourceRules:
	case SourcePostgres:
		if cfg.Postgres.Host == "" {
			out = append(out, "POSTGRES_HOST")
		}
		if cfg.Postgres.Port == 0 {
			out = append(out, "POSTGRES_PORT")
		}
		if cfg.Postgres.User == "" {
			out = append(out, "POSTGRES_USER")
		}
		if cfg.Postgres.Password == "" {
			out = append(out, "POSTGRES_PASSWORD")
		}
		if cfg.Postgres.DBName == "" {
			out = append(out, "POSTGRES_DB")
		}
	default:
		out = append(out, "CALENDAR_SOURCE (rules|postgres)")
	}

	if len(cfg.Calendar.Markets) == 0 {
		out = append(out, "CALENDAR_MARKETS")
	}
	if cfg.Calendar.FirstYear <= 0 || cfg.Calendar.LastYear < cfg.Calendar.FirstYear {
		out = append(out, "CALENDAR_FIRST_YEAR/CALENDAR_LAST_YEAR (first <= last)")
	}
	if cfg.Calendar.DefaultChunkSize < 0 {
		out = append(out, "CHUNK_SIZE_DEFAULT (must be >= 0)")
	}
	if cfg.Calendar.MaxChunks < 0 {
		out = append(out, "CHUNK_MAX_COUNT (must be >= 0)")
	}
	return out
}

// validateConfig terminates the application when problems(AppConfig) is not
// empty, so incomplete configuration never surfaces as a runtime failure.
func validateConfig() {
	if missing := problems(AppConfig); len(missing) > 0 {
		log.Fatalf("❌ Missing or invalid environment variables: %v\n", missing)
	}
}
