package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
)

// Server captures process level configuration.
type Server struct {
	Addr         string
	LogLevel     string
	LogFormat    string
	StoreBackend string

	Auth     AuthConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Dynamo   DynamoConfig
	Kafka    KafkaConfig
	Metrics  MetricsConfig
}

// AuthConfig holds credential and session settings.
type AuthConfig struct {
	// Secret is the fixed server secret fed to the credential digest.
	Secret       string
	CookieName   string
	CookieDomain string
	CookiePath   string
	CookieSecure bool
	// SessionTTL bounds how long an issued session token is honored. Zero disables expiry.
	SessionTTL time.Duration
	// MaxLoginFailures before an email is locked out. Zero disables lockout.
	MaxLoginFailures int
	LockoutWindow    time.Duration
}

type PostgresConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
}

// RedisConfig holds redis connection settings. An empty URL means redis is not used.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DynamoConfig struct {
	Region         string
	Endpoint       string
	AccessKeyID    string
	SecretKey      string
	UsersTable     string
	SolutionsTable string
	ScreensTable   string
	WidgetsTable   string
}

type KafkaConfig struct {
	Brokers    []string
	AuditTopic string
	ClientID   string
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// devSecret is rejected by Validate when REQUIRE_SECRET=true.
const devSecret = "dev-session-secret-change-in-production"

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:         getEnv("SCREENBOARD_ADDR", ":8080"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "json"),
		StoreBackend: getEnv("STORE_BACKEND", BackendMemory),
		Auth: AuthConfig{
			Secret:           getEnv("SESSION_SECRET", devSecret),
			CookieName:       getEnv("SESSION_COOKIE_NAME", "USER-AUTH"),
			CookieDomain:     getEnv("SESSION_COOKIE_DOMAIN", "localhost"),
			CookiePath:       getEnv("SESSION_COOKIE_PATH", "/"),
			CookieSecure:     getBool("SESSION_COOKIE_SECURE", false),
			SessionTTL:       getDuration("SESSION_TTL", 0),
			MaxLoginFailures: getInt("LOGIN_MAX_FAILURES", 5),
			LockoutWindow:    getDuration("LOGIN_LOCKOUT_WINDOW", 15*time.Minute),
		},
		Postgres: PostgresConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: getInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns: getInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Dynamo: DynamoConfig{
			Region:         getEnv("AWS_REGION", "us-east-1"),
			Endpoint:       os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKeyID:    os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretKey:      os.Getenv("AWS_SECRET_ACCESS_KEY"),
			UsersTable:     getEnv("USERS_TABLE", "UsersTable"),
			SolutionsTable: getEnv("SOLUTIONS_TABLE", "SolutionsTable"),
			ScreensTable:   getEnv("SCREENS_TABLE", "ScreensTable"),
			WidgetsTable:   getEnv("WIDGETS_TABLE", "WidgetsTable"),
		},
		Kafka: KafkaConfig{
			Brokers:    splitList(os.Getenv("KAFKA_BROKERS")),
			AuditTopic: getEnv("KAFKA_AUDIT_TOPIC", "screenboard.audit"),
			ClientID:   getEnv("KAFKA_CLIENT_ID", "screenboard"),
		},
		Metrics: MetricsConfig{
			Enabled: getBool("METRICS_ENABLED", true),
			Path:    getEnv("METRICS_PATH", "/metrics"),
		},
	}
}

// Validate rejects configurations the process cannot start with.
func (s Server) Validate() error {
	var errs []error
	switch s.StoreBackend {
	case BackendMemory, BackendDynamoDB:
	case BackendPostgres:
		if s.Postgres.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_BACKEND %q", s.StoreBackend))
	}
	if s.Auth.Secret == "" {
		errs = append(errs, errors.New("SESSION_SECRET must not be empty"))
	}
	if os.Getenv("REQUIRE_SECRET") == "true" && s.Auth.Secret == devSecret {
		errs = append(errs, errors.New("SESSION_SECRET must be set explicitly"))
	}
	if s.Auth.SessionTTL < 0 {
		errs = append(errs, errors.New("SESSION_TTL must not be negative"))
	}
	if s.Auth.MaxLoginFailures < 0 {
		errs = append(errs, errors.New("LOGIN_MAX_FAILURES must not be negative"))
	}
	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
