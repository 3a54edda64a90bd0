package config

import (
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultRestaurants = "pizzeria-napoli,sushi-zen,burger-barn,taco-loco,curry-house,green-bowl"

type Config struct {
	RunAddress     string
	BackendAddress string
	BackendTimeout time.Duration
	JWTSecret      string
	Restaurants    []string
	PollInterval   time.Duration
	RedisAddr      string
	SearchCacheTTL time.Duration
	AMQPURL        string
	LogLevel       slog.Level
}

func New() *Config {
	return Load(flag.CommandLine, os.Args[1:])
}

// Load reads .env (if present), then flags from args, then environment
// variables. Environment wins over flags.
func Load(fs *flag.FlagSet, args []string) *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("failed to load .env", "error", err)
	}

	cfg := &Config{}
	var restaurants, logLevel string

	fs.StringVar(&cfg.RunAddress, "a", "localhost:8080", "server address and port")
	fs.StringVar(&cfg.BackendAddress, "b", "http://localhost:8081", "food delivery backend address")
	fs.DurationVar(&cfg.BackendTimeout, "timeout", 10*time.Second, "backend request timeout")
	fs.StringVar(&cfg.JWTSecret, "s", "super-secret-jwt-key", "jwt verification key")
	fs.StringVar(&restaurants, "restaurants", defaultRestaurants, "comma separated restaurant ids")
	fs.DurationVar(&cfg.PollInterval, "poll", 10*time.Second, "delivery tracker poll interval")
	fs.StringVar(&cfg.RedisAddr, "redis", "", "redis address for the search cache")
	fs.DurationVar(&cfg.SearchCacheTTL, "cache-ttl", time.Minute, "search cache ttl")
	fs.StringVar(&cfg.AMQPURL, "amqp", "", "amqp url for status notifications")
	fs.StringVar(&logLevel, "log-level", "info", "log level")
	_ = fs.Parse(args)

	cfg.RunAddress = getEnv("RUN_ADDRESS", cfg.RunAddress)
	cfg.BackendAddress = getEnv("BACKEND_ADDRESS", cfg.BackendAddress)
	cfg.BackendTimeout = getEnvDuration("BACKEND_TIMEOUT", cfg.BackendTimeout)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	restaurants = getEnv("RESTAURANTS", restaurants)
	cfg.PollInterval = getEnvDuration("POLL_INTERVAL", cfg.PollInterval)
	cfg.RedisAddr = getEnv("REDIS_ADDR", cfg.RedisAddr)
	cfg.SearchCacheTTL = getEnvDuration("SEARCH_CACHE_TTL", cfg.SearchCacheTTL)
	cfg.AMQPURL = getEnv("AMQP_URL", cfg.AMQPURL)
	logLevel = getEnv("LOG_LEVEL", logLevel)

	cfg.Restaurants = splitList(restaurants)
	if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		slog.Warn("unknown log level, using info", "value", logLevel)
		cfg.LogLevel = slog.LevelInfo
	}

	return cfg
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		slog.Warn("invalid duration, using default", "key", key, "value", value)
		return fallback
	}
	return d
}
