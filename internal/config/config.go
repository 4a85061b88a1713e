package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server   ServerConfig
	Sessions SessionsConfig
	Log      LogConfig
	Client   ClientConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	sessions, err := loadSessionsConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Sessions: sessions,
		Log:      LogConfig{Level: strings.TrimSpace(os.Getenv("LOG_LEVEL"))},
		Client:   ClientConfig{BaseURL: getEnvOrDefault("SESSIONS_API_URL", "http://localhost:8080")},
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	AllowedOrigin  string
	WriteRateLimit int
	MetricsEnabled bool
}

// SessionsConfig 描述会话存储配置，StorePath 为空时使用内存存储。
type SessionsConfig struct {
	Collection string
	StorePath  string // empty keeps sessions in memory
}

// LogConfig describes logging.
type LogConfig struct {
	Level string
}

// ClientConfig describes how the CLI reaches the API.
type ClientConfig struct {
	BaseURL string
}

func loadServerConfig() (ServerConfig, error) {
	addr, err := parseAddr(os.Getenv("PORT"))
	if err != nil {
		return ServerConfig{}, err
	}

	rateLimit := 120
	if override, err := parseOptionalIntEnv("RATE_LIMIT_WRITES"); err != nil {
		return ServerConfig{}, err
	} else if override != nil {
		if *override < 0 {
			return ServerConfig{}, fmt.Errorf("invalid RATE_LIMIT_WRITES value %d: must be >= 0", *override)
		}
		rateLimit = *override
	}

	metrics, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return ServerConfig{}, err
	}

	return ServerConfig{
		Addr:           addr,
		AllowedOrigin:  getEnvOrDefault("CORS_ALLOWED_ORIGIN", "*"),
		WriteRateLimit: rateLimit,
		MetricsEnabled: metrics,
	}, nil
}

// parseAddr accepts "8080", ":8080" or "127.0.0.1:8080".
func parseAddr(raw string) (string, error) {
	port := strings.TrimSpace(raw)
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		return port, nil
	}

	if strings.Contains(port, " ") {
		return "", fmt.Errorf("invalid PORT value: %q", port)
	}

	return ":" + port, nil
}

func loadSessionsConfig() (SessionsConfig, error) {
	collection := getEnvOrDefault("SESSION_COLLECTION", "sessions")
	if strings.ContainsAny(collection, " /") {
		return SessionsConfig{}, fmt.Errorf("invalid SESSION_COLLECTION value: %q", collection)
	}

	return SessionsConfig{
		Collection: collection,
		StorePath:  strings.TrimSpace(os.Getenv("SESSION_STORE_PATH")),
	}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
