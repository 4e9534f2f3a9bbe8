package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort         int    `json:"server_port"`
	ProxyPort          int    `json:"proxy_port"`
	JWTSecretKey       string `json:"jwt_secret_key"`
	JWTExpirationHours int    `json:"jwt_expiration_hours"`
	DefaultRateLimit   int    `json:"default_rate_limit"`
	GlobalRateLimit    int    `json:"global_rate_limit"`

	// Proxy settings
	UpstreamURL      string        `json:"upstream_url"`
	APIKeyHeader     string        `json:"api_key_header"`
	APIKeyQueryParam string        `json:"api_key_query_param"`
	ProxyCacheTTL    time.Duration `json:"proxy_cache_ttl"`
}

func Load() (*Config, error) {
	serverPort, _ := strconv.Atoi(os.Getenv("SERVER_PORT"))
	if serverPort == 0 {
		serverPort = 10000
	}

	proxyPort, _ := strconv.Atoi(os.Getenv("PROXY_PORT"))
	if proxyPort == 0 {
		proxyPort = 10001
	}

	jwtExpirationHours, _ := strconv.Atoi(os.Getenv("JWT_EXPIRATION_HOURS"))
	if jwtExpirationHours == 0 {
		jwtExpirationHours = 24
	}

	defaultRateLimit, _ := strconv.Atoi(os.Getenv("DEFAULT_RATE_LIMIT"))
	if defaultRateLimit == 0 {
		defaultRateLimit = 1000 // 1000 requests per minute per tenant
	}

	globalRateLimit, _ := strconv.Atoi(os.Getenv("GLOBAL_RATE_LIMIT"))
	if globalRateLimit == 0 {
		globalRateLimit = 10000 // 10000 requests per minute globally per IP
	}

	cacheTTL := getEnvDurationWithDefault("PROXY_CACHE_TTL", 5*time.Second)

	return &Config{
		ServerPort:         serverPort,
		ProxyPort:          proxyPort,
		JWTSecretKey:       os.Getenv("JWT_SECRET_KEY"),
		JWTExpirationHours: jwtExpirationHours,
		DefaultRateLimit:   defaultRateLimit,
		GlobalRateLimit:    globalRateLimit,
		UpstreamURL:        getEnvWithDefault("UPSTREAM_URL", "http://localhost:3000"),
		APIKeyHeader:       getEnvWithDefault("API_KEY_HEADER", "X-Api-Key"),
		APIKeyQueryParam:   getEnvWithDefault("API_KEY_QUERY_PARAM", "apiKey"),
		ProxyCacheTTL:      cacheTTL,
	}, nil
}
