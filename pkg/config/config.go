package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	Upstream      UpstreamConfig
	Redis         RedisConfig
	Session       SessionConfig
	Stripe        StripeConfig
	Cart          CartConfig
	AuthRateLimit AuthRateLimitConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Upstream.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"AGRIZEN_APP_ENV" required:"true"`
	Port         string `envconfig:"AGRIZEN_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"AGRIZEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"AGRIZEN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// UpstreamConfig points at the legacy marketplace backend. The source client
// alternated between a hosted and a local base URL; a single configurable URL
// replaces both.
type UpstreamConfig struct {
	BaseURL string        `envconfig:"AGRIZEN_UPSTREAM_BASE_URL" default:"https://agrigenapi.sarangartstudio.com"`
	Timeout time.Duration `envconfig:"AGRIZEN_UPSTREAM_TIMEOUT" default:"15s"`
}

func (u UpstreamConfig) validate() error {
	parsed, err := url.Parse(u.BaseURL)
	if err != nil {
		return fmt.Errorf("parsing upstream base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("upstream base url must be absolute, got %q", u.BaseURL)
	}
	if u.Timeout <= 0 {
		return fmt.Errorf("upstream timeout must be positive")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"AGRIZEN_REDIS_URL" required:"true"`
	Address      string        `envconfig:"AGRIZEN_REDIS_ADDR"`
	Password     string        `envconfig:"AGRIZEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"AGRIZEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"AGRIZEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"AGRIZEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"AGRIZEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"AGRIZEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"AGRIZEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// SessionConfig covers the signed session token and the Redis-backed profile
// record it points at.
type SessionConfig struct {
	Secret     string `envconfig:"AGRIZEN_SESSION_SECRET" required:"true"`
	Issuer     string `envconfig:"AGRIZEN_SESSION_ISSUER" default:"agrizen-gateway"`
	TTLMinutes int    `envconfig:"AGRIZEN_SESSION_TTL_MINUTES" default:"10080"`
	CookieName string `envconfig:"AGRIZEN_SESSION_COOKIE" default:"agrizen_session"`
	// CookieSecure should be off only for local development over plain HTTP.
	CookieSecure bool `envconfig:"AGRIZEN_SESSION_COOKIE_SECURE" default:"true"`
}

// TTL returns the session lifetime configured in minutes.
func (s SessionConfig) TTL() time.Duration {
	if s.TTLMinutes <= 0 {
		return 0
	}
	return time.Duration(s.TTLMinutes) * time.Minute
}

type StripeConfig struct {
	APIKey string `envconfig:"AGRIZEN_STRIPE_API_KEY"`
	Env    string `envconfig:"AGRIZEN_STRIPE_ENV" default:"test"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type CartConfig struct {
	// AddDebounce is how long an identical add-to-cart payload is treated as a
	// duplicate double-submit rather than an intentional repeat purchase.
	AddDebounce time.Duration `envconfig:"AGRIZEN_CART_ADD_DEBOUNCE" default:"5s"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"AGRIZEN_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"AGRIZEN_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"AGRIZEN_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"AGRIZEN_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"AGRIZEN_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"AGRIZEN_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}
