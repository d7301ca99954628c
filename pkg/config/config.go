package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env      string `envconfig:"COFFEE_APP_ENV" required:"true"`
	Port     string `envconfig:"COFFEE_APP_PORT" default:"8080"`
	LogLevel string `envconfig:"COFFEE_LOG_LEVEL" default:"info"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"COFFEE_DB_DSN"`
	Driver string `envconfig:"COFFEE_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"COFFEE_DB_HOST"`
	Port     int    `envconfig:"COFFEE_DB_PORT" default:"5432"`
	User     string `envconfig:"COFFEE_DB_USER"`
	Password string `envconfig:"COFFEE_DB_PASSWORD"`
	Name     string `envconfig:"COFFEE_DB_NAME"`
	SSLMode  string `envconfig:"COFFEE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"COFFEE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"COFFEE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"COFFEE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"COFFEE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the sqlite driver was selected (local dev and
// hermetic tests).
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(db.Driver, "sqlite")
}

type RedisConfig struct {
	URL          string        `envconfig:"COFFEE_REDIS_URL"`
	Address      string        `envconfig:"COFFEE_REDIS_ADDR"`
	Password     string        `envconfig:"COFFEE_REDIS_PASSWORD"`
	DB           int           `envconfig:"COFFEE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"COFFEE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"COFFEE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"COFFEE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"COFFEE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"COFFEE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"COFFEE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"COFFEE_JWT_ISSUER" default:"coffee-catalog"`
	ExpirationMinutes int    `envconfig:"COFFEE_JWT_EXPIRATION_MINUTES" default:"60"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"COFFEE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"COFFEE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"COFFEE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"COFFEE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"COFFEE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"COFFEE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"COFFEE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"COFFEE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"COFFEE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"COFFEE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"COFFEE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"COFFEE_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" || db.IsSQLite() {
		return nil
	}

	missing := []string{}
	if db.Host == "" {
		missing = append(missing, "COFFEE_DB_HOST")
	}
	if db.User == "" {
		missing = append(missing, "COFFEE_DB_USER")
	}
	if db.Name == "" {
		missing = append(missing, "COFFEE_DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("either COFFEE_DB_DSN or %s are required", strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}
	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
