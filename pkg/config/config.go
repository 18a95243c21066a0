package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "hotelstock"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv = "HOTELSTOCK_APP_ENV"
	EnvPort   = "HOTELSTOCK_APP_PORT"

	EnvDBDSN      = "HOTELSTOCK_DB_DSN"
	EnvDBHost     = "HOTELSTOCK_DB_HOST"
	EnvDBUser     = "HOTELSTOCK_DB_USER"
	EnvDBName     = "HOTELSTOCK_DB_NAME"
	EnvDBPassword = "HOTELSTOCK_DB_PASSWORD"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	HTTP         HTTPConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"HOTELSTOCK_APP_ENV" required:"true"`
	Port         string `envconfig:"HOTELSTOCK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"HOTELSTOCK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOTELSTOCK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HOTELSTOCK_DB_DSN"`
	Driver string `envconfig:"HOTELSTOCK_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HOTELSTOCK_DB_HOST"`
	LegacyPort     int    `envconfig:"HOTELSTOCK_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HOTELSTOCK_DB_USER"`
	LegacyPassword string `envconfig:"HOTELSTOCK_DB_PASSWORD"`
	LegacyName     string `envconfig:"HOTELSTOCK_DB_NAME"`
	LegacySSLMode  string `envconfig:"HOTELSTOCK_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOTELSTOCK_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOTELSTOCK_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOTELSTOCK_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOTELSTOCK_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type HTTPConfig struct {
	AllowedOrigins []string      `envconfig:"HOTELSTOCK_HTTP_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ReadTimeout    time.Duration `envconfig:"HOTELSTOCK_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"HOTELSTOCK_HTTP_WRITE_TIMEOUT" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HOTELSTOCK_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
