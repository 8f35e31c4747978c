package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const EnvPrefix = "workshop"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Password PasswordConfig
	Migrate  MigrateConfig
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
	Env          string `envconfig:"WORKSHOP_APP_ENV" default:"dev"`
	Port         string `envconfig:"WORKSHOP_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"WORKSHOP_LOG_LEVEL" default:"info"`
	LogConsole   bool   `envconfig:"WORKSHOP_LOG_CONSOLE" default:"false"`
	LogWarnStack bool   `envconfig:"WORKSHOP_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"WORKSHOP_DB_DSN"`

	Host     string `envconfig:"WORKSHOP_DB_HOST"`
	Port     int    `envconfig:"WORKSHOP_DB_PORT" default:"5432"`
	User     string `envconfig:"WORKSHOP_DB_USER"`
	Password string `envconfig:"WORKSHOP_DB_PASSWORD"`
	Name     string `envconfig:"WORKSHOP_DB_NAME"`
	SSLMode  string `envconfig:"WORKSHOP_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WORKSHOP_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WORKSHOP_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WORKSHOP_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WORKSHOP_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ensureDSN assembles a Postgres DSN from the discrete fields when one is not
// provided explicitly.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.Host == "" || d.User == "" || d.Name == "" {
		return fmt.Errorf("either WORKSHOP_DB_DSN or WORKSHOP_DB_HOST/USER/NAME must be set")
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(d.User, d.Password),
		Host:   fmt.Sprintf("%s:%d", d.Host, d.Port),
		Path:   d.Name,
	}
	q := u.Query()
	q.Set("sslmode", d.SSLMode)
	u.RawQuery = q.Encode()
	d.DSN = u.String()
	return nil
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WORKSHOP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WORKSHOP_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WORKSHOP_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WORKSHOP_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WORKSHOP_ARGON_KEY_LEN" default:"32"`
}

type MigrateConfig struct {
	AutoRun bool   `envconfig:"WORKSHOP_MIGRATE_AUTORUN" default:"false"`
	Dir     string `envconfig:"WORKSHOP_MIGRATE_DIR" default:"pkg/migrate/migrations"`
}
