// Package config loads service settings from the environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server   Server   `envconfig:"SERVER"`
	App      App      `envconfig:"APP"`
	Cache    Cache    `envconfig:"CACHE"`
	JWT      JWT      `envconfig:"JWT"`
	DB       DB       `envconfig:"DB"`
	Kafka    Kafka    `envconfig:"KAFKA"`
	External External `envconfig:"EXTERNAL"`
}

type Server struct {
	Env      string `envconfig:"ENV"       default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"      default:"8080"`
	Shutdown struct {
		CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
		GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
	} `envconfig:"SHUTDOWN"`
}

type App struct {
	Name     string `envconfig:"APP_NAME" default:"hotelier"`
	Timezone string `envconfig:"TIMEZONE"`
	APIKey   string `envconfig:"API_KEY"`

	CORS struct {
		Enable           bool     `envconfig:"ENABLE"`
		AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
		AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
		AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
		AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
		MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
	} `envconfig:"CORS"`

	RateLimiter struct {
		Enable        bool `envconfig:"ENABLE"`
		MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
		WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
	} `envconfig:"RATE_LIMITER"`

	// Hotel display defaults, used until a settings row exists.
	Hotel struct {
		Name           string `envconfig:"NAME"            default:"Hotel"`
		CurrencySymbol string `envconfig:"CURRENCY_SYMBOL" default:"$"`
	} `envconfig:"HOTEL"`
}

type Cache struct {
	TTL   int `envconfig:"TTL" default:"300"`
	Redis struct {
		Primary RedisEndpoint `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
}

type RedisEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

type DB struct {
	Postgres Postgres `envconfig:"POSTGRES"`
}

type Postgres struct {
	Read  PostgresEndpoint `envconfig:"READ"`
	Write PostgresEndpoint `envconfig:"WRITE"`

	Prefix         string `envconfig:"PREFIX"`
	MigrationTable string `envconfig:"MIGRATION_TABLE"`
	AutoMigrate    bool   `envconfig:"AUTO_MIGRATE"`

	MaxRetry               int `envconfig:"MAX_RETRY"                 default:"3"`
	RetryWaitTime          int `envconfig:"RETRY_WAIT_TIME"           default:"2"`
	MaxOpenConns           int `envconfig:"MAX_OPEN_CONNS"            default:"10"`
	MaxIdleConns           int `envconfig:"MAX_IDLE_CONNS"            default:"10"`
	ConnMaxLifetimeMinutes int `envconfig:"CONN_MAX_LIFETIME_MINUTES" default:"30"`
}

// PostgresEndpoint is one side of the read/write split.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

type Kafka struct {
	Enable        bool     `envconfig:"ENABLE"`
	Brokers       []string `envconfig:"BROKERS"`
	ConsumerGroup string   `envconfig:"CONSUMER_GROUP"`
	SASL          struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topics struct {
		Occupancy string `envconfig:"OCCUPANCY" default:"hotelier.occupancy"`
		Checkout  string `envconfig:"CHECKOUT"  default:"hotelier.checkout"`
		Seller    string `envconfig:"SELLER"    default:"hotelier.seller"`
	} `envconfig:"TOPICS"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		BucketName      string `envconfig:"BUCKET_NAME"`
		Region          string `envconfig:"REGION"            default:"auto"`
	} `envconfig:"S3"`
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error

	if c.JWT.AccessSecret == "" || c.JWT.RefreshSecret == "" {
		errs = append(errs, errors.New("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET are required"))
	}

	if c.JWT.AccessSecret != "" && c.JWT.AccessSecret == c.JWT.RefreshSecret {
		errs = append(errs, errors.New("access and refresh secrets must differ"))
	}

	if c.DB.Postgres.Write.Host == "" {
		errs = append(errs, errors.New("DB_POSTGRES_WRITE_HOST is required"))
	}

	if c.Kafka.Enable && len(c.Kafka.Brokers) == 0 {
		errs = append(errs, errors.New("KAFKA_BROKERS is required when KAFKA_ENABLE is set"))
	}

	return errors.Join(errs...)
}

var (
	conf Config
	load = sync.OnceValue(func() error {
		if err := godotenv.Load(".env"); err != nil {
			log.Debug().Err(err).Msg("no .env file, using the process environment")
		}

		if err := envconfig.Process("", &conf); err != nil {
			return fmt.Errorf("processing environment: %w", err)
		}

		return nil
	})
)

// Init loads the configuration once. Later calls return the first result.
func Init() error {
	return load()
}

func Get() *Config {
	if err := Init(); err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	return &conf
}
