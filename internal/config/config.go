package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Auth Auth `validate:"required"`

	Storage Storage `validate:"required"`

	// Only the section of the selected driver is validated.
	Postgres Postgres `validate:"-"`

	Mongo Mongo `validate:"-"`

	Redis Redis

	Kafka Kafka `validate:"required"`

	Cache Cache

	Orders Orders
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`

	ReadTimeout  time.Duration `validate:"gte=0"`
	WriteTimeout time.Duration `validate:"gte=0"`
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

type Auth struct {
	JWTSecret string `validate:"required,min=16"`
}

type Storage struct {
	Driver string `validate:"required,oneof=postgres mongo"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type Mongo struct {
	URI      string `validate:"required,uri"`
	Database string `validate:"required"`

	ConnectTimeout time.Duration `validate:"gte=0"`
	MaxPoolSize    uint64
	MinPoolSize    uint64
}

type Redis struct {
	Enabled  bool
	Addr     string `validate:"required,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`

	CartTTL       time.Duration `validate:"gte=0"`
	CartTTLJitter time.Duration `validate:"gte=0"`
}

type Kafka struct {
	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`

	OrderEventsTopic   string `validate:"required"`
	ProductEventsTopic string `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

// Cache configures the in-process catalog cache.
type Cache struct {
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
}

type Orders struct {
	// VerifyPrices replaces caller-supplied line prices with catalog prices.
	VerifyPrices bool
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host: env("HOST", "localhost"),
			Port: env("PORT", "8080"),

			ReadTimeout:  envDuration("HTTP_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: envDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Auth: Auth{
			JWTSecret: env("JWT_SECRET", ""),
		},

		Storage: Storage{
			Driver: env("STORAGE_DRIVER", StoragePostgres),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "shop"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Mongo: Mongo{
			URI:      env("MONGO_URI", "mongodb://localhost:27017/?replicaSet=rs0"),
			Database: env("MONGO_DB", "shop"),

			ConnectTimeout: envDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			MaxPoolSize:    uint64(envInt("MONGO_MAX_POOL_SIZE", 100)),
			MinPoolSize:    uint64(envInt("MONGO_MIN_POOL_SIZE", 10)),
		},

		Redis: Redis{
			Enabled:  envBool("REDIS_ENABLED", false),
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),

			CartTTL:       envDuration("REDIS_CART_TTL", 15*time.Minute),
			CartTTLJitter: envDuration("REDIS_CART_TTL_JITTER", 5*time.Minute),
		},

		Kafka: Kafka{
			GroupID: env("KAFKA_GROUP_ID", "shop-service"),
			Brokers: strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			OrderEventsTopic:   env("KAFKA_ORDER_EVENTS_TOPIC", "order-events"),
			ProductEventsTopic: env("KAFKA_PRODUCT_EVENTS_TOPIC", "product-events"),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Cache: Cache{
			Capacity: envInt("CATALOG_CACHE_CAPACITY", 1000),
			TTL:      envDuration("CATALOG_CACHE_TTL", time.Minute),
		},

		Orders: Orders{
			VerifyPrices: envBool("ORDER_VERIFY_PRICES", false),
		},
	}
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Storage.Driver {
	case StoragePostgres:
		return validate.Struct(c.Postgres)
	case StorageMongo:
		return validate.Struct(c.Mongo)
	}
	return nil
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
