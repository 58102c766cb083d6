// internal/config/config.go
package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Engine    EngineConfig
	Cache     CacheConfig
	Archive   ArchiveConfig
	Storage   StorageConfig
	Telemetry TelemetryConfig
	LogLevel  string
	LogJSON   bool
}

type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
	// SensorRatePerSecond limits sensor ingest per client, 0 disables the limiter.
	SensorRatePerSecond float64
	SensorBurst         int
}

type EngineConfig struct {
	SeedDemoData   bool
	PriceSeed      int64
	ForecastWorker int
	MinOrderQty    int
	SensorBuffer   int
}

type CacheConfig struct {
	Enabled            bool
	RedisURL           string
	RedisHost          string
	RedisPort          string
	RedisPassword      string
	RedisDB            int
	ForecastTTLSeconds int
}

// ArchiveConfig points at the postgres database that mirrors the movement ledger.
type ArchiveConfig struct {
	Enabled        bool
	Host           string
	Port           string
	User           string
	Password       string
	DBName         string
	SSLMode        string
	MaxConcurrency int
}

type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	Prefix    string
}

type TelemetryConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
	Insecure     bool
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		setDefaults()

		// Read from environment variables
		viper.AutomaticEnv()

		instance = fromViper()
	})

	return instance
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_MODE", "debug")
	viper.SetDefault("SERVER_READ_TIMEOUT", 15)
	viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
	viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
	viper.SetDefault("SENSOR_RATE_PER_SECOND", 20.0)
	viper.SetDefault("SENSOR_BURST", 40)

	viper.SetDefault("ENGINE_SEED_DEMO_DATA", true)
	viper.SetDefault("ENGINE_PRICE_SEED", 0)
	viper.SetDefault("ENGINE_FORECAST_WORKERS", 4)
	viper.SetDefault("ENGINE_MIN_ORDER_QTY", 10)
	viper.SetDefault("ENGINE_SENSOR_BUFFER", 256)

	viper.SetDefault("CACHE_ENABLED", false)
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("REDIS_HOST", "127.0.0.1")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("CACHE_FORECAST_TTL_SECONDS", 300)

	viper.SetDefault("ARCHIVE_ENABLED", false)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_NAME", "wms")
	viper.SetDefault("DB_SSLMODE", "disable")
	viper.SetDefault("DB_MAX_CONCURRENCY", 4)

	viper.SetDefault("STORAGE_ENABLED", false)
	viper.SetDefault("STORAGE_ENDPOINT", "localhost:9000")
	viper.SetDefault("STORAGE_ACCESS_KEY", "")
	viper.SetDefault("STORAGE_SECRET_KEY", "")
	viper.SetDefault("STORAGE_BUCKET", "wms-ledger")
	viper.SetDefault("STORAGE_REGION", "us-east-1")
	viper.SetDefault("STORAGE_USE_SSL", false)
	viper.SetDefault("STORAGE_PREFIX", "ledger")

	viper.SetDefault("OTEL_ENABLED", false)
	viper.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318")
	viper.SetDefault("OTEL_SERVICE_NAME", "wms-engine")
	viper.SetDefault("OTEL_INSECURE", true)

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_JSON", false)
}

func fromViper() *Config {
	return &Config{
		Server: ServerConfig{
			Port:                viper.GetString("SERVER_PORT"),
			Mode:                viper.GetString("SERVER_MODE"),
			ReadTimeout:         viper.GetInt("SERVER_READ_TIMEOUT"),
			WriteTimeout:        viper.GetInt("SERVER_WRITE_TIMEOUT"),
			AllowedOrigins:      viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			SensorRatePerSecond: viper.GetFloat64("SENSOR_RATE_PER_SECOND"),
			SensorBurst:         viper.GetInt("SENSOR_BURST"),
		},
		Engine: EngineConfig{
			SeedDemoData:   viper.GetBool("ENGINE_SEED_DEMO_DATA"),
			PriceSeed:      viper.GetInt64("ENGINE_PRICE_SEED"),
			ForecastWorker: viper.GetInt("ENGINE_FORECAST_WORKERS"),
			MinOrderQty:    viper.GetInt("ENGINE_MIN_ORDER_QTY"),
			SensorBuffer:   viper.GetInt("ENGINE_SENSOR_BUFFER"),
		},
		Cache: CacheConfig{
			Enabled:            viper.GetBool("CACHE_ENABLED"),
			RedisURL:           viper.GetString("REDIS_URL"),
			RedisHost:          viper.GetString("REDIS_HOST"),
			RedisPort:          viper.GetString("REDIS_PORT"),
			RedisPassword:      viper.GetString("REDIS_PASSWORD"),
			RedisDB:            viper.GetInt("REDIS_DB"),
			ForecastTTLSeconds: viper.GetInt("CACHE_FORECAST_TTL_SECONDS"),
		},
		Archive: ArchiveConfig{
			Enabled:        viper.GetBool("ARCHIVE_ENABLED"),
			Host:           viper.GetString("DB_HOST"),
			Port:           viper.GetString("DB_PORT"),
			User:           viper.GetString("DB_USER"),
			Password:       viper.GetString("DB_PASSWORD"),
			DBName:         viper.GetString("DB_NAME"),
			SSLMode:        viper.GetString("DB_SSLMODE"),
			MaxConcurrency: viper.GetInt("DB_MAX_CONCURRENCY"),
		},
		Storage: StorageConfig{
			Enabled:   viper.GetBool("STORAGE_ENABLED"),
			Endpoint:  viper.GetString("STORAGE_ENDPOINT"),
			AccessKey: viper.GetString("STORAGE_ACCESS_KEY"),
			SecretKey: viper.GetString("STORAGE_SECRET_KEY"),
			Bucket:    viper.GetString("STORAGE_BUCKET"),
			Region:    viper.GetString("STORAGE_REGION"),
			UseSSL:    viper.GetBool("STORAGE_USE_SSL"),
			Prefix:    viper.GetString("STORAGE_PREFIX"),
		},
		Telemetry: TelemetryConfig{
			Enabled:      viper.GetBool("OTEL_ENABLED"),
			OTLPEndpoint: viper.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName:  viper.GetString("OTEL_SERVICE_NAME"),
			Insecure:     viper.GetBool("OTEL_INSECURE"),
		},
		LogLevel: viper.GetString("LOG_LEVEL"),
		LogJSON:  viper.GetBool("LOG_JSON"),
	}
}

// DSN builds the lib/pq connection string for the archive database.
func (a ArchiveConfig) DSN() string {
	return "host=" + a.Host +
		" port=" + a.Port +
		" user=" + a.User +
		" password=" + a.Password +
		" dbname=" + a.DBName +
		" sslmode=" + a.SSLMode
}

// URL builds the postgres URL form used by pgx.
func (a ArchiveConfig) URL() string {
	return "postgres://" + a.User + ":" + a.Password + "@" + a.Host + ":" + a.Port + "/" + a.DBName + "?sslmode=" + a.SSLMode
}
