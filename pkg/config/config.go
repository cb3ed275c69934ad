package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	JWT        JWTConfig
	Dataset    DatasetConfig
	Simulation SimulationConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	CacheTTLSec   int
}

type JWTConfig struct {
	SecretKey string
}

// DatasetConfig controls where the customer feature table comes from.
// Source "postgres" requires Database to be configured, "csv" requires
// CSVPath, "builtin" uses the generated dataset. "auto" tries them in
// that order.
type DatasetConfig struct {
	Source      string
	CSVPath     string
	BuiltinSize int
}

// SimulationConfig holds the projection knobs. Thresholds and spillover
// are deployment policy, so they stay env-overridable.
type SimulationConfig struct {
	RiskHighThreshold   float64
	RiskMediumThreshold float64
	SpilloverFraction   float64
	ChurnSeverity       float64
	DigitalShield       float64
	BaselineChurn       float64
	DefaultSeed         int64
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "Banking Scenario Simulation API"),
			Version:     getEnv("APP_VERSION", "0.2.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8000"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", ""),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "banking_simulation"),
			SSLMode:  getEnv("DB_SSL_MODE", "disable"),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", ""),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			CacheTTLSec:   getEnvInt("REDIS_CACHE_TTL_SEC", 300),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Dataset: DatasetConfig{
			Source:      getEnv("DATASET_SOURCE", "auto"),
			CSVPath:     getEnv("DATASET_CSV_PATH", ""),
			BuiltinSize: getEnvInt("DATASET_BUILTIN_SIZE", 600),
		},
		Simulation: SimulationConfig{
			RiskHighThreshold:   getEnvFloat("SIM_RISK_HIGH_THRESHOLD", 0.05),
			RiskMediumThreshold: getEnvFloat("SIM_RISK_MEDIUM_THRESHOLD", 0.02),
			SpilloverFraction:   getEnvFloat("SIM_SPILLOVER_FRACTION", 0.25),
			ChurnSeverity:       getEnvFloat("SIM_CHURN_SEVERITY", 2.0),
			DigitalShield:       getEnvFloat("SIM_DIGITAL_SHIELD", 0.60),
			BaselineChurn:       getEnvFloat("SIM_BASELINE_CHURN", 0.25),
			DefaultSeed:         int64(getEnvInt("SIM_DEFAULT_SEED", 42)),
		},
	}

	return cfg, nil
}

// DatabaseEnabled reports whether a Postgres connection is configured.
// The service runs fully in-memory without one.
func (c *Config) DatabaseEnabled() bool {
	return c.Database.Host != ""
}

func (c *Config) RedisEnabled() bool {
	return c.Redis.RedisHost != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}

	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}

	return defaultVal
}
