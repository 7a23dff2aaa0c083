package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Backend kinds selectable via DB_TYPE.
const (
	BackendMySQL   = "mysql"
	BackendSurreal = "surrealdb"
)

type Config struct {
	// Application
	AppName string
	AppEnv  string
	AppPort string

	// Active persistence backend: "mysql" or "surrealdb"
	DBType string

	// MySQL
	MySQLHost            string
	MySQLPort            string
	MySQLDatabase        string
	MySQLUsername        string
	MySQLPassword        string
	MySQLMaxOpenConns    int
	MySQLMaxIdleConns    int
	MySQLConnMaxLifetime time.Duration

	// SurrealDB
	SurrealURL       string
	SurrealNamespace string
	SurrealDatabase  string
	SurrealUsername  string
	SurrealPassword  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// JWT
	JWTSecret        string
	JWTRefreshSecret string
	JWTAccessExpire  time.Duration
	JWTRefreshExpire time.Duration

	// Upload
	UploadMaxSize int
	UploadPath    string

	// Ingestion
	BatchSize         int
	WorkerConcurrency int

	// Asynq
	AsynqRedisAddr     string
	AsynqRedisPassword string
	AsynqRedisDB       int
}

func Load() (*Config, error) {
	// Load .env file if exists
	// Try to load from current dir first, then parent dirs
	_ = godotenv.Load()
	_ = godotenv.Load("../../.env") // For when running from cmd/web or cmd/worker

	cfg := &Config{
		AppName: getEnv("APP_NAME", "Fees API"),
		AppEnv:  getEnv("APP_ENV", "development"),
		AppPort: getEnv("APP_PORT", "3000"),

		DBType: getEnv("DB_TYPE", BackendMySQL),

		MySQLHost:            getEnv("MYSQL_HOST", "127.0.0.1"),
		MySQLPort:            getEnv("MYSQL_PORT", "3306"),
		MySQLDatabase:        getEnv("MYSQL_DATABASE", "fees_api"),
		MySQLUsername:        getEnv("MYSQL_USER", "root"),
		MySQLPassword:        getEnv("MYSQL_PASSWORD", ""),
		MySQLMaxOpenConns:    getEnvAsInt("MYSQL_MAX_OPEN_CONNS", 25),
		MySQLMaxIdleConns:    getEnvAsInt("MYSQL_MAX_IDLE_CONNS", 25),
		MySQLConnMaxLifetime: getEnvAsDuration("MYSQL_CONN_MAX_LIFETIME", 5*time.Minute),

		SurrealURL:       getEnv("SURREALDB_URL", "ws://127.0.0.1:8000/rpc"),
		SurrealNamespace: getEnv("SURREALDB_NAMESPACE", "fees"),
		SurrealDatabase:  getEnv("SURREALDB_DATABASE", "fees_api"),
		SurrealUsername:  getEnv("SURREALDB_USER", "root"),
		SurrealPassword:  getEnv("SURREALDB_PASSWORD", "root"),

		RedisHost:     getEnv("REDIS_HOST", "127.0.0.1"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		JWTSecret:        getEnv("JWT_SECRET", "change-this-secret-key"),
		JWTRefreshSecret: getEnv("JWT_REFRESH_SECRET", "change-this-refresh-secret"),
		JWTAccessExpire:  getEnvAsDuration("JWT_ACCESS_EXPIRE", 168*time.Hour),
		JWTRefreshExpire: getEnvAsDuration("JWT_REFRESH_EXPIRE", 720*time.Hour),

		UploadMaxSize: getEnvAsInt("UPLOAD_MAX_SIZE", 314572800), // 300MB
		UploadPath:    getEnv("UPLOAD_PATH", "./uploads"),

		BatchSize:         getEnvAsInt("BATCH_SIZE", 1000),
		WorkerConcurrency: getEnvAsInt("WORKER_CONCURRENCY", 4),

		AsynqRedisAddr:     getEnv("ASYNQ_REDIS_ADDR", "127.0.0.1:6379"),
		AsynqRedisPassword: getEnv("ASYNQ_REDIS_PASSWORD", ""),
		AsynqRedisDB:       getEnvAsInt("ASYNQ_REDIS_DB", 0),
	}

	if cfg.DBType != BackendMySQL && cfg.DBType != BackendSurreal {
		return nil, fmt.Errorf("unsupported DB_TYPE %q (expected %q or %q)",
			cfg.DBType, BackendMySQL, BackendSurreal)
	}

	return cfg, nil
}

func (c *Config) GetMySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=Local",
		c.MySQLUsername,
		c.MySQLPassword,
		c.MySQLHost,
		c.MySQLPort,
		c.MySQLDatabase,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
