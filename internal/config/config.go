package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type DB struct {
	DbHOST         string `yaml:"host"`
	DbPORT         string `yaml:"port"`
	DbUSER         string `yaml:"user"`
	DbPASSWORD     string `yaml:"password"`
	DbNAME         string `yaml:"name"`
	DbSSLMODE      string `yaml:"sslmode"`
	MigrationsPath string `yaml:"migrations_path"`
}

type MinIO struct {
	Endpoint   string        `yaml:"endpoint"`
	AccessKey  string        `yaml:"access_key"`
	SecretKey  string        `yaml:"secret_key"`
	BucketName string        `yaml:"bucket_name"`
	UseSSL     bool          `yaml:"use_ssl"`
	Region     string        `yaml:"region"`
	URLExpiry  time.Duration `yaml:"url_expiry"`
}

// Pagination is handed to every listing operation.
type Pagination struct {
	PageSize int `yaml:"page_size"`
}

type Config struct {
	ServerPort           int           `yaml:"server_port"`
	DB                   DB            `yaml:"db"`
	MinIO                MinIO         `yaml:"minio"`
	Pagination           Pagination    `yaml:"pagination"`
	JWTSecretKey         string        `yaml:"jwt_secret_key"`
	AccessTokenDuration  time.Duration `yaml:"access_token_duration"`
	RefreshTokenDuration time.Duration `yaml:"refresh_token_duration"`
	MaxUploadSize        int64         `yaml:"max_upload_size"`
	LoginURL             string        `yaml:"login_url"`
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Default returns the configuration used when neither a file nor the environment says otherwise.
func Default() *Config {
	return &Config{
		ServerPort: 8080,
		DB: DB{
			DbHOST:         "localhost",
			DbPORT:         "5432",
			DbUSER:         "postgres",
			DbPASSWORD:     "password",
			DbNAME:         "blogicum",
			DbSSLMODE:      "disable",
			MigrationsPath: "migrations/001_create_tables.sql",
		},
		MinIO: MinIO{
			Endpoint:   "localhost:9000",
			AccessKey:  "minioadmin",
			SecretKey:  "minioadmin",
			BucketName: "post-images",
			UseSSL:     false,
			Region:     "us-east-1",
			URLExpiry:  168 * time.Hour,
		},
		Pagination:           Pagination{PageSize: 10},
		AccessTokenDuration:  2 * time.Hour,
		RefreshTokenDuration: 168 * time.Hour,
		MaxUploadSize:        10 * 1024 * 1024,
		LoginURL:             "/auth/login/",
	}
}

// LoadFile overlays a YAML file on top of cfg. Keys missing from the file keep their values.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка при чтении файла конфигурации: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("ошибка при разборе файла конфигурации: %w", err)
	}

	return nil
}

func applyEnv(cfg *Config) {
	cfg.ServerPort = getEnvAsInt("SERVER_PORT", cfg.ServerPort)

	cfg.DB.DbHOST = getEnv("DB_HOST", cfg.DB.DbHOST)
	cfg.DB.DbPORT = getEnv("DB_PORT", cfg.DB.DbPORT)
	cfg.DB.DbUSER = getEnv("DB_USER", cfg.DB.DbUSER)
	cfg.DB.DbPASSWORD = getEnv("DB_PASSWORD", cfg.DB.DbPASSWORD)
	cfg.DB.DbNAME = getEnv("DB_NAME", cfg.DB.DbNAME)
	cfg.DB.DbSSLMODE = getEnv("DB_SSLMODE", cfg.DB.DbSSLMODE)
	cfg.DB.MigrationsPath = getEnv("MIGRATIONS_PATH", cfg.DB.MigrationsPath)

	cfg.MinIO.Endpoint = getEnv("MINIO_ENDPOINT", cfg.MinIO.Endpoint)
	cfg.MinIO.AccessKey = getEnv("MINIO_ACCESS_KEY", cfg.MinIO.AccessKey)
	cfg.MinIO.SecretKey = getEnv("MINIO_SECRET_KEY", cfg.MinIO.SecretKey)
	cfg.MinIO.BucketName = getEnv("MINIO_BUCKET_NAME", cfg.MinIO.BucketName)
	cfg.MinIO.UseSSL = getEnvBool("MINIO_USE_SSL", cfg.MinIO.UseSSL)
	cfg.MinIO.Region = getEnv("MINIO_REGION", cfg.MinIO.Region)
	cfg.MinIO.URLExpiry = getEnvDuration("MINIO_URL_EXPIRY", cfg.MinIO.URLExpiry)

	cfg.Pagination.PageSize = getEnvAsInt("PAGE_SIZE", cfg.Pagination.PageSize)

	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", cfg.JWTSecretKey)
	cfg.AccessTokenDuration = getEnvDuration("ACCESS_TOKEN_DURATION", cfg.AccessTokenDuration)
	cfg.RefreshTokenDuration = getEnvDuration("REFRESH_TOKEN_DURATION", cfg.RefreshTokenDuration)
	cfg.MaxUploadSize = getEnvAsInt64("MAX_UPLOAD_SIZE", cfg.MaxUploadSize)
	cfg.LoginURL = getEnv("LOGIN_URL", cfg.LoginURL)
}

// LoadConfig builds the configuration: defaults, then the optional YAML file, then the environment.
func LoadConfig(path string) (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	cfg := Default()

	if path != "" {
		if err := LoadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if cfg.Pagination.PageSize < 1 {
		return nil, fmt.Errorf("размер страницы должен быть положительным: %d", cfg.Pagination.PageSize)
	}

	return cfg, nil
}
