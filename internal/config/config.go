package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	ServerPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	S3Region       string
	S3Endpoint     string
	S3AccessKey    string
	S3SecretKey    string
	S3PublicBase   string
	CatImageBucket string
	ProductBucket  string
	AssetsBucket   string

	SMTPHost      string
	SMTPPort      string
	SMTPUser      string
	SMTPPassword  string
	SMTPFromName  string
	SMTPFromEmail string
	ContactEmail  string

	AllowedOrigins string
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments set the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "jars"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Endpoint:     os.Getenv("S3_ENDPOINT"),
		S3AccessKey:    os.Getenv("S3_ACCESS_KEY"),
		S3SecretKey:    os.Getenv("S3_SECRET_KEY"),
		S3PublicBase:   os.Getenv("S3_PUBLIC_BASE_URL"),
		CatImageBucket: getEnv("S3_CAT_IMAGES_BUCKET", "cat-images"),
		ProductBucket:  getEnv("S3_PRODUCT_IMAGES_BUCKET", "product-images"),
		AssetsBucket:   getEnv("S3_ASSETS_BUCKET", "assets"),

		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUser:      os.Getenv("SMTP_USER"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFromName:  getEnv("SMTP_FROM_NAME", "האתר של הצנצנות"),
		SMTPFromEmail: os.Getenv("SMTP_FROM_EMAIL"),
		ContactEmail:  os.Getenv("CONTACT_NOTIFY_EMAIL"),

		AllowedOrigins: getEnv("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	if cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is not set")
	}

	return cfg, nil
}

// GetDBConnString builds a lib/pq connection string.
func (c *Config) GetDBConnString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
