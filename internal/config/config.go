package config

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/ismail-dev-code/meal-giver-server/internal/logger"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port     string
	LogLevel string

	MongoURI string
	DBName   string

	JWTSecret string

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool

	PaymentAPIBase string
	PaymentAPIKey  string
}

// Load reads the environment, optionally seeded from a .env file.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file found, using environment variables")
	}

	return Config{
		Port:           getenv("PORT", "8080"),
		LogLevel:       getenv("LOG_LEVEL", "info"),
		MongoURI:       getenv("MONGO_URI", "mongodb://localhost:27017"),
		DBName:         getenv("DB_NAME", "meal_giver"),
		JWTSecret:      getenv("JWT_SECRET", ""),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    os.Getenv("MINIO_USE_SSL") == "true",
		PaymentAPIBase: getenv("PAYMENT_API_BASE", "https://api.stripe.com"),
		PaymentAPIKey:  getenv("PAYMENT_API_KEY", ""),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
