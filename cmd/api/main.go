package main

import (
	"errors"
	"os"

	"gamestore-backend/internal/config"
	"gamestore-backend/pkg/container"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

func main() {
	// Load từ .env file (development/local)
	// Production sẽ dùng system environment variables
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("⚠️  No .env file found, using system environment variables")
	}

	if getEnv("APP_ENV", "development") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// price ra JSON dạng number, không phải string
	decimal.MarshalJSONWithoutQuotes = true

	appContainer, err := container.NewContainer()
	if err != nil {
		var cfgErr *config.ConfigurationError
		if errors.As(err, &cfgErr) {
			log.Fatal().Str("setting", cfgErr.Setting).Msg(cfgErr.Error())
		}
		log.Fatal().Err(err).Msg("❌ Failed to initialize container")
	}
	defer appContainer.Cleanup()

	Serve(appContainer)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
