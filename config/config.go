package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// This function will Load the ENVIORNMENT VARIABLES from .env if GO_ENV variable is not set
func LoadENV() error {
	goEnv := os.Getenv("GO_ENV")

	if goEnv == "" || goEnv == "development" {
		err := godotenv.Load()
		if err != nil {
			return err
		}
	}

	return nil
}

type EnviornmentVariable struct {
	// All variables
	GO_ENV string
	PORT   int
	// Redis Configuration
	REDIS_URL string
	// Session datasets
	SESSION_TTL_MINUTES int
	// Uploads
	UPLOAD_LIMIT_MB int
	// CORS
	ALLOWED_ORIGINS string
}

func Get() (*EnviornmentVariable, error) {

	port, err := strconv.Atoi(os.Getenv("PORT"))
	if err != nil {
		port = 8080
	}

	sessionTTL, err := strconv.Atoi(os.Getenv("SESSION_TTL_MINUTES"))
	if err != nil || sessionTTL <= 0 {
		sessionTTL = 240
	}

	uploadLimit, err := strconv.Atoi(os.Getenv("UPLOAD_LIMIT_MB"))
	if err != nil || uploadLimit <= 0 {
		uploadLimit = 25
	}

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "*"
	}

	envVariables := &EnviornmentVariable{
		GO_ENV: os.Getenv("GO_ENV"),
		PORT:   port,
		// Redis
		REDIS_URL: os.Getenv("REDIS_URL"),
		// Sessions
		SESSION_TTL_MINUTES: sessionTTL,
		// Uploads
		UPLOAD_LIMIT_MB: uploadLimit,
		// CORS
		ALLOWED_ORIGINS: allowedOrigins,
	}

	return envVariables, nil
}
