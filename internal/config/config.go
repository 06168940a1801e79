package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/bank-statementer/statementer/internal/logging"
)

// LoadEnv loads variables from a .env file in the working directory or its
// parent. Variables already set in the environment win. It returns the
// file it loaded, or "" when none was found.
func LoadEnv(logger logging.Logger) string {
	if logger == nil {
		logger = logging.GetLogger()
	}

	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			logger.Debug("No .env file found, using environment variables")
			return ""
		}
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.WithError(err).Warn("Error loading .env file")
		return ""
	}
	logger.Debug("Loaded environment variables", logging.F(logging.FieldFile, envFile))
	return envFile
}

// ConfigureLoggingFromConfig builds the application logger from config.
func ConfigureLoggingFromConfig(config *Config) logging.Logger {
	return logging.NewLogrusAdapter(config.Log.Level, config.Log.Format)
}
