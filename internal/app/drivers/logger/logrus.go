package logger

import (
	"docbook-service/internal/app/config"
	"docbook-service/internal/pkg/constvars"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the logger used by the command line tools.
func NewLogrusLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *logrus.Logger {
	logger := logrus.New()
	level, err := logrus.ParseLevel(driverConfig.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch internalConfig.App.Env {
	case constvars.AppEnvProduction:
		logger.SetFormatter(&logrus.JSONFormatter{})
		file, err := os.OpenFile(driverConfig.Logger.OutputFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err == nil {
			logger.SetOutput(file)
		} else {
			logger.Info("Failed to log to file, using default stderr")
		}
	default:
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return logger
}
