package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the service logger: JSON in deployed environments, a readable
// console encoder when running locally. Every entry carries the service name.
func New(service, env string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "" || env == "local" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("service", service)), nil
}

// Saga fields attached to every hop log line
func Saga(orderID, transactionID, source, status string) []zap.Field {
	return []zap.Field{
		zap.String("order_id", orderID),
		zap.String("transaction_id", transactionID),
		zap.String("source", source),
		zap.String("status", status),
	}
}
