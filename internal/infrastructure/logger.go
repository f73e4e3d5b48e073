package infrastructure

import (
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the production logger for the given level. Logs go to
// stderr unless log file names are given, so stdout stays free for results.
func NewLogger(level string, logfileName ...string) *zap.Logger {
	config := zap.NewProductionConfig()

	switch level {
	case "debug":
		config.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		config.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "error":
		config.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		config.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	var outputPath []string
	for _, item := range logfileName {
		if item != "" {
			outputPath = append(outputPath, item)
		}
	}
	if len(outputPath) == 0 {
		outputPath = []string{"stderr"}
	}

	config.OutputPaths = outputPath
	config.ErrorOutputPaths = []string{"stderr"}
	config.EncoderConfig.TimeKey = "t"
	config.EncoderConfig.EncodeTime = zapcore.RFC3339TimeEncoder
	config.DisableCaller = level != "debug"

	logger, err := config.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger.With(zap.String("run_id", uuid.NewString()))
}
