package logger

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"os"
	"path/filepath"
	"polymer/internal/config"
)

// ProvideLogger builds the diagnostic logger. Polymer output goes to
// stdout, so the logger never writes there.
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	level := zap.InfoLevel
	if cfg.Verbose {
		level = zap.DebugLevel
	}

	switch cfg.Env {
	case "prod":
		// путь до файла логов
		logDir := "logs"
		logFile := filepath.Join(logDir, "app.log")

		if err := os.MkdirAll(logDir, 0755); err != nil {
			return nil, err
		}

		file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}

		encoderCfg := zap.NewProductionEncoderConfig()
		encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

		core := zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(file),
			level,
		)
		return zap.New(core), nil

	default:
		zapCfg := zap.NewDevelopmentConfig()
		zapCfg.Encoding = "console"
		zapCfg.Level = zap.NewAtomicLevelAt(level)
		zapCfg.OutputPaths = []string{"stderr"}
		zapCfg.DisableStacktrace = true
		return zapCfg.Build()
	}
}

// FxLogger routes fx lifecycle events through zap at debug level, so they
// only show up with --verbose.
func FxLogger(log *zap.Logger) fxevent.Logger {
	l := &fxevent.ZapLogger{Logger: log.Named("fx")}
	l.UseLogLevel(zapcore.DebugLevel)
	return l
}

func SyncOnStop(lc fx.Lifecycle, log *zap.Logger) {
	lc.Append(fx.StopHook(func() {
		// stderr на некоторых системах не поддерживает fsync
		_ = log.Sync()
	}))
}
