package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op until Init is called so
// packages can log from tests without setup.
var Log = zap.NewNop()

// Init installs a production logger (info level, JSON encoding).
func Init() {
	install(zap.NewProductionConfig())
}

// InitDebug installs a development logger with debug level enabled. Config
// fallbacks (unknown contexts, unknown model tags) are only reported here.
func InitDebug() {
	install(zap.NewDevelopmentConfig())
}

// Setup installs the debug or production logger.
func Setup(debug bool) {
	if debug {
		InitDebug()
	} else {
		Init()
	}
}

func install(cfg zap.Config) {
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	l, err := cfg.Build()
	if err != nil {
		// Keep whatever logger was installed before.
		Log.Error("Could not build logger", zap.Error(err))
		return
	}
	Log = l
}

// Sync flushes buffered entries. Errors from syncing stdout/stderr are
// ignored, they are expected on some terminals.
func Sync() {
	_ = Log.Sync()
}
