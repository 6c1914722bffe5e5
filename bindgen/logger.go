package bindgen

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
	loggerMu   sync.Mutex
)

// Logger returns the generator's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		loggerMu.Lock()
		if logger == nil {
			logger = zap.NewNop()
		}
		loggerMu.Unlock()
	})
	loggerMu.Lock()
	defer loggerMu.Unlock()
	return logger
}

// SetLogger replaces the logger. Passing nil restores the no-op logger.
func SetLogger(l *zap.Logger) {
	loggerOnce.Do(func() {})
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}
