// Package logging builds the application logger and the gin request logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"adboard/internal/config"
)

// New returns a logrus logger: JSON in production, text otherwise.
// Unknown levels fall back to info.
func New(level string, env config.Environment) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.Warnf("Unknown LOG_LEVEL %q, using info", level)
		lvl = logrus.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}

// Discard returns a logger that drops everything. Used by tests and tools.
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// RequestLogger logs one line per request with its status and latency.
func RequestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		entry := logger.WithFields(logrus.Fields{
			"status_code": c.Writer.Status(),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"remote_ip":   c.ClientIP(),
			"latency_ms":  time.Since(start).Milliseconds(),
		})
		if uid, ok := c.Get("userID"); ok {
			entry = entry.WithField("user_id", uid)
		}

		status := c.Writer.Status()
		switch {
		case len(c.Errors.ByType(gin.ErrorTypePrivate)) > 0 && status >= 500:
			entry.Error(c.Errors.ByType(gin.ErrorTypePrivate).String())
		case status >= 500:
			entry.Error("Request completed with server error")
		case status >= 400:
			entry.Warn("Request completed with client error")
		default:
			entry.Info("Request completed")
		}
	}
}
