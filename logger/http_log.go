package logger

import (
	"os"
	"runtime"
	"strings"

	"github.com/gin-gonic/gin"
)

// LogHTTPError logs an error that occurred while handling an HTTP request,
// enriched with request metadata. Stack traces are included outside production.
func LogHTTPError(c *gin.Context, err error, statusCode int, message string) {
	log := GetLogger()

	fields := []interface{}{
		"error", err,
		"status_code", statusCode,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
		"client_ip", c.ClientIP(),
	}

	if requestID := c.GetString("request_id"); requestID != "" {
		fields = append(fields, "request_id", requestID)
	}

	if os.Getenv("ENVIRONMENT") != "production" {
		fields = append(fields, "stack_trace", getStackTrace(2))
	}

	if statusCode >= 500 {
		log.Errorw(message, fields...)
	} else {
		log.Warnw(message, fields...)
	}
}

// getStackTrace returns a trimmed stack trace, skipping the given number of
// frames plus the runtime frames above them.
func getStackTrace(skip int) string {
	buf := make([]byte, 4096)
	n := runtime.Stack(buf, false)
	lines := strings.Split(string(buf[:n]), "\n")

	// Each frame is two lines; drop the goroutine header plus skipped frames.
	start := 1 + skip*2
	if start >= len(lines) {
		return strings.Join(lines, "\n")
	}
	return strings.Join(lines[start:], "\n")
}
