package middleware

import (
	"fmt"
	"strings"
	"time"

	apperrors "github.com/formgate/contact-backend/errors"
	"github.com/formgate/contact-backend/logger"
	"github.com/formgate/contact-backend/services"
	"github.com/gin-gonic/gin"
)

// Rate-limit scopes. Each scope has its own window and ceiling per client
// address; counters for different scopes never interfere.
const (
	ScopeAPI     = "api"
	ScopeContact = "contact"
)

// Fixed rejection messages per scope.
const (
	apiLimitMessage     = "Too many requests from this IP, please try again later."
	contactLimitMessage = "Too many contact form submissions, please try again later."
)

// RateLimiter returns a middleware enforcing a fixed-window ceiling for the
// given scope, keyed by client address. When the limiter's backing store is
// unreachable the request is admitted, keeping the API available.
func RateLimiter(limiter services.RateLimiterInterface, scope string, limit int, window time.Duration) gin.HandlerFunc {
	message := apiLimitMessage
	if scope == ScopeContact {
		message = contactLimitMessage
	}

	return func(c *gin.Context) {
		ip := getClientIP(c)
		key := fmt.Sprintf("%s:%s", scope, ip)

		allowed, retryAfter, err := limiter.CheckLimit(c.Request.Context(), key, limit, window)
		if err != nil {
			// Fail open on limiter errors so the API stays available.
			logger.GetLogger().Warnw("Rate limit check failed, admitting request",
				"scope", scope, "error", err)
			c.Next()
			return
		}

		if !allowed {
			c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", limit))
			c.Header("X-RateLimit-Remaining", "0")
			c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", time.Now().Add(retryAfter).Unix()))

			_ = c.Error(apperrors.RateLimitExceeded(message, int(retryAfter.Seconds())))
			c.Abort()
			return
		}

		c.Next()
	}
}

// getClientIP extracts the real client IP from the request. It checks
// X-Forwarded-For and X-Real-IP headers first (for proxies/load balancers),
// then falls back to gin's ClientIP.
func getClientIP(c *gin.Context) string {
	if forwarded := c.GetHeader("X-Forwarded-For"); forwarded != "" {
		ips := strings.Split(forwarded, ",")
		if len(ips) > 0 {
			return strings.TrimSpace(ips[0])
		}
	}

	if realIP := c.GetHeader("X-Real-IP"); realIP != "" {
		return realIP
	}

	return c.ClientIP()
}
