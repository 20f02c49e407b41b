package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	apperrors "github.com/formgate/contact-backend/errors"
	"github.com/formgate/contact-backend/logger"
	"github.com/formgate/contact-backend/types"
	"github.com/gin-gonic/gin"
)

// ErrorHandler converts errors pushed onto the gin context into the JSON
// response envelope. Handlers attach failures with c.Error; nothing
// propagates past this middleware unhandled. Internal detail is logged,
// never echoed to the caller.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		if appError, ok := err.(*apperrors.AppError); ok {
			statusCode := appError.GetHTTPStatus()
			logger.LogHTTPError(c, err, statusCode, fmt.Sprintf("%s error", appError.Type))

			if appError.Type == apperrors.RateLimitError && appError.RetryAfter > 0 {
				c.Header("Retry-After", strconv.Itoa(appError.RetryAfter))
			}

			resp := types.Response{
				Success: false,
				Message: clientMessage(appError),
				Errors:  appError.Violations,
			}
			c.JSON(statusCode, resp)
			return
		}

		// Gin binding errors are client errors.
		if c.Errors.Last().Type == gin.ErrorTypeBind {
			logger.LogHTTPError(c, err, http.StatusBadRequest, "Request binding error")
			c.JSON(http.StatusBadRequest, types.Response{
				Success: false,
				Message: "Invalid request body",
			})
			return
		}

		// Catch-all for anything that bypassed handler-local mapping.
		logger.LogHTTPError(c, err, http.StatusInternalServerError, "Unexpected server error")
		c.JSON(http.StatusInternalServerError, types.Response{
			Success: false,
			Message: "Internal server error",
		})
	}
}

// clientMessage returns the message safe to echo to the caller. Server-side
// failure detail stays in the logs.
func clientMessage(appError *apperrors.AppError) string {
	switch appError.Type {
	case apperrors.DatabaseError:
		return "Failed to save your message. Please try again later."
	case apperrors.EmailError:
		return "Your message was received but the notification email could not be sent."
	case apperrors.ServerError:
		return "Internal server error"
	}
	return appError.Message
}
