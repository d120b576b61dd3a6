package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondWithError aborts with the error envelope the desktop client parses.
func RespondWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"exc_type": excType(status),
		"message":  message,
	})
}

func excType(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return "AuthenticationError"
	case http.StatusForbidden:
		return "PermissionError"
	case http.StatusNotFound:
		return "DoesNotExistError"
	case http.StatusExpectationFailed, http.StatusBadRequest:
		return "ValidationError"
	default:
		return "Exception"
	}
}
