package middleware

import (
	appErrors "Cashline/internal/errors"

	"github.com/gin-gonic/gin"
)

func abortWith(c *gin.Context, err *appErrors.AppError) {
	payload := gin.H{
		"error":   err.Code,
		"message": err.Message,
	}
	if len(err.Details) > 0 {
		payload["details"] = err.Details
	}
	c.AbortWithStatusJSON(err.StatusCode, payload)
}
