package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rz2606/lab-website-sub002/internal/common"
)

// writeError maps service and repository sentinels to HTTP statuses. Raw
// driver errors never reach the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
	case errors.Is(err, common.ErrUnauthorized):
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "用户名或密码错误"})
	case errors.Is(err, common.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgForbidden})
	case errors.Is(err, common.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, common.ErrAlreadyExists):
		// Unique-constraint misses are client mistakes here (duplicate
		// username or email), reported as 400 with a concrete message.
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "duplicate username or email"})
	case errors.Is(err, common.ErrAlreadyInstalled):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "already installed"})
	case errors.Is(err, common.ErrNotInstalled):
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "not installed"})
	default:
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": msg})
}
