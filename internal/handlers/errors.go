package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voteboard-dev/voteboard/internal/store"
)

// respondStoreError maps store error kinds to HTTP statuses. ErrUnavailable
// is the one status a client may retry.
func respondStoreError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		ctx.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, store.ErrConstraintViolation):
		ctx.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, store.ErrForbidden):
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, store.ErrUnavailable):
		log.Printf("Storage unavailable: %v", err)
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Service temporarily unavailable, retry later"})
	default:
		log.Printf("Unexpected error: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
