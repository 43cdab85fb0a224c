package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/voteboard-dev/voteboard/internal/models"
	"github.com/voteboard-dev/voteboard/internal/store"
	"github.com/voteboard-dev/voteboard/internal/types"
	"github.com/voteboard-dev/voteboard/internal/utils"
)

type CreateFeatureRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description" binding:"required"`
}

type UpdateFeatureRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=200"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

func validStatus(status string) bool {
	switch status {
	case models.StatusOpen, models.StatusInProgress, models.StatusClosed:
		return true
	}
	return false
}

func CreateFeature(ctx *gin.Context) {
	var body CreateFeatureRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	feature, err := store.CreateFeature(ctx.Request.Context(), currentUser.ID, body.Title, body.Description)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, types.FeatureView{
		ID:          feature.ID,
		Title:       feature.Title,
		Description: feature.Description,
		UserID:      feature.UserID,
		Username:    currentUser.Username,
		VoteCount:   feature.VoteCount,
		Status:      feature.Status,
		CreatedAt:   feature.CreatedAt,
		UserVoted:   false,
	})
}

func ListFeatures(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "0"))
	sortBy := ctx.DefaultQuery("sort_by", store.SortByVotes)

	// Anonymous browsing is allowed; a missing user just means no vote
	// annotations.
	var requestingUserID uint

	if currentUser, err := utils.GetCurrentUser(ctx); err == nil {
		requestingUserID = currentUser.ID
	}

	views, err := store.ListFeatures(ctx.Request.Context(), store.ListOptions{
		RequestingUserID: requestingUserID,
		Page:             page,
		PageSize:         pageSize,
		SortBy:           sortBy,
	})

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, views)
}

func UpdateFeature(ctx *gin.Context) {
	featureID, err := utils.GetFeatureID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var body UpdateFeatureRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if body.Status != nil && !validStatus(*body.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
		return
	}

	feature, err := store.UpdateFeature(ctx.Request.Context(), currentUser.ID, featureID, store.FeatureUpdate{
		Title:       body.Title,
		Description: body.Description,
		Status:      body.Status,
	})

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, types.FeatureView{
		ID:          feature.ID,
		Title:       feature.Title,
		Description: feature.Description,
		UserID:      feature.UserID,
		Username:    currentUser.Username,
		VoteCount:   feature.VoteCount,
		Status:      feature.Status,
		CreatedAt:   feature.CreatedAt,
	})
}

func DeleteFeature(ctx *gin.Context) {
	featureID, err := utils.GetFeatureID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if err := store.DeleteFeature(ctx.Request.Context(), currentUser.ID, featureID); err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// ReconcileFeature recomputes the cached vote count from the vote rows.
// Maintenance only; the toggle path keeps the count consistent on its own.
func ReconcileFeature(ctx *gin.Context) {
	featureID, err := utils.GetFeatureID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	feature, err := store.GetFeature(ctx.Request.Context(), featureID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	if feature.UserID != currentUser.ID {
		ctx.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return
	}

	count, err := store.ReconcileVoteCount(ctx.Request.Context(), featureID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"vote_count": count})
}
