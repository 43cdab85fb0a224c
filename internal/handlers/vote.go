package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/voteboard-dev/voteboard/internal/store"
	"github.com/voteboard-dev/voteboard/internal/utils"
)

// ToggleVote flips the caller's vote on a feature: voting when no vote
// exists, unvoting when one does.
func ToggleVote(ctx *gin.Context) {
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

	state, err := store.ToggleVote(ctx.Request.Context(), currentUser.ID, featureID)

	if err != nil {
		respondStoreError(ctx, err)
		return
	}

	message := "Vote added"
	if !state.Voted {
		message = "Vote removed"
	}

	ctx.JSON(http.StatusOK, gin.H{"message": message, "voted": state.Voted})
}
