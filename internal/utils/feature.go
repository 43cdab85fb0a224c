package utils

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

func GetFeatureID(ctx *gin.Context) (uint, error) {
	featureIDStr := ctx.Param("feature_id")

	if featureIDStr == "" {
		return 0, errors.New("feature ID not found")
	}

	featureID, err := strconv.ParseUint(featureIDStr, 10, 32)

	if err != nil {
		return 0, errors.New("invalid feature ID")
	}

	return uint(featureID), nil
}
