package store

import (
	"context"
	"math"

	"github.com/voteboard-dev/voteboard/db"
	"github.com/voteboard-dev/voteboard/internal/models"
	"github.com/voteboard-dev/voteboard/internal/types"
	"gorm.io/gorm"
)

// Sort orders accepted by ListFeatures.
const (
	SortByVotes     = "votes"
	SortByCreatedAt = "created_at"
)

const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

type FeatureUpdate struct {
	Title       *string
	Description *string
	Status      *string
}

type ListOptions struct {
	// RequestingUserID annotates each view with that user's vote state;
	// zero means anonymous and leaves UserVoted false everywhere.
	RequestingUserID uint
	Page             int
	PageSize         int
	SortBy           string
}

func CreateFeature(ctx context.Context, ownerID uint, title, description string) (models.Feature, error) {
	feature := models.Feature{
		Title:       title,
		Description: description,
		UserID:      ownerID,
		Status:      models.StatusOpen,
	}

	if err := db.DB.WithContext(ctx).Create(&feature).Error; err != nil {
		return models.Feature{}, wrapErr(err)
	}

	return feature, nil
}

func GetFeature(ctx context.Context, id uint) (models.Feature, error) {
	var feature models.Feature

	if err := db.DB.WithContext(ctx).First(&feature, id).Error; err != nil {
		return models.Feature{}, wrapErr(err)
	}

	return feature, nil
}

// UpdateFeature applies the non-nil fields of upd. Only the feature's owner
// may modify it.
func UpdateFeature(ctx context.Context, callerID, featureID uint, upd FeatureUpdate) (models.Feature, error) {
	var feature models.Feature

	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&feature, featureID).Error; err != nil {
			return err
		}

		if feature.UserID != callerID {
			return ErrForbidden
		}

		updates := make(map[string]interface{})

		if upd.Title != nil {
			updates["title"] = *upd.Title
		}

		if upd.Description != nil {
			updates["description"] = *upd.Description
		}

		if upd.Status != nil {
			updates["status"] = *upd.Status
		}

		if len(updates) == 0 {
			return nil
		}

		return tx.Model(&feature).Updates(updates).Error
	})

	if err != nil {
		return models.Feature{}, wrapErr(err)
	}

	return feature, nil
}

// DeleteFeature removes a feature and its votes in one transaction. Only the
// owner may delete.
func DeleteFeature(ctx context.Context, callerID, featureID uint) error {
	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var feature models.Feature

		if err := tx.First(&feature, featureID).Error; err != nil {
			return err
		}

		if feature.UserID != callerID {
			return ErrForbidden
		}

		if err := tx.Where("feature_id = ?", featureID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		return tx.Delete(&feature).Error
	})

	return wrapErr(err)
}

// ListFeatures returns one page of features ordered by the requested sort,
// each annotated with the requesting user's vote state. "votes" orders by
// cached count descending with ties broken by oldest first; the default
// orders newest first. Out-of-range pages return an empty slice.
func ListFeatures(ctx context.Context, opts ListOptions) ([]types.FeatureView, error) {
	if opts.Page < 1 {
		opts.Page = 1
	}

	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	} else if opts.PageSize > MaxPageSize {
		opts.PageSize = MaxPageSize
	}

	// Absurd page numbers would overflow the offset below; gorm treats a
	// negative offset as no offset at all, which would hand back page 1
	// instead of the empty sequence an out-of-range page must produce.
	if opts.Page-1 > math.MaxInt/opts.PageSize {
		return []types.FeatureView{}, nil
	}

	query := db.DB.WithContext(ctx).Model(&models.Feature{}).Preload("User")

	if opts.SortBy == SortByVotes {
		query = query.Order("vote_count DESC").Order("created_at ASC")
	} else {
		query = query.Order("created_at DESC")
	}

	var features []models.Feature

	offset := (opts.Page - 1) * opts.PageSize

	if err := query.Offset(offset).Limit(opts.PageSize).Find(&features).Error; err != nil {
		return nil, wrapErr(err)
	}

	voted := make(map[uint]bool)

	if opts.RequestingUserID != 0 && len(features) > 0 {
		featureIDs := make([]uint, 0, len(features))
		for _, feature := range features {
			featureIDs = append(featureIDs, feature.ID)
		}

		var votes []models.Vote

		err := db.DB.WithContext(ctx).
			Where("user_id = ? AND feature_id IN ?", opts.RequestingUserID, featureIDs).
			Find(&votes).Error
		if err != nil {
			return nil, wrapErr(err)
		}

		for _, vote := range votes {
			voted[vote.FeatureID] = true
		}
	}

	views := make([]types.FeatureView, 0, len(features))

	for _, feature := range features {
		views = append(views, types.FeatureView{
			ID:          feature.ID,
			Title:       feature.Title,
			Description: feature.Description,
			UserID:      feature.UserID,
			Username:    feature.User.Username,
			VoteCount:   feature.VoteCount,
			Status:      feature.Status,
			CreatedAt:   feature.CreatedAt,
			UserVoted:   voted[feature.ID],
		})
	}

	return views, nil
}
