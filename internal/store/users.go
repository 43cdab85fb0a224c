package store

import (
	"context"

	"github.com/voteboard-dev/voteboard/db"
	"github.com/voteboard-dev/voteboard/internal/models"
	"gorm.io/gorm"
)

// CreateUser persists a new user. A duplicate username or email fails with
// ErrConstraintViolation and leaves nothing behind.
func CreateUser(ctx context.Context, username, email, passwordHash string) (models.User, error) {
	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := db.DB.WithContext(ctx).Create(&user).Error; err != nil {
		return models.User{}, wrapErr(err)
	}

	return user, nil
}

func GetUserByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User

	if err := db.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return models.User{}, wrapErr(err)
	}

	return user, nil
}

func GetUserByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User

	if err := db.DB.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return models.User{}, wrapErr(err)
	}

	return user, nil
}

// DeleteUser removes a user together with their features, those features'
// votes, and the user's own votes elsewhere. Features that survive but lose
// one of this user's votes get their cached count decremented in the same
// transaction, so the count invariant holds in the committed state.
func DeleteUser(ctx context.Context, id uint) error {
	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User

		if err := tx.First(&user, id).Error; err != nil {
			return err
		}

		var votes []models.Vote

		if err := tx.Where("user_id = ?", id).Find(&votes).Error; err != nil {
			return err
		}

		for _, vote := range votes {
			// Features owned by this user are deleted below anyway; the
			// owner guard just skips pointless updates on them.
			err := tx.Model(&models.Feature{}).
				Where("id = ? AND user_id <> ?", vote.FeatureID, id).
				UpdateColumn("vote_count", gorm.Expr("vote_count - ?", vote.VoteType)).Error
			if err != nil {
				return err
			}
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.Vote{}).Error; err != nil {
			return err
		}

		var featureIDs []uint

		if err := tx.Model(&models.Feature{}).Where("user_id = ?", id).Pluck("id", &featureIDs).Error; err != nil {
			return err
		}

		if len(featureIDs) > 0 {
			if err := tx.Where("feature_id IN ?", featureIDs).Delete(&models.Vote{}).Error; err != nil {
				return err
			}

			if err := tx.Where("id IN ?", featureIDs).Delete(&models.Feature{}).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&user).Error
	})

	return wrapErr(err)
}
