package store

import (
	"context"
	"errors"

	"github.com/voteboard-dev/voteboard/db"
	"github.com/voteboard-dev/voteboard/internal/models"
	"github.com/voteboard-dev/voteboard/internal/types"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ToggleVote flips the (user, feature) vote membership: absent becomes a +1
// vote, present is removed. The membership change and the cached count
// adjustment commit in one transaction, so no committed state shows one
// without the other.
//
// Two concurrent toggles on the same pair serialize on the unique
// (user_id, feature_id) index. The loser of a create race hits a duplicate
// key and is absorbed as "already voted"; the loser of a delete race affects
// zero rows and is absorbed as "already unvoted". Either way the caller's
// target state holds and no count update is lost or doubled.
func ToggleVote(ctx context.Context, userID, featureID uint) (types.VoteState, error) {
	var state types.VoteState

	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.User{}, userID).Error; err != nil {
			return err
		}

		if err := tx.First(&models.Feature{}, featureID).Error; err != nil {
			return err
		}

		var vote models.Vote

		err := tx.Where("user_id = ? AND feature_id = ?", userID, featureID).First(&vote).Error

		if err == nil {
			res := tx.Where("id = ?", vote.ID).Delete(&models.Vote{})
			if res.Error != nil {
				return res.Error
			}

			if res.RowsAffected == 0 {
				// A concurrent toggle already removed it.
				state.Voted = false
				return nil
			}

			state.Voted = false
			return tx.Model(&models.Feature{}).
				Where("id = ?", featureID).
				UpdateColumn("vote_count", gorm.Expr("vote_count - ?", vote.VoteType)).Error
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		vote = models.Vote{UserID: userID, FeatureID: featureID, VoteType: 1}

		// The insert must not raise on a lost race: postgres aborts the
		// whole transaction on a unique violation, which would turn the
		// commit into a rollback and surface a failure to the loser.
		// ON CONFLICT DO NOTHING reports the lost race as zero rows
		// affected instead.
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&vote)
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			// A concurrent toggle already created it.
			state.Voted = true
			return nil
		}

		state.Voted = true
		return tx.Model(&models.Feature{}).
			Where("id = ?", featureID).
			UpdateColumn("vote_count", gorm.Expr("vote_count + ?", vote.VoteType)).Error
	})

	if err != nil {
		return types.VoteState{}, wrapErr(err)
	}

	return state, nil
}

// UserVoted reports whether a vote currently exists for the pair.
func UserVoted(ctx context.Context, userID, featureID uint) (bool, error) {
	var count int64

	err := db.DB.WithContext(ctx).Model(&models.Vote{}).
		Where("user_id = ? AND feature_id = ?", userID, featureID).
		Count(&count).Error
	if err != nil {
		return false, wrapErr(err)
	}

	return count > 0, nil
}

// ReconcileVoteCount recomputes a feature's cached count by summing its
// votes and overwrites the cache. It exists to repair drift after
// out-of-band data changes and is never part of the toggle path.
func ReconcileVoteCount(ctx context.Context, featureID uint) (int, error) {
	var count int

	err := db.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Self-assignment takes the feature's row lock so concurrent
		// toggle adjustments serialize against this recomputation; a
		// toggle committing between the sum and the overwrite would
		// otherwise have its increment clobbered. An UPDATE is used
		// rather than SELECT ... FOR UPDATE, which sqlite cannot parse.
		res := tx.Model(&models.Feature{}).
			Where("id = ?", featureID).
			UpdateColumn("vote_count", gorm.Expr("vote_count"))
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		err := tx.Model(&models.Vote{}).
			Where("feature_id = ?", featureID).
			Select("COALESCE(SUM(vote_type), 0)").
			Scan(&count).Error
		if err != nil {
			return err
		}

		return tx.Model(&models.Feature{}).
			Where("id = ?", featureID).
			UpdateColumn("vote_count", count).Error
	})

	if err != nil {
		return 0, wrapErr(err)
	}

	return count, nil
}
