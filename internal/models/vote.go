package models

import "time"

// Vote binds one user to one feature. Rows are created on vote and deleted
// on unvote, never updated, so there is no UpdatedAt and no soft delete (a
// soft-deleted row would still occupy the unique (user_id, feature_id) slot).
type Vote struct {
	ID uint `gorm:"primaryKey"`

	UserID    uint `gorm:"not null;uniqueIndex:idx_user_feature"`
	FeatureID uint `gorm:"not null;uniqueIndex:idx_user_feature"`
	// VoteType is signed for future downvote support, but every writer today
	// stores +1.
	VoteType  int `gorm:"not null;default:1"`
	CreatedAt time.Time

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Feature Feature `gorm:"foreignKey:FeatureID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
