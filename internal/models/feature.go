package models

// Feature status constants
const (
	StatusOpen       = "open"
	StatusInProgress = "in-progress"
	StatusClosed     = "closed"
)

type Feature struct {
	BaseModel

	Title       string `gorm:"size:200;not null"`
	Description string `gorm:"type:text;not null"`
	UserID      uint   `gorm:"not null;index"`
	// VoteCount is a cached aggregate over the feature's votes. It is only
	// ever written together with the vote row change that caused it, or by a
	// reconcile pass.
	VoteCount int    `gorm:"not null;default:0"`
	Status    string `gorm:"size:20;not null;default:open"`

	// Relationships
	User  User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Votes []Vote `gorm:"foreignKey:FeatureID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
