package types

import "time"

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// FeatureView is a feature as seen by one requesting user: the public fields
// plus whether that user currently has a vote on it. For anonymous requests
// UserVoted is always false.
type FeatureView struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username"`
	VoteCount   int       `json:"vote_count"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UserVoted   bool      `json:"user_voted"`
}

type VoteState struct {
	Voted bool `json:"voted"`
}
