package models

import (
	"time"

	"github.com/google/uuid"
)

// InteractionKind is the swipe decision one team made about another
type InteractionKind string

const (
	InteractionLike    InteractionKind = "like"
	InteractionDislike InteractionKind = "dislike"
)

// Valid reports whether k is a known interaction kind
func (k InteractionKind) Valid() bool {
	return k == InteractionLike || k == InteractionDislike
}

// Interaction records a like or dislike from an acting team toward a target team.
// At most one exists per ordered (UserTeamID, TargetTeamID) pair.
type Interaction struct {
	ID           uuid.UUID       `json:"id"`
	UserTeamID   uuid.UUID       `json:"user_team_id"`
	TargetTeamID uuid.UUID       `json:"target_team_id"`
	Kind         InteractionKind `json:"interaction_type"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// LastActivity returns the most recent timestamp on the interaction
func (i *Interaction) LastActivity() time.Time {
	if i.UpdatedAt.After(i.CreatedAt) {
		return i.UpdatedAt
	}
	return i.CreatedAt
}

// InteractionStats aggregates interactions received by a team
type InteractionStats struct {
	TargetTeamID      uuid.UUID `json:"target_team_id"`
	LikeCount         int       `json:"like_count"`
	DislikeCount      int       `json:"dislike_count"`
	TotalInteractions int       `json:"total_interactions"`
}
