package interactions

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
)

var (
	// ErrInteractionNotFound is returned when no interaction exists for a pair
	ErrInteractionNotFound = errors.New("interaction not found")
	// ErrNotOwnTeam is returned when the acting team is not owned by the caller
	ErrNotOwnTeam = errors.New("acting team is not owned by the current user")
	// ErrSelfInteraction is returned when a team targets itself
	ErrSelfInteraction = errors.New("a team cannot interact with itself")
	// ErrInvalidKind is returned for an unknown interaction kind
	ErrInvalidKind = errors.New("interaction kind must be like or dislike")
)

// Pair is the ordered (acting, target) key of an interaction
type Pair struct {
	Acting uuid.UUID
	Target uuid.UUID
}

// Reverse returns the pair seen from the target's side
func (p Pair) Reverse() Pair {
	return Pair{Acting: p.Target, Target: p.Acting}
}

// Direction describes who liked whom between two teams
type Direction string

const (
	DirectionOutgoing Direction = "outgoing"
	DirectionIncoming Direction = "incoming"
	DirectionMutual   Direction = "mutual"
)

// Relationship is the like state between the current team and another team
type Relationship struct {
	OtherTeamID  uuid.UUID           `json:"other_team_id"`
	Direction    Direction           `json:"direction"`
	Outgoing     *models.Interaction `json:"outgoing,omitempty"`
	Incoming     *models.Interaction `json:"incoming,omitempty"`
	LastActivity time.Time           `json:"last_activity"`
}
