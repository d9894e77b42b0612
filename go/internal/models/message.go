package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single entry in a match request conversation
type Message struct {
	ID             uuid.UUID  `json:"id"`
	MatchRequestID uuid.UUID  `json:"match_request_id"`
	SenderTeamID   uuid.UUID  `json:"sender_team_id"`
	ReceiverTeamID uuid.UUID  `json:"receiver_team_id"`
	Message        string     `json:"message"`
	IsRead         bool       `json:"is_read"`
	ReadAt         *time.Time `json:"read_at,omitempty"`
	SentAt         time.Time  `json:"sent_at"`
}
