package models

// MatchReasonType categorizes a compatibility reason
type MatchReasonType string

const (
	MatchReasonSport    MatchReasonType = "sport"
	MatchReasonAge      MatchReasonType = "age"
	MatchReasonSkill    MatchReasonType = "skill"
	MatchReasonLocation MatchReasonType = "location"
	MatchReasonHosting  MatchReasonType = "hosting"
	MatchReasonGeneral  MatchReasonType = "general"
)

// MatchReason is a human-readable explanation of why two teams fit. Computed, never stored.
type MatchReason struct {
	Type        MatchReasonType `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
}
