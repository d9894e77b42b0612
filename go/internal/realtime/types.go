package realtime

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
)

// Operation is the row change that produced a notification
type Operation string

const (
	OpInsert Operation = "INSERT"
	OpUpdate Operation = "UPDATE"
	OpDelete Operation = "DELETE"
)

// MessageEvent is a change to a team message row. Message holds the new row,
// or the deleted row for deletes; Old is set when the trigger includes it.
type MessageEvent struct {
	Op      Operation       `json:"op"`
	Message models.Message  `json:"message"`
	Old     *models.Message `json:"old,omitempty"`
}

// Involves reports whether any of the teams sent or received the message
func (e MessageEvent) Involves(teams map[uuid.UUID]bool) bool {
	if teams[e.Message.SenderTeamID] || teams[e.Message.ReceiverTeamID] {
		return true
	}
	return e.Old != nil && (teams[e.Old.SenderTeamID] || teams[e.Old.ReceiverTeamID])
}

// notification is the JSON payload sent by the team_messages trigger
type notification struct {
	Event     string          `json:"event"`
	Record    *models.Message `json:"record"`
	OldRecord *models.Message `json:"old_record"`
}

// ParseNotification decodes a NOTIFY payload
func ParseNotification(payload string) (MessageEvent, error) {
	var n notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return MessageEvent{}, fmt.Errorf("failed to decode message notification: %w", err)
	}

	ev := MessageEvent{Op: Operation(strings.ToUpper(n.Event)), Old: n.OldRecord}
	switch ev.Op {
	case OpInsert, OpUpdate:
		if n.Record == nil {
			return MessageEvent{}, fmt.Errorf("%s notification without record", ev.Op)
		}
		ev.Message = *n.Record
	case OpDelete:
		switch {
		case n.OldRecord != nil:
			ev.Message = *n.OldRecord
		case n.Record != nil:
			ev.Message = *n.Record
		default:
			return MessageEvent{}, fmt.Errorf("DELETE notification without record")
		}
	default:
		return MessageEvent{}, fmt.Errorf("unknown notification event %q", n.Event)
	}
	return ev, nil
}
