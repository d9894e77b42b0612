package messages

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
	"github.com/mcdev12/teamtango/go/internal/realtime"
)

var now = time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)

func TestFormatDate(t *testing.T) {
	tests := []struct {
		date time.Time
		want string
	}{
		{now.Add(-2 * time.Hour), "Today"},
		{now.AddDate(0, 0, 1), "Tomorrow"},
		{time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC), "Saturday, March 14"},
		{time.Date(2027, time.January, 2, 0, 0, 0, 0, time.UTC), "Saturday, January 2, 2027"},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.date, now); got != tt.want {
			t.Errorf("FormatDate(%v) = %q, want %q", tt.date, got, tt.want)
		}
	}
}

func TestFormatAndParseWithDates(t *testing.T) {
	dates := []time.Time{now, time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)}
	full := FormatWithDates("Want to play?", dates, now)

	if want := "Want to play?\n\n📅 Proposed Dates:\n• Today\n• Saturday, March 14"; full != want {
		t.Fatalf("FormatWithDates = %q", full)
	}

	parsed := ParseWithDates(full)
	if !parsed.HasDates || parsed.Text != "Want to play?" {
		t.Fatalf("ParseWithDates = %+v", parsed)
	}
	if len(parsed.Dates) != 2 || parsed.Dates[1] != "Saturday, March 14" {
		t.Errorf("dates = %v", parsed.Dates)
	}

	back := ParseDates(parsed.Dates, now)
	if len(back) != 2 || back[1].Day() != 14 || back[1].Year() != 2026 {
		t.Errorf("ParseDates = %v", back)
	}
}

func TestParseWithDates_Plain(t *testing.T) {
	for _, msg := range []string{"", "See you there", "Header only\n\n📅 Proposed Dates:\n"} {
		if p := ParseWithDates(msg); p.HasDates || p.Text != msg {
			t.Errorf("ParseWithDates(%q) = %+v", msg, p)
		}
	}
	if got := FormatWithDates("hi", nil, now); got != "hi" {
		t.Errorf("no dates should leave text unchanged, got %q", got)
	}
}

func TestParseDates_SkipsUnreadable(t *testing.T) {
	got := ParseDates([]string{"tomorrow", "someday", "2026-04-01"}, now)
	if len(got) != 2 {
		t.Fatalf("ParseDates = %v", got)
	}
	if got[0].Day() != 11 || got[1].Month() != time.April {
		t.Errorf("ParseDates = %v", got)
	}
}

func TestPreview(t *testing.T) {
	if got := Preview("Game?", 0); got != "Game?" {
		t.Errorf("Preview 0 = %q", got)
	}
	if got := Preview("Game?", 1); got != "Game? (includes 1 date)" {
		t.Errorf("Preview 1 = %q", got)
	}
	if got := Preview("Game?", 3); got != "Game? (includes 3 dates)" {
		t.Errorf("Preview 3 = %q", got)
	}
}

func TestUnreadTracker(t *testing.T) {
	mine, theirs := uuid.New(), uuid.New()
	tracker := NewUnreadTracker([]uuid.UUID{mine}, map[uuid.UUID]int{mine: 1})

	var changes []int
	tracker.OnChange(func(teamID uuid.UUID, count int) { changes = append(changes, count) })

	incoming := models.Message{ID: uuid.New(), SenderTeamID: theirs, ReceiverTeamID: mine}
	outgoing := models.Message{ID: uuid.New(), SenderTeamID: mine, ReceiverTeamID: theirs}
	read := incoming
	read.IsRead = true

	steps := []struct {
		ev   realtime.MessageEvent
		want int
	}{
		{realtime.MessageEvent{Op: realtime.OpInsert, Message: incoming}, 2},
		{realtime.MessageEvent{Op: realtime.OpInsert, Message: outgoing}, 2},
		{realtime.MessageEvent{Op: realtime.OpUpdate, Message: read, Old: &incoming}, 1},
		{realtime.MessageEvent{Op: realtime.OpUpdate, Message: read, Old: &read}, 1},
		{realtime.MessageEvent{Op: realtime.OpDelete, Message: incoming}, 0},
		{realtime.MessageEvent{Op: realtime.OpDelete, Message: incoming}, 0},
	}
	for i, step := range steps {
		tracker.Apply(step.ev)
		if got := tracker.Count(mine); got != step.want {
			t.Fatalf("step %d: count = %d, want %d", i, got, step.want)
		}
	}
	if len(changes) != 3 {
		t.Errorf("onChange calls = %v, want 3", changes)
	}
	if tracker.Total() != 0 {
		t.Errorf("Total = %d", tracker.Total())
	}
}

func TestUnreadTrackerRun(t *testing.T) {
	mine := uuid.New()
	tracker := NewUnreadTracker([]uuid.UUID{mine}, nil)

	events := make(chan realtime.MessageEvent, 2)
	events <- realtime.MessageEvent{Op: realtime.OpInsert, Message: models.Message{ReceiverTeamID: mine}}
	events <- realtime.MessageEvent{Op: realtime.OpInsert, Message: models.Message{ReceiverTeamID: mine}}
	close(events)

	tracker.Run(context.Background(), events)
	if tracker.Count(mine) != 2 {
		t.Errorf("count = %d, want 2", tracker.Count(mine))
	}
}
