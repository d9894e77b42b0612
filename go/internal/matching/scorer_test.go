package matching

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
)

var soccer = &models.Sport{ID: uuid.New(), Name: "Soccer"}

func team(mutate func(*models.Team)) *models.Team {
	t := &models.Team{
		ID:         uuid.New(),
		SportID:    soccer.ID,
		Sport:      soccer,
		AgeGroup:   "U12",
		SkillLevel: models.SkillLevelAdvanced,
		City:       "Austin",
		State:      "TX",
		HomeVenue:  "Zilker Park",
	}
	if mutate != nil {
		mutate(t)
	}
	return t
}

func titles(reasons []models.MatchReason) []string {
	out := make([]string, len(reasons))
	for i, r := range reasons {
		out[i] = r.Title
	}
	return out
}

func TestScoreMatch_IdenticalTeams(t *testing.T) {
	reasons := ScoreMatch(team(nil), team(nil))

	wantTypes := []models.MatchReasonType{
		models.MatchReasonSport, models.MatchReasonAge, models.MatchReasonSkill,
		models.MatchReasonLocation, models.MatchReasonHosting,
	}
	if len(reasons) != len(wantTypes) {
		t.Fatalf("got %v, want %d reasons", titles(reasons), len(wantTypes))
	}
	for i, want := range wantTypes {
		if reasons[i].Type != want {
			t.Errorf("reason %d type = %s, want %s", i, reasons[i].Type, want)
		}
	}
	if reasons[3].Title != "Same City" {
		t.Errorf("location title = %q, want Same City", reasons[3].Title)
	}
	if reasons[4].Title != "Both Can Host" {
		t.Errorf("hosting title = %q, want Both Can Host", reasons[4].Title)
	}
	if reasons[0].Description != "Both teams play Soccer" {
		t.Errorf("sport description = %q", reasons[0].Description)
	}
}

func TestScoreMatch_Rules(t *testing.T) {
	tests := []struct {
		name   string
		theirs func(*models.Team)
		title  string
		absent models.MatchReasonType
	}{
		{"compatible ages", func(t *models.Team) { t.AgeGroup = "U14" }, "Compatible Ages", ""},
		{"age gap too wide", func(t *models.Team) { t.AgeGroup = "U15" }, "", models.MatchReasonAge},
		{"unparseable age", func(t *models.Team) { t.AgeGroup = "Adult" }, "", models.MatchReasonAge},
		{"skill one apart", func(t *models.Team) { t.SkillLevel = models.SkillLevelElite }, "Compatible Skill Level", ""},
		{"skill two apart", func(t *models.Team) { t.SkillLevel = models.SkillLevelBeginner }, "", models.MatchReasonSkill},
		{"same state only", func(t *models.Team) { t.City = "Houston" }, "Same State", ""},
		{"different state", func(t *models.Team) { t.State = "MN" }, "", models.MatchReasonLocation},
		{"you can host", func(t *models.Team) { t.HomeVenue = "" }, "You Can Host", ""},
		{"different sport", func(t *models.Team) { t.SportID = uuid.New() }, "", models.MatchReasonSport},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reasons := ScoreMatch(team(nil), team(tt.theirs))
			if tt.title != "" && !hasTitle(reasons, tt.title) {
				t.Errorf("reasons %v missing %q", titles(reasons), tt.title)
			}
			if tt.absent != "" && hasType(reasons, tt.absent) {
				t.Errorf("reasons %v should have no %s reason", titles(reasons), tt.absent)
			}
		})
	}
}

func TestScoreMatch_TheyCanHost(t *testing.T) {
	reasons := ScoreMatch(team(func(t *models.Team) { t.HomeVenue = "" }), team(nil))
	for _, r := range reasons {
		if r.Type == models.MatchReasonHosting {
			if r.Title != "They Can Host" || r.Description != "Play at Zilker Park" {
				t.Errorf("hosting reason = %+v", r)
			}
			return
		}
	}
	t.Error("missing hosting reason")
}

func TestScoreMatch_FallbackOnLoneReason(t *testing.T) {
	theirs := team(func(t *models.Team) {
		t.AgeGroup = "Adult"
		t.SkillLevel = models.SkillLevelBeginner
		t.State = "MN"
		t.City = "Duluth"
		t.HomeVenue = ""
	})
	yours := team(func(t *models.Team) { t.HomeVenue = "" })

	reasons := ScoreMatch(yours, theirs)
	if len(reasons) != 2 {
		t.Fatalf("got %v, want sport plus fallback", titles(reasons))
	}
	if reasons[1].Type != models.MatchReasonGeneral || reasons[1].Title != "Looking for Matches" {
		t.Errorf("fallback = %+v", reasons[1])
	}
}

func TestScoreMatch_NoReasons(t *testing.T) {
	yours := team(func(t *models.Team) { t.HomeVenue = "" })
	theirs := team(func(t *models.Team) {
		t.SportID = uuid.New()
		t.AgeGroup = "Adult"
		t.SkillLevel = models.SkillLevelBeginner
		t.State = "MN"
		t.HomeVenue = ""
	})
	if reasons := ScoreMatch(yours, theirs); len(reasons) != 0 {
		t.Errorf("got %v, want none", titles(reasons))
	}
}

func hasTitle(reasons []models.MatchReason, title string) bool {
	for _, r := range reasons {
		if r.Title == title {
			return true
		}
	}
	return false
}

func hasType(reasons []models.MatchReason, typ models.MatchReasonType) bool {
	for _, r := range reasons {
		if r.Type == typ {
			return true
		}
	}
	return false
}
