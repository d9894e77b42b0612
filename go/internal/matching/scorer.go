// Package matching explains why two teams are a good fit.
package matching

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/mcdev12/teamtango/go/internal/models"
)

const maxCompatibleAgeGap = 2

// ScoreMatch returns the reasons yours and theirs are compatible, in the order
// sport, age, skill, location, hosting. A lone reason gets a general one added.
func ScoreMatch(yours, theirs *models.Team) []models.MatchReason {
	var reasons []models.MatchReason
	add := func(r *models.MatchReason) {
		if r != nil {
			reasons = append(reasons, *r)
		}
	}

	add(sportReason(yours, theirs))
	add(ageReason(yours, theirs))
	add(skillReason(yours, theirs))
	add(locationReason(yours, theirs))
	add(hostingReason(yours, theirs))

	if len(reasons) == 1 {
		reasons = append(reasons, models.MatchReason{
			Type:        models.MatchReasonGeneral,
			Title:       "Looking for Matches",
			Description: "Both teams are actively seeking games",
		})
	}
	return reasons
}

func sportReason(yours, theirs *models.Team) *models.MatchReason {
	if yours.SportID == uuid.Nil || yours.SportID != theirs.SportID {
		return nil
	}
	name := yours.SportName()
	if name == "" {
		name = theirs.SportName()
	}
	if name == "" {
		name = "the same sport"
	}
	return &models.MatchReason{
		Type:        models.MatchReasonSport,
		Title:       "Same Sport",
		Description: fmt.Sprintf("Both teams play %s", name),
	}
}

func ageReason(yours, theirs *models.Team) *models.MatchReason {
	if yours.AgeGroup == "" || theirs.AgeGroup == "" {
		return nil
	}
	if yours.AgeGroup == theirs.AgeGroup {
		return &models.MatchReason{
			Type:        models.MatchReasonAge,
			Title:       "Same Age Group",
			Description: fmt.Sprintf("Both teams are %s", yours.AgeGroup),
		}
	}

	yourAge, ok1 := parseAge(yours.AgeGroup)
	theirAge, ok2 := parseAge(theirs.AgeGroup)
	if !ok1 || !ok2 || abs(yourAge-theirAge) > maxCompatibleAgeGap {
		return nil
	}
	return &models.MatchReason{
		Type:        models.MatchReasonAge,
		Title:       "Compatible Ages",
		Description: fmt.Sprintf("Close age groups: %s vs %s", yours.AgeGroup, theirs.AgeGroup),
	}
}

// parseAge keeps only the digits of an age group label, so "U12" is 12
func parseAge(group string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, group)
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	return n, err == nil
}

func skillReason(yours, theirs *models.Team) *models.MatchReason {
	if !yours.SkillLevel.Valid() || !theirs.SkillLevel.Valid() {
		return nil
	}
	switch abs(yours.SkillLevel.Ordinal() - theirs.SkillLevel.Ordinal()) {
	case 0:
		return &models.MatchReason{
			Type:        models.MatchReasonSkill,
			Title:       "Perfect Skill Match",
			Description: fmt.Sprintf("Both teams are %s level", yours.SkillLevel),
		}
	case 1:
		return &models.MatchReason{
			Type:        models.MatchReasonSkill,
			Title:       "Compatible Skill Level",
			Description: fmt.Sprintf("Close skill levels: %s vs %s", yours.SkillLevel, theirs.SkillLevel),
		}
	default:
		return nil
	}
}

func locationReason(yours, theirs *models.Team) *models.MatchReason {
	if yours.State == "" || yours.State != theirs.State {
		return nil
	}
	if yours.City != "" && yours.City == theirs.City {
		return &models.MatchReason{
			Type:        models.MatchReasonLocation,
			Title:       "Same City",
			Description: fmt.Sprintf("Both teams are in %s, %s", yours.City, yours.State),
		}
	}
	return &models.MatchReason{
		Type:        models.MatchReasonLocation,
		Title:       "Same State",
		Description: fmt.Sprintf("Both teams are in %s", yours.State),
	}
}

func hostingReason(yours, theirs *models.Team) *models.MatchReason {
	switch {
	case yours.HasHomeVenue() && theirs.HasHomeVenue():
		return &models.MatchReason{
			Type:        models.MatchReasonHosting,
			Title:       "Both Can Host",
			Description: "Flexible venue options for games",
		}
	case yours.HasHomeVenue():
		return &models.MatchReason{
			Type:        models.MatchReasonHosting,
			Title:       "You Can Host",
			Description: fmt.Sprintf("Play at %s", yours.HomeVenue),
		}
	case theirs.HasHomeVenue():
		return &models.MatchReason{
			Type:        models.MatchReasonHosting,
			Title:       "They Can Host",
			Description: fmt.Sprintf("Play at %s", theirs.HomeVenue),
		}
	default:
		return nil
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
