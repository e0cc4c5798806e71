package subscriptions

import (
	"strings"

	"clubreg-backend/ages"
)

// Legacy name markers used when a plan row carries no explicit age group.
const (
	childToken = "kids"
	teenToken  = "teen"
)

// Eligible narrows plans down to the ones offered for the given discipline
// and age group. Until both a discipline and an age group are known the
// result is empty; that is the normal "nothing selectable yet" state, not an
// error. The filter is stable: source order is preserved.
func Eligible(plans []Plan, disciplineID int, group ages.Group) []Plan {
	out := make([]Plan, 0)
	if disciplineID == 0 || group == "" {
		return out
	}
	for _, p := range plans {
		if p.DisciplineID != disciplineID {
			continue
		}
		if matchesGroup(p, group) {
			out = append(out, p)
		}
	}
	return out
}

func matchesGroup(p Plan, group ages.Group) bool {
	if p.AgeGroup != "" {
		return p.AgeGroup == group
	}
	name := strings.ToLower(p.Name)
	switch group {
	case ages.GroupChild:
		return strings.Contains(name, childToken)
	case ages.GroupTeen:
		return strings.Contains(name, teenToken)
	default:
		return !strings.Contains(name, childToken) && !strings.Contains(name, teenToken)
	}
}
