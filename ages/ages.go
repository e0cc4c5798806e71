// Package ages derives a member's age and coarse age group from a birthdate
// entered as DD/MM/YYYY. The reference instant is passed in by the caller so
// the arithmetic stays deterministic under test.
package ages

import (
	"regexp"
	"strconv"
	"time"
)

// Group is the coarse classification driving plan eligibility.
type Group string

const (
	GroupChild Group = "child"
	GroupTeen  Group = "teen"
	GroupAdult Group = "adult"
)

var birthdateRe = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)

// Age returns the age in whole years at now. The second return is false when
// the input does not strictly match DD/MM/YYYY; that is an absence, not an
// error.
func Age(dateStr string, now time.Time) (int, bool) {
	m := birthdateRe.FindStringSubmatch(dateStr)
	if m == nil {
		return 0, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])

	age := now.Year() - year
	if int(now.Month()) < month || (int(now.Month()) == month && now.Day() < day) {
		age--
	}
	return age, true
}

// Classify maps an age to its group: 8-10 child, 11-15 teen, everything else
// adult. Ages below 8 intentionally fall into adult; the brackets mirror the
// club's seeded plan catalogue.
func Classify(age int) Group {
	switch {
	case age >= 8 && age <= 10:
		return GroupChild
	case age >= 11 && age <= 15:
		return GroupTeen
	default:
		return GroupAdult
	}
}

// GroupFromBirthdate composes Age and Classify, propagating the absent case.
func GroupFromBirthdate(dateStr string, now time.Time) (Group, bool) {
	age, ok := Age(dateStr, now)
	if !ok {
		return "", false
	}
	return Classify(age), true
}
