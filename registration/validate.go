package registration

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"clubreg-backend/dates"
)

// Input is the submitted registration form. Birthdate arrives in the display
// shape DD/MM/YYYY; gender arrives as the UI-facing label.
type Input struct {
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Birthdate      string `json:"birthdate"`
	Gender         string `json:"gender"`
	Phone          string `json:"phone"`
	EmergencyPhone string `json:"emergency_phone"`
	Email          string `json:"email"`
	DisciplineID   int    `json:"discipline_id"`
	PlanID         int    `json:"plan_id"`
	IdempotencyKey string `json:"idempotency_key"`
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// UI-facing gender labels mapped to their storage values.
var genderValues = map[string]string{
	"male":   "M",
	"female": "F",
}

// StorageGender maps a gender label to its storage value; empty when the
// label is not one of the two accepted values.
func StorageGender(label string) string {
	return genderValues[strings.ToLower(strings.TrimSpace(label))]
}

// Validate applies the field rules and returns one message per failing
// field. An empty map means the input is submittable.
func Validate(in Input) map[string]string {
	errs := map[string]string{}
	if msg := nameError(in.FirstName); msg != "" {
		errs["first_name"] = msg
	}
	if msg := nameError(in.LastName); msg != "" {
		errs["last_name"] = msg
	}
	if _, ok := dates.ToISO(in.Birthdate); !ok {
		errs["birthdate"] = "must match DD/MM/YYYY"
	}
	if StorageGender(in.Gender) == "" {
		errs["gender"] = "must be male or female"
	}
	if !isTenDigits(in.Phone) {
		errs["phone"] = "must be exactly 10 digits"
	}
	if !isTenDigits(in.EmergencyPhone) {
		errs["emergency_phone"] = "must be exactly 10 digits"
	}
	if !emailRe.MatchString(in.Email) {
		errs["email"] = "must be a valid email address"
	}
	if in.DisciplineID <= 0 {
		errs["discipline_id"] = "required"
	}
	if in.PlanID <= 0 {
		errs["plan_id"] = "required"
	}
	return errs
}

func nameError(s string) string {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 2 {
		return "must be at least 2 characters"
	}
	for _, r := range s {
		if unicode.IsDigit(r) {
			return "must not contain digits"
		}
	}
	return ""
}

func isTenDigits(s string) bool {
	if len(s) != 10 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
