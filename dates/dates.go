// Package dates holds the DD/MM/YYYY input mask and the reorder between the
// display shape (DD/MM/YYYY) and the storage shape (YYYY-MM-DD).
package dates

import "regexp"

var (
	displayRe = regexp.MustCompile(`^(\d{2})/(\d{2})/(\d{4})$`)
	isoRe     = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})$`)
)

// Mask re-applies the DD/MM/YYYY mask to a raw keystroke-accumulated value.
// Non-digits are stripped and the digit run is truncated to 8. The trailing
// slash after the day is only appended while the user is typing forward;
// deletion is detected by comparing the raw string lengths, so removing a
// mask slash itself can be misread as typing and the slash re-appended.
// Total for any input, no hidden state.
func Mask(raw, previous string) string {
	digits := digitsOf(raw)
	if len(digits) > 8 {
		digits = digits[:8]
	}
	switch {
	case len(digits) >= 4:
		return digits[:2] + "/" + digits[2:4] + "/" + digits[4:]
	case len(digits) >= 2 && len(raw) >= len(previous):
		return digits[:2] + "/" + digits[2:]
	default:
		return digits
	}
}

// ToISO reorders a DD/MM/YYYY value into YYYY-MM-DD. The check is on token
// shape only; day-of-month bounds are not validated.
func ToISO(display string) (string, bool) {
	m := displayRe.FindStringSubmatch(display)
	if m == nil {
		return "", false
	}
	return m[3] + "-" + m[2] + "-" + m[1], true
}

// ToDisplay is the inverse reorder, YYYY-MM-DD into DD/MM/YYYY.
func ToDisplay(iso string) (string, bool) {
	m := isoRe.FindStringSubmatch(iso)
	if m == nil {
		return "", false
	}
	return m[3] + "/" + m[2] + "/" + m[1], true
}

func digitsOf(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			out = append(out, s[i])
		}
	}
	return string(out)
}
