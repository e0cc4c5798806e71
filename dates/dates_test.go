package dates

import (
	"strings"
	"testing"
)

func TestMaskProgressiveTyping(t *testing.T) {
	cases := []struct {
		raw, previous, want string
	}{
		{"1", "", "1"},
		{"15", "1", "15/"},
		{"15/0", "15/", "15/0"},
		{"15/06", "15/0", "15/06/"},
		{"15/061", "15/06/", "15/06/1"},
		{"15/06/1990", "15/06/199", "15/06/1990"},
	}
	for _, c := range cases {
		if got := Mask(c.raw, c.previous); got != c.want {
			t.Fatalf("Mask(%q, %q) = %q, want %q", c.raw, c.previous, got, c.want)
		}
	}
}

func TestMaskDeletionSkipsDaySlash(t *testing.T) {
	// Shrinking input must not re-append the slash after the day.
	if got := Mask("15", "15/"); got != "15" {
		t.Fatalf("got %q, want %q", got, "15")
	}
	// Known quirk: deleting only the slash leaves the digit count intact but
	// the raw string shorter, so the comparison still treats it as deletion.
	if got := Mask("150", "15/0"); got != "150" {
		t.Fatalf("got %q, want %q", got, "150")
	}
}

func TestMaskTruncatesAndStrips(t *testing.T) {
	if got := Mask("15/06/19901234", ""); got != "15/06/1990" {
		t.Fatalf("got %q", got)
	}
	if got := Mask("1a5b0c6", "x"); got != "15/06/" {
		t.Fatalf("got %q", got)
	}
}

func TestMaskOutputShape(t *testing.T) {
	// For digit-only forward typing the output holds only digits plus at most
	// two slashes, fixed at offsets 2 and 5.
	inputs := []string{"", "1", "12", "123", "1234", "12345", "123456", "1234567", "12345678"}
	for _, in := range inputs {
		out := Mask(in, "")
		if n := strings.Count(out, "/"); n > 2 {
			t.Fatalf("Mask(%q) = %q: too many slashes", in, out)
		}
		for i := 0; i < len(out); i++ {
			if out[i] == '/' && i != 2 && i != 5 {
				t.Fatalf("Mask(%q) = %q: slash at offset %d", in, out, i)
			}
		}
	}
}

func TestToISO(t *testing.T) {
	if got, ok := ToISO("15/06/1990"); !ok || got != "1990-06-15" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	for _, bad := range []string{"1990-06-15", "15/06/90", "15-06-1990", "", "invalid"} {
		if _, ok := ToISO(bad); ok {
			t.Fatalf("ToISO(%q) accepted", bad)
		}
	}
	// Not calendar-aware: the reorder alone is the contract.
	if got, ok := ToISO("31/02/2000"); !ok || got != "2000-02-31" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
}

func TestToDisplay(t *testing.T) {
	if got, ok := ToDisplay("1990-06-15"); !ok || got != "15/06/1990" {
		t.Fatalf("got %q ok=%v", got, ok)
	}
	if _, ok := ToDisplay("15/06/1990"); ok {
		t.Fatal("display shape accepted as ISO")
	}
}
