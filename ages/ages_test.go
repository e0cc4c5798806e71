package ages

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestAgeFixedClock(t *testing.T) {
	if age, ok := Age("15/06/1990", date(2024, 6, 20)); !ok || age != 34 {
		t.Fatalf("got %d ok=%v, want 34", age, ok)
	}
	// Birthday not yet reached this year.
	if age, ok := Age("15/06/1990", date(2024, 6, 10)); !ok || age != 33 {
		t.Fatalf("got %d ok=%v, want 33", age, ok)
	}
	// Same day counts as reached.
	if age, ok := Age("15/06/1990", date(2024, 6, 15)); !ok || age != 34 {
		t.Fatalf("got %d ok=%v, want 34", age, ok)
	}
}

func TestAgeRejectsNonDisplayShapes(t *testing.T) {
	for _, bad := range []string{"2024-01-01", "01/01", "invalid", "", "1/06/1990", "15/6/1990"} {
		if _, ok := Age(bad, date(2024, 1, 1)); ok {
			t.Fatalf("Age(%q) accepted", bad)
		}
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		age  int
		want Group
	}{
		{8, GroupChild},
		{10, GroupChild},
		{11, GroupTeen},
		{15, GroupTeen},
		{16, GroupAdult},
		{7, GroupAdult},
		{0, GroupAdult},
		{42, GroupAdult},
	}
	for _, c := range cases {
		if got := Classify(c.age); got != c.want {
			t.Fatalf("Classify(%d) = %s, want %s", c.age, got, c.want)
		}
	}
}

func TestGroupFromBirthdate(t *testing.T) {
	now := date(2026, 3, 1)
	if g, ok := GroupFromBirthdate("10/01/2017", now); !ok || g != GroupChild {
		t.Fatalf("got %s ok=%v", g, ok)
	}
	if g, ok := GroupFromBirthdate("10/01/2013", now); !ok || g != GroupTeen {
		t.Fatalf("got %s ok=%v", g, ok)
	}
	if _, ok := GroupFromBirthdate("not-a-date", now); ok {
		t.Fatal("invalid birthdate accepted")
	}
}
