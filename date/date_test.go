package date

import (
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	if got, want := New(2024, time.February, 30), New(2024, time.March, 1); got != want {
		t.Errorf("New(2024, 2, 30) = %v, want %v", got, want)
	}
	if got, want := New(2024, time.January, 0), New(2023, time.December, 31); got != want {
		t.Errorf("New(2024, 1, 0) = %v, want %v", got, want)
	}
}

func TestSub(t *testing.T) {
	testCases := []struct {
		a, b Date
		want int
	}{
		{MustParse("2023-12-31"), MustParse("2023-01-01"), 364},
		{MustParse("2024-12-31"), MustParse("2024-01-01"), 365}, // leap year
		{MustParse("2023-01-01"), MustParse("2023-01-01"), 0},
		{MustParse("2023-01-01"), MustParse("2023-01-31"), -30},
	}
	for _, tc := range testCases {
		if got := tc.a.Sub(tc.b); got != tc.want {
			t.Errorf("%v.Sub(%v) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if got, want := d.String(), "2025-07-01"; got != want {
		t.Errorf("Parse(2025-7-1).String() = %q, want %q", got, want)
	}
	if _, err := Parse("01/07/2025"); err == nil {
		t.Errorf("Parse(01/07/2025) expected an error")
	}
}

func TestStartEndOf(t *testing.T) {
	d := MustParse("2024-02-15")
	if got, want := d.StartOf(Yearly), MustParse("2024-01-01"); got != want {
		t.Errorf("StartOf(Yearly) = %v, want %v", got, want)
	}
	if got, want := d.EndOf(Yearly), MustParse("2024-12-31"); got != want {
		t.Errorf("EndOf(Yearly) = %v, want %v", got, want)
	}
	if got, want := d.EndOf(Monthly), MustParse("2024-02-29"); got != want {
		t.Errorf("EndOf(Monthly) = %v, want %v", got, want)
	}
}

func TestJSON(t *testing.T) {
	d := MustParse("2024-02-01")
	b, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error = %v", err)
	}
	var got Date
	if err := got.UnmarshalJSON(b); err != nil {
		t.Fatalf("UnmarshalJSON(%s) error = %v", b, err)
	}
	if got != d {
		t.Errorf("UnmarshalJSON(%s) = %v, want %v", b, got, d)
	}
}
