package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{
			name:   "A day",
			in:     New(2025, time.September, 8),
			period: Daily,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 8)},
		},
		{
			name:   "A leap month",
			in:     New(2024, time.February, 15),
			period: Monthly,
			want:   Range{From: New(2024, time.February, 1), To: New(2024, time.February, 29)},
		},
		{
			name:   "A year",
			in:     New(2023, time.June, 1),
			period: Yearly,
			want:   Range{From: New(2023, time.January, 1), To: New(2023, time.December, 31)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestRangeContains(t *testing.T) {
	r := Between(MustParse("2024-02-01"), MustParse("2024-02-01"))
	if !r.Contains(MustParse("2024-02-01")) {
		t.Errorf("%v.Contains(2024-02-01) = false, want true", r)
	}
	if r.Contains(MustParse("2024-02-02")) {
		t.Errorf("%v.Contains(2024-02-02) = true, want false", r)
	}
	if got := r.Days(); got != 1 {
		t.Errorf("%v.Days() = %d, want 1", r, got)
	}
	empty := Between(MustParse("2024-02-02"), MustParse("2024-02-01"))
	if !empty.IsEmpty() || empty.Days() != 0 {
		t.Errorf("%v should be empty", empty)
	}
}

func TestParsePeriod(t *testing.T) {
	for in, want := range map[string]Period{"day": Daily, " Month ": Monthly, "yearly": Yearly} {
		got, err := ParsePeriod(in)
		if err != nil || got != want {
			t.Errorf("ParsePeriod(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParsePeriod("fortnight"); err == nil {
		t.Errorf("ParsePeriod(fortnight) expected an error")
	}
}
