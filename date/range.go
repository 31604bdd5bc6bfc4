package date

import "fmt"

// Range represents a range of dates, both boundaries included.
type Range struct{ From, To Date }

// NewRange return a well known period
func NewRange(d Date, period Period) Range {
	return Range{From: d.StartOf(period), To: d.EndOf(period)}
}

// Between returns the range [from, to].
func Between(from, to Date) Range { return Range{From: from, To: to} }

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// IsEmpty reports whether no date can be contained, that is To is before From.
func (r Range) IsEmpty() bool { return r.To.Before(r.From) }

// Days returns the number of days in the range, boundaries included.
func (r Range) Days() int {
	if r.IsEmpty() {
		return 0
	}
	return r.To.Sub(r.From) + 1
}

// String returns the range as "from..to".
func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
