package fundperf

import (
	"fmt"
	"strings"

	"github.com/etnz/fundperf/date"
)

// Window is a preset chart window, ending on the latest date of the store.
type Window string

const (
	Window1M  Window = "1M"
	Window3M  Window = "3M"
	Window6M  Window = "6M"
	WindowYTD Window = "YTD"
	Window1Y  Window = "1Y"
	Window3Y  Window = "3Y"
	Window5Y  Window = "5Y"
	WindowMax Window = "MAX"
)

// DefaultWindow is the window of the chart when none is chosen.
const DefaultWindow = Window1Y

// Windows lists the presets in display order.
var Windows = []Window{Window1M, Window3M, Window6M, WindowYTD, Window1Y, Window3Y, Window5Y, WindowMax}

// ParseWindow returns the preset named s, case insensitive. An empty s is
// the DefaultWindow.
func ParseWindow(s string) (Window, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return DefaultWindow, nil
	}
	for _, w := range Windows {
		if string(w) == s {
			return w, nil
		}
	}
	return "", fmt.Errorf("unknown window %q, want one of %v", s, Windows)
}

// days returns the length of fixed windows, 0 otherwise.
func (w Window) days() int {
	switch w {
	case Window1M:
		return OneMonth
	case Window3M:
		return ThreeMonths
	case Window6M:
		return SixMonths
	case Window1Y:
		return OneYear
	case Window3Y:
		return ThreeYears
	case Window5Y:
		return FiveYears
	}
	return 0
}

// Range resolves the window against span, the full range of the data.
//
// The start is never before span.From.
func (w Window) Range(span date.Range) date.Range {
	end := span.To
	var start date.Date
	switch w {
	case WindowMax:
		start = span.From
	case WindowYTD:
		start = end.StartOf(date.Yearly)
	default:
		days := w.days()
		if days == 0 {
			days = DefaultWindow.days()
		}
		start = end.Add(-days)
	}
	if start.Before(span.From) {
		start = span.From
	}
	return date.Between(start, end)
}

// WindowRange resolves w against the span of the store. It returns
// ErrNoData if the store has no reference dates.
func (s *Store) WindowRange(w Window) (date.Range, error) {
	span, ok := s.Span()
	if !ok {
		return date.Range{}, ErrNoData
	}
	return w.Range(span), nil
}
