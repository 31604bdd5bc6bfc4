package fundperf

import (
	"math"

	"github.com/etnz/fundperf/date"
)

// Horizons, in calendar days, of the trailing returns.
const (
	OneMonth    = 30
	ThreeMonths = 90
	SixMonths   = 180
	OneYear     = 365
	ThreeYears  = 1095
	FiveYears   = 1825
)

// daysPerYear converts elapsed calendar days into years.
const daysPerYear = 365.25

// Every function in this file returns a percentage at full precision, and
// false when the series does not hold enough observations to compute it.
// Rounding is done by the Reporter.

// change returns the percent change from start to end.
func change(start, end float64) float64 { return (end/start - 1) * 100 }

// compound returns the constant yearly rate turning start into end over years.
func compound(start, end, years float64) float64 {
	return (math.Pow(end/start, 1/years) - 1) * 100
}

// TrailingReturn returns the return from the price 'days' before 'on' to price.
//
// The reference price is the first observation on or after on-days, not the
// closest one: in a sparse series the horizon is shortened, never extended.
func TrailingReturn(h *date.History[float64], days int, on date.Date, price float64) (float64, bool) {
	_, start, ok := h.Since(on.Add(-days))
	if !ok {
		return 0, false
	}
	return change(start, price), true
}

// YTDReturn returns the return from the first observation of on's year to price.
func YTDReturn(h *date.History[float64], on date.Date, price float64) (float64, bool) {
	day, start, ok := h.Since(on.StartOf(date.Yearly))
	if !ok || day.After(on) {
		return 0, false
	}
	return change(start, price), true
}

// SinceInceptionReturn returns the return from the very first observation to price.
func SinceInceptionReturn(h *date.History[float64], price float64) (float64, bool) {
	if h.Len() == 0 {
		return 0, false
	}
	_, first := h.First()
	return change(first, price), true
}

// AnnualizedTrailingReturn returns the compound yearly rate over the
// observations of the last 'days' days of the series.
//
// It needs two observations in the window spanning a positive number of days.
func AnnualizedTrailingReturn(h *date.History[float64], days int) (float64, bool) {
	last, end := h.Latest()
	if h.Len() == 0 {
		return 0, false
	}
	w := h.Within(date.Between(last.Add(-days), last))
	if w.Len() < 2 {
		return 0, false
	}
	first, start := w.First()
	years := float64(last.Sub(first)) / daysPerYear
	if years <= 0 {
		return 0, false
	}
	return compound(start, end, years), true
}

// AnnualizedSinceInception returns the compound yearly rate over the whole series.
//
// A series spanning a single day has a rate of 0.
func AnnualizedSinceInception(h *date.History[float64]) (float64, bool) {
	if h.Len() == 0 {
		return 0, false
	}
	first, start := h.First()
	last, end := h.Latest()
	years := float64(last.Sub(first)) / daysPerYear
	if years <= 0 {
		return 0, true
	}
	return compound(start, end, years), true
}

// CalendarYearReturn returns the return between the first and the last
// observations of a calendar year.
//
// A year with less than two observations has no return, not a 0 one.
func CalendarYearReturn(h *date.History[float64], year int) (float64, bool) {
	jan1 := date.New(year, 1, 1)
	w := h.Within(date.NewRange(jan1, date.Yearly))
	if w.Len() < 2 {
		return 0, false
	}
	_, start := w.First()
	_, end := w.Latest()
	return change(start, end), true
}

// YearsOfHistory returns the number of years between the first and the last observations.
func YearsOfHistory(h *date.History[float64]) (float64, bool) {
	if h.Len() == 0 {
		return 0, false
	}
	first, _ := h.First()
	last, _ := h.Latest()
	return float64(last.Sub(first)) / daysPerYear, true
}
