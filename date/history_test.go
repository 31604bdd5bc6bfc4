package date

import "testing"

func TestAppend(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Test is about appending two values in reverse order and checking that everything is
	// as expected at every step of the way.

	if h.Len() != 0 {
		t.Errorf("History.Len() = %v want 0", h.Len())
	}

	h.Append(d1, v1)
	if h.Len() != 1 {
		t.Errorf("Append(d1, v1).Len() = %v want 1", h.Len())
	}

	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Errorf("Append(d2, v2).Len() = %v want 2", h.Len())
	}

	if h.days[1] != d1 {
		t.Errorf("history[1].day = %v want %v", h.days[0], d1)
	}
	if h.days[0] != d2 {
		t.Errorf("history[0].day = %v want %v", h.days[1], d2)
	}
	if h.values[1] != v1 {
		t.Errorf("history[1].value = %v want %v", h.values[0], v1)
	}
	if h.values[0] != v2 {
		t.Errorf("history[0].value = %v want %v", h.values[1], v2)
	}

}

func TestAppendOverwrite(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2024, 1, 2), 1).Append(New(2024, 1, 3), 2).Append(New(2024, 1, 2), 3)
	if h.Len() != 2 {
		t.Fatalf("Len() = %v want 2", h.Len())
	}
	if got, _ := h.Get(New(2024, 1, 2)); got != 3 {
		t.Errorf("Get(2024-01-02) = %v want 3", got)
	}
}

func TestFirstLatest(t *testing.T) {
	h := new(History[float64])
	if d, v := h.Latest(); !d.IsZero() || v != 0 {
		t.Errorf("empty Latest() = %v, %v want zero values", d, v)
	}
	h.Append(New(2024, 3, 1), 30).Append(New(2024, 1, 1), 10).Append(New(2024, 2, 1), 20)
	if d, v := h.First(); d != New(2024, 1, 1) || v != 10 {
		t.Errorf("First() = %v, %v want 2024-01-01, 10", d, v)
	}
	if d, v := h.Latest(); d != New(2024, 3, 1) || v != 30 {
		t.Errorf("Latest() = %v, %v want 2024-03-01, 30", d, v)
	}
}

func TestSince(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2024, 1, 1), 10).Append(New(2024, 1, 5), 15).Append(New(2024, 1, 9), 19)

	testCases := []struct {
		name    string
		day     Date
		want    Date
		wantOK  bool
		wantVal float64
	}{
		{"exact", New(2024, 1, 5), New(2024, 1, 5), true, 15},
		{"gap picks the next point", New(2024, 1, 2), New(2024, 1, 5), true, 15},
		{"before first", New(2023, 12, 1), New(2024, 1, 1), true, 10},
		{"after last", New(2024, 1, 10), Date{}, false, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, v, ok := h.Since(tc.day)
			if d != tc.want || v != tc.wantVal || ok != tc.wantOK {
				t.Errorf("Since(%v) = %v, %v, %v want %v, %v, %v", tc.day, d, v, ok, tc.want, tc.wantVal, tc.wantOK)
			}
		})
	}
}

func TestWithin(t *testing.T) {
	h := new(History[float64])
	for i := 1; i <= 10; i++ {
		h.Append(New(2024, 1, i), float64(i))
	}

	w := h.Within(Between(New(2024, 1, 3), New(2024, 1, 5)))
	if w.Len() != 3 {
		t.Fatalf("Within(3..5).Len() = %v want 3", w.Len())
	}
	if d, _ := w.First(); d != New(2024, 1, 3) {
		t.Errorf("Within(3..5).First() = %v want 2024-01-03", d)
	}
	if d, _ := w.Latest(); d != New(2024, 1, 5) {
		t.Errorf("Within(3..5).Latest() = %v want 2024-01-05", d)
	}

	// The window is a copy.
	w.Append(New(2024, 1, 4), 40)
	if v, _ := h.Get(New(2024, 1, 4)); v != 4 {
		t.Errorf("Within() shares storage with its source")
	}

	if got := h.Within(Between(New(2024, 2, 1), New(2024, 2, 5))).Len(); got != 0 {
		t.Errorf("Within(outside).Len() = %v want 0", got)
	}
	if got := h.Within(Between(New(2024, 1, 5), New(2024, 1, 3))).Len(); got != 0 {
		t.Errorf("Within(reversed).Len() = %v want 0", got)
	}
}
