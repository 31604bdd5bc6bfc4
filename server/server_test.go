package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/chart"
	"github.com/etnz/fundperf/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func series(start date.Date, prices ...float64) *date.History[float64] {
	h := new(date.History[float64])
	for i, p := range prices {
		h.Append(start.Add(i), p)
	}
	return h
}

// testStore has funds A, B and C. C has no USD price.
func testStore() *fundperf.Store {
	start := date.New(2024, 3, 1)
	funds := []fundperf.Fund{{Name: "A", Series: "B"}, {Name: "B", Series: "A"}, {Name: "C", Series: "F"}}
	clp := fundperf.NewTable(fundperf.CLP, map[string]*date.History[float64]{
		"A": series(start, 1000, 1010, 1020, 1030),
		"B": series(start, 500, 490, 480, 470),
		"C": series(start, 10, 11, 12, 13),
	})
	usd := fundperf.NewTable(fundperf.USD, map[string]*date.History[float64]{
		"A": series(start, 1, 1.01, 1.02, 1.03),
		"B": series(start, 2, 2.1, 2.2, 2.3),
	})
	return fundperf.NewStore("test", funds, clp, usd)
}

func newTestServer(store *fundperf.Store) *Server {
	return New(Config{
		Log:      zerolog.Nop(),
		Reporter: fundperf.NewReporter(store),
		DevMode:  true,
	})
}

// do sends a request and returns the response.
func do(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// doJSON sends a request and decodes its JSON response.
func doJSON(t *testing.T, s *Server, method, target, body string) (int, any) {
	t.Helper()
	rec := do(t, s, method, target, body)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	var v any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "response: %s", rec.Body.String())
	return rec.Code, v
}

func get(t *testing.T, path string, v any) any {
	t.Helper()
	got, err := jsonpath.Get(path, v)
	require.NoError(t, err, "jsonpath %s", path)
	return got
}

func TestHealth(t *testing.T) {
	code, v := doJSON(t, newTestServer(testStore()), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, get(t, "$.loaded", v))
	assert.Equal(t, 3.0, get(t, "$.funds", v))

	code, v = doJSON(t, newTestServer(fundperf.EmptyStore(fundperf.ErrNoWorkbook)), "GET", "/health", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, get(t, "$.loaded", v))
	assert.Equal(t, fundperf.ErrNoWorkbook.Error(), get(t, "$.error", v))
}

func TestFunds(t *testing.T) {
	code, v := doJSON(t, newTestServer(testStore()), "GET", "/api/funds", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"A", "B", "C"}, get(t, "$.funds[*].fund", v))
	assert.Equal(t, "B", get(t, "$.funds[0].series", v))
	assert.Equal(t, 1030.0, get(t, "$.funds[0].latest.CLP.price", v))
	assert.Equal(t, "$1.03", get(t, "$.funds[0].latest.USD.display", v))
	assert.Equal(t, "1Y", get(t, "$.default_window", v))
	assert.Equal(t, "2024-03-04", get(t, "$.span.to", v))
}

func TestReports(t *testing.T) {
	s := newTestServer(testStore())

	code, v := doJSON(t, s, "GET", "/api/reports/cumulative?currency=usd&funds=A,C", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "USD", get(t, "$.currency", v))
	assert.Equal(t, []any{"A"}, get(t, "$.rows[*][0]", v))
	assert.Nil(t, get(t, "$.rows[0][3]", v), "TAC")
	assert.Equal(t, 3.0, get(t, "$.rows[0][10]", v), "ITD")

	code, v = doJSON(t, s, "GET", "/api/reports/cumulative?funds=A,C", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"A", "C"}, get(t, "$.rows[*][0]", v))

	code, v = doJSON(t, s, "GET", "/api/reports/by-year", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Fund", "Series", "Currency", "2024"}, get(t, "$.columns", v))
	assert.Len(t, get(t, "$.rows", v), 3, "default selection")

	code, v = doJSON(t, s, "GET", "/api/reports/annualized?funds=B", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "annualized", get(t, "$.kind", v))
}

func TestReports_Errors(t *testing.T) {
	s := newTestServer(testStore())
	tests := []struct {
		name   string
		target string
		status int
	}{
		{"unknown report", "/api/reports/monthly", http.StatusBadRequest},
		{"unknown currency", "/api/reports/cumulative?currency=EUR", http.StatusBadRequest},
		{"empty selection", "/api/reports/cumulative?funds=", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, v := doJSON(t, s, "GET", tt.target, "")
			assert.Equal(t, tt.status, code)
			assert.NotEmpty(t, get(t, "$.error", v))
		})
	}

	code, v := doJSON(t, newTestServer(fundperf.EmptyStore(nil)), "GET", "/api/reports/cumulative", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, fundperf.ErrNoData.Error(), get(t, "$.error", v))
}

func TestCurve(t *testing.T) {
	s := newTestServer(testStore())

	code, v := doJSON(t, s, "GET", "/api/curve?funds=A,B&from=2024-03-02", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, get(t, "$.empty", v))
	assert.Equal(t, "2024-03-02", get(t, "$.from", v))
	assert.Equal(t, []any{"A", "B"}, get(t, "$.series[*].fund", v))
	assert.Equal(t, 0.0, get(t, "$.points[0].returns.A", v))

	code, _ = doJSON(t, s, "GET", "/api/curve?window=2W", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = doJSON(t, s, "GET", "/api/curve?from=2024-03-04&to=2024-03-01", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestCurvePNG(t *testing.T) {
	s := newTestServer(testStore())

	rec := do(t, s, "GET", "/api/curve.png?window=MAX&width=300&height=200", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "\x89PNG"))

	code, v := doJSON(t, s, "GET", "/api/curve.png?from=2030-01-01&to=2030-01-02", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, fundperf.NoDataPlaceholder, get(t, "$.error", v))
}

func TestCurvePNG_Size(t *testing.T) {
	s := newTestServer(testStore())
	for _, target := range []string{
		"/api/curve.png?window=MAX&width=6000&height=6000",
		"/api/curve.png?window=MAX&width=50",
		"/api/curve.png?window=MAX&height=wide",
	} {
		code, v := doJSON(t, s, "GET", target, "")
		assert.Equal(t, http.StatusBadRequest, code, target)
		assert.NotEmpty(t, get(t, "$.error", v), target)
	}
	assert.Zero(t, s.charts.Len(), "rejected sizes are cached")

	// Every size is a new image, the cache stays bounded.
	for width := chart.MinSize; width < chart.MinSize+chart.MaxEntries+5; width++ {
		rec := do(t, s, "GET", fmt.Sprintf("/api/curve.png?window=MAX&width=%d&height=%d", width, chart.MinSize), "")
		require.Equal(t, http.StatusOK, rec.Code)
	}
	assert.Equal(t, chart.MaxEntries, s.charts.Len())
}

// brokenWriter is a response whose body cannot be written.
type brokenWriter struct{ *httptest.ResponseRecorder }

func (brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestCurvePNG_WriteError(t *testing.T) {
	var logs bytes.Buffer
	s := New(Config{
		Log:      zerolog.New(&logs),
		Reporter: fundperf.NewReporter(testStore()),
		DevMode:  true,
	})
	w := brokenWriter{httptest.NewRecorder()}
	s.handleCurvePNG(w, httptest.NewRequest("GET", "/api/curve.png?window=MAX", nil))

	assert.Contains(t, logs.String(), "failed to write chart")
	assert.Contains(t, logs.String(), "connection reset")
}

func TestFundNameWithComma(t *testing.T) {
	start := date.New(2024, 3, 1)
	funds := []fundperf.Fund{{Name: "Renta Local, Serie A", Series: "A"}, {Name: "B", Series: "A"}}
	clp := fundperf.NewTable(fundperf.CLP, map[string]*date.History[float64]{
		"Renta Local, Serie A": series(start, 100, 101, 102),
		"B":                    series(start, 50, 51, 52),
	})
	s := newTestServer(fundperf.NewStore("test", funds, clp))

	code, v := doJSON(t, s, "GET", "/api/reports/cumulative?fund=Renta+Local%2C+Serie+A&fund=B", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"Renta Local, Serie A", "B"}, get(t, "$.rows[*][0]", v))

	code, _ = doJSON(t, s, "GET", "/api/reports/cumulative?fund=", "")
	assert.Equal(t, http.StatusBadRequest, code)

	rec := do(t, s, "GET", "/?window=MAX", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "fund=Renta+Local%2C+Serie+A")

	rec = do(t, s, "GET", "/api/curve.png?window=MAX&fund=Renta+Local%2C+Serie+A", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestSelection(t *testing.T) {
	s := newTestServer(testStore())

	code, v := doJSON(t, s, "GET", "/api/selection", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"A", "B", "C"}, get(t, "$.funds", v))

	code, v = doJSON(t, s, "PUT", "/api/selection", `{"funds":["C","A"]}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, []any{"C", "A"}, get(t, "$.funds", v))

	// Every view follows the selection.
	_, v = doJSON(t, s, "GET", "/api/reports/annualized", "")
	assert.Equal(t, []any{"C", "A"}, get(t, "$.rows[*][0]", v))

	code, _ = doJSON(t, s, "PUT", "/api/selection", `{"funds":["Z"]}`)
	assert.Equal(t, http.StatusBadRequest, code)
	code, _ = doJSON(t, s, "PUT", "/api/selection", `not json`)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestPage(t *testing.T) {
	s := newTestServer(testStore())

	rec := do(t, s, "GET", "/?currency=USD&window=MAX", "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "<h2>Cumulative Returns</h2>")
	assert.Contains(t, body, "<h2>Calendar Year Returns</h2>")
	assert.Contains(t, body, "<table>")
	assert.Contains(t, body, "/api/curve.png?")
	assert.Contains(t, body, `<option value="USD" selected>`)

	rec = do(t, s, "GET", "/?select=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Select at least one fund")
	assert.Empty(t, s.selection.Funds())

	rec = do(t, newTestServer(fundperf.EmptyStore(nil)), "GET", "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No data available")
}

func TestHelp(t *testing.T) {
	s := newTestServer(testStore())

	rec := do(t, s, "GET", "/help/returns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>Returns</h1>")

	rec = do(t, s, "GET", "/help", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<h1>fundperf</h1>")

	rec = do(t, s, "GET", "/help/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
