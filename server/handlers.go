package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/chart"
	"github.com/etnz/fundperf/date"
	"github.com/go-chi/chi/v5"
)

// errBadRequest wraps invalid request parameters.
var errBadRequest = errors.New("bad request")

func badRequest(err error) error { return fmt.Errorf("%w: %w", errBadRequest, err) }

// statusOf maps the states of the reporter to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, fundperf.ErrNoData):
		return http.StatusNotFound
	case errors.Is(err, fundperf.ErrEmptySelection),
		errors.Is(err, fundperf.ErrUnknownCurrency),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error().Err(err).Msg("failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		s.log.Error().Err(err).Msg("request failed")
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// query reads the currency and the funds of a request.
//
// Funds are repeated fund parameters, or a comma separated funds list.
// Without either, the shared selection is used.
func (s *Server) query(r *http.Request) (fundperf.Currency, []string, error) {
	q := r.URL.Query()
	cur := fundperf.CLP
	if v := q.Get("currency"); v != "" {
		c, err := fundperf.ParseCurrency(v)
		if err != nil {
			return "", nil, err
		}
		cur = c
	}
	funds := s.selection.Funds()
	switch {
	case q.Has("fund"):
		funds = nil
		for _, v := range q["fund"] {
			if v = strings.TrimSpace(v); v != "" {
				funds = append(funds, v)
			}
		}
	case q.Has("funds"):
		funds = splitList(q.Get("funds"))
	}
	return cur, funds, nil
}

// curveRange reads the window of a curve request: a preset, optionally
// overridden by from and to dates.
func (s *Server) curveRange(r *http.Request) (date.Range, error) {
	q := r.URL.Query()
	w, err := fundperf.ParseWindow(q.Get("window"))
	if err != nil {
		return date.Range{}, badRequest(err)
	}
	rng, err := s.store.WindowRange(w)
	if err != nil {
		return date.Range{}, err
	}
	for key, d := range map[string]*date.Date{"from": &rng.From, "to": &rng.To} {
		v := q.Get(key)
		if v == "" {
			continue
		}
		if *d, err = date.Parse(v); err != nil {
			return date.Range{}, badRequest(fmt.Errorf("invalid %s date %q: %w", key, v, err))
		}
	}
	if rng.IsEmpty() {
		return date.Range{}, badRequest(fmt.Errorf("empty window %s", rng))
	}
	return rng, nil
}

func (s *Server) curve(r *http.Request) (*fundperf.Curve, error) {
	cur, funds, err := s.query(r)
	if err != nil {
		return nil, err
	}
	rng, err := s.curveRange(r)
	if err != nil {
		return nil, err
	}
	return s.reporter.CumulativeCurve(cur, funds, rng)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"status": "ok",
		"loaded": s.store.Loaded(),
		"funds":  len(s.store.Funds()),
	}
	if err := s.store.Err(); err != nil {
		resp["error"] = err.Error()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

type priceInfo struct {
	Date    date.Date `json:"date"`
	Price   float64   `json:"price"`
	Display string    `json:"display"`
}

type fundInfo struct {
	fundperf.Fund
	Latest map[fundperf.Currency]priceInfo `json:"latest"`
}

type currencyInfo struct {
	Code  fundperf.Currency `json:"code"`
	Label string            `json:"label"`
}

type span struct {
	From date.Date `json:"from"`
	To   date.Date `json:"to"`
}

func (s *Server) handleFunds(w http.ResponseWriter, r *http.Request) {
	if !s.store.Loaded() {
		s.writeError(w, fundperf.ErrNoData)
		return
	}
	var funds []fundInfo
	for _, f := range s.store.Funds() {
		info := fundInfo{Fund: f, Latest: make(map[fundperf.Currency]priceInfo)}
		for _, cur := range fundperf.Currencies {
			if day, price, ok := s.store.Latest(f.Name, cur); ok {
				info.Latest[cur] = priceInfo{Date: day, Price: price, Display: cur.Format(price)}
			}
		}
		funds = append(funds, info)
	}
	var currencies []currencyInfo
	for _, cur := range fundperf.Currencies {
		currencies = append(currencies, currencyInfo{Code: cur, Label: cur.Label()})
	}
	all, _ := s.store.Span()

	s.writeJSON(w, http.StatusOK, map[string]any{
		"funds":          funds,
		"currencies":     currencies,
		"windows":        fundperf.Windows,
		"default_window": fundperf.DefaultWindow,
		"span":           span{all.From, all.To},
	})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	kind, err := fundperf.ParseReportKind(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}
	cur, funds, err := s.query(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	report, err := s.reporter.Report(kind, cur, funds)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleCurve(w http.ResponseWriter, r *http.Request) {
	c, err := s.curve(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, c)
}

func (s *Server) handleCurvePNG(w http.ResponseWriter, r *http.Request) {
	c, err := s.curve(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts, err := chartOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	img, err := s.charts.Render(c, opts)
	if errors.Is(err, fundperf.ErrNoData) {
		s.writeJSON(w, http.StatusNotFound, map[string]string{"error": fundperf.NoDataPlaceholder})
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	if _, err := w.Write(img); err != nil {
		s.log.Error().Err(err).Msg("failed to write chart")
	}
}

// chartOptions reads the image size of a chart request.
func chartOptions(r *http.Request) (chart.Options, error) {
	opts := chart.DefaultOptions
	q := r.URL.Query()
	for key, v := range map[string]*int{"width": &opts.Width, "height": &opts.Height} {
		if !q.Has(key) {
			continue
		}
		n, err := strconv.Atoi(q.Get(key))
		if err != nil {
			return opts, badRequest(fmt.Errorf("invalid %s %q", key, q.Get(key)))
		}
		*v = n
	}
	if err := opts.Validate(); err != nil {
		return opts, badRequest(err)
	}
	return opts, nil
}

type selectionBody struct {
	Funds []string `json:"funds"`
}

func (s *Server) handleGetSelection(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, selectionBody{Funds: s.selection.Funds()})
}

func (s *Server) handlePutSelection(w http.ResponseWriter, r *http.Request) {
	var body selectionBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeError(w, badRequest(fmt.Errorf("invalid selection: %w", err)))
		return
	}
	if err := s.setSelection(body.Funds); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, selectionBody{Funds: s.selection.Funds()})
}

// setSelection replaces the shared selection, rejecting unknown funds.
func (s *Server) setSelection(funds []string) error {
	for _, f := range funds {
		if _, ok := s.store.Fund(f); !ok {
			return badRequest(fmt.Errorf("unknown fund %q", f))
		}
	}
	s.selection.Set(funds)
	return nil
}
