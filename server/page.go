package server

import (
	"bytes"
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"slices"
	"strings"

	"github.com/etnz/fundperf"
	"github.com/etnz/fundperf/docs"
	"github.com/etnz/fundperf/renderer"
	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

//go:embed page.html
var pageHTML string

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

type option struct {
	Code, Label, Name, Series string
	Selected                  bool
}

type page struct {
	Title      string
	Form       bool
	Currencies []option
	Windows    []option
	Funds      []option
	Body       template.HTML
}

// handlePage renders the three reports and the chart of the shared selection.
//
// Submitting the form replaces the shared selection.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	if q.Has("select") {
		if err := s.setSelection(q["fund"]); err != nil {
			s.writeError(w, err)
			return
		}
	}
	cur, funds, err := s.query(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	window, err := fundperf.ParseWindow(q.Get("window"))
	if err != nil {
		s.writeError(w, badRequest(err))
		return
	}

	p := page{Title: "Fund performance", Form: true}
	for _, c := range fundperf.Currencies {
		p.Currencies = append(p.Currencies, option{Code: string(c), Label: c.Label(), Selected: c == cur})
	}
	for _, win := range fundperf.Windows {
		p.Windows = append(p.Windows, option{Name: string(win), Selected: win == window})
	}
	for _, f := range s.store.Funds() {
		p.Funds = append(p.Funds, option{Name: f.Name, Series: f.Series, Selected: slices.Contains(funds, f.Name)})
	}

	var md strings.Builder
	for _, kind := range fundperf.ReportKinds {
		report, err := s.reporter.Report(kind, cur, funds)
		if err != nil {
			md.WriteString(s.message(err))
			// One message is enough for the states shared by every report.
			break
		}
		md.WriteString(renderer.RenderReport(renderer.NewReport(report)))
		md.WriteString("\n")
	}
	md.WriteString(s.pageCurve(cur, funds, window))

	body, err := toHTML(md.String())
	if err != nil {
		s.writeError(w, err)
		return
	}
	p.Body = body
	s.writePage(w, p)
}

// pageCurve renders the curve summary and its image.
func (s *Server) pageCurve(cur fundperf.Currency, funds []string, window fundperf.Window) string {
	rng, err := s.store.WindowRange(window)
	if err != nil {
		return ""
	}
	c, err := s.reporter.CumulativeCurve(cur, funds, rng)
	if err != nil {
		return ""
	}
	md := renderer.RenderCurve(renderer.NewCurve(c))
	if c.Empty() {
		return md
	}
	q := url.Values{}
	q.Set("currency", string(cur))
	for _, f := range funds {
		q.Add("fund", f)
	}
	q.Set("from", rng.From.String())
	q.Set("to", rng.To.String())
	return md + "\n![Cumulative return](/api/curve.png?" + q.Encode() + ")\n"
}

// message renders a user facing state as markdown.
func (s *Server) message(err error) string {
	switch {
	case errors.Is(err, fundperf.ErrNoData), errors.Is(err, fundperf.ErrEmptySelection):
		return renderer.RenderMessage(capitalize(err.Error()))
	default:
		s.log.Error().Err(err).Msg("failed to compute report")
		return renderer.RenderMessage("Unexpected error: " + err.Error())
	}
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	if topic == "" {
		topic = "readme"
	}
	content, err := docs.GetTopic(topic)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	body, err := toHTML(content)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writePage(w, page{Title: "Help", Body: body})
}

func (s *Server) writePage(w http.ResponseWriter, p page) {
	var b bytes.Buffer
	if err := pageTemplate.Execute(&b, p); err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write(b.Bytes()); err != nil {
		s.log.Error().Err(err).Msg("failed to write page")
	}
}

// toHTML converts markdown to HTML.
func toHTML(md string) (template.HTML, error) {
	var b bytes.Buffer
	if err := markdown.Convert([]byte(md), &b); err != nil {
		return "", err
	}
	return template.HTML(b.String()), nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
