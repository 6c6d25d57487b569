package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/adelinv/replyscore/internal/models"
)

// Renderer turns verdicts into the sidebar HTML fragment. CachedDetail
// controls what a cache hit shows: the full category breakdown (true)
// or a compact badge telling the agent to reload for detail.
type Renderer struct {
	cachedDetail bool
}

func New(cachedDetail bool) *Renderer {
	return &Renderer{cachedDetail: cachedDetail}
}

type verdictView struct {
	Header           string
	ScoreText        string
	ScoreColor       string
	Categories       []categoryView
	Improvements     []string
	ShowImprovements bool
	ProductLabel     string
	CachedNote       string
	EmptyNote        string
}

type categoryView struct {
	Name     string
	Score    int
	Color    string
	Feedback string
}

var verdictTemplate = template.Must(template.New("verdict").Parse(`<div style="padding: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; font-size: 13px; color: #333;">
  <h3 style="font-size: 14px; font-weight: 600; color: #2c5aa0; margin: 0 0 12px 0;">{{.Header}}</h3>
  <div style="display: flex; align-items: center; margin-bottom: 16px; padding: 12px; background: #f8f9fa; border-radius: 8px;">
    <div style="display: flex; align-items: center; justify-content: center; width: 50px; height: 50px; border-radius: 50%; background: {{.ScoreColor}}; color: white; font-weight: bold; font-size: 16px; margin-right: 12px;">{{.ScoreText}}</div>
    <div>Overall Score</div>
  </div>
{{if .CachedNote}}  <p style="font-size: 11px; color: #666;">{{.CachedNote}}</p>
{{end}}{{range .Categories}}  <div style="margin-bottom: 10px; padding: 10px; background: #f8f9fa; border-radius: 6px; border-left: 3px solid #2c5aa0;">
    <div style="display: flex; justify-content: space-between; margin-bottom: 4px;">
      <span style="font-weight: 600; font-size: 11px;">{{.Name}}</span>
      <span style="background: {{.Color}}; color: white; padding: 2px 6px; border-radius: 10px; font-size: 10px; font-weight: bold;">{{.Score}}/10</span>
    </div>
    <div style="font-size: 10px; color: #666;">{{.Feedback}}</div>
  </div>
{{end}}{{if .ShowImprovements}}{{if .Improvements}}  <div style="margin-top: 14px; padding: 12px; background: #fff9e6; border-radius: 6px; border-left: 3px solid #f0b90b;">
    <h4 style="font-size: 11px; margin: 0 0 8px 0;">Key Improvements</h4>
    <ul style="margin: 0; padding-left: 16px;">
{{range .Improvements}}      <li style="font-size: 10px; color: #666; margin-bottom: 4px;">{{.}}</li>
{{end}}    </ul>
  </div>
{{else}}  <div style="margin-top: 14px; padding: 12px; background: #f0f8f0; border-radius: 6px;">
    <p style="margin: 0; font-size: 11px;">{{.EmptyNote}}</p>
  </div>
{{end}}{{end}}{{if .ProductLabel}}  <div style="text-align: center; color: #999; font-size: 10px; padding-top: 12px; border-top: 1px solid #e8e8e8; margin-top: 12px;">Detected: {{.ProductLabel}}</div>
{{end}}</div>`))

var errorTemplate = template.Must(template.New("error").Parse(`<div style="padding: 16px; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; font-size: 13px;">
  <h3 style="font-size: 14px; font-weight: 600; color: #2c5aa0; margin: 0 0 12px 0;">Response Evaluator</h3>
  <div style="padding: 12px; background: #fff2f2; border-radius: 6px; border-left: 3px solid #d63638;">
    <h4 style="font-size: 12px; margin: 0 0 6px 0; color: #d63638;">Evaluation failed</h4>
    <p style="margin: 0; font-size: 11px; color: #666;">{{.Error}}</p>
    <p style="margin: 6px 0 0 0; font-size: 10px; color: #999;">Reload the sidebar to try again.</p>
  </div>
</div>`))

// NoRecommendationsMessage is the empty-improvements state.
const NoRecommendationsMessage = "No recommendations - this reply looks great."

// CachedResultMessage marks a full card served from the cache.
const CachedResultMessage = "Served from an earlier evaluation of this reply."

// Verdict renders a success or error verdict. productLabel may be
// empty; cached marks a memoized result.
func (r *Renderer) Verdict(v models.Verdict, productLabel string, cached bool) string {
	if v.IsError() {
		return execute(errorTemplate, struct{ Error string }{Error: v.Error})
	}

	view := verdictView{
		Header:       "Response Evaluation",
		ScoreText:    fmt.Sprintf("%.1f", v.OverallScore),
		ScoreColor:   scoreColor(v.OverallScore),
		ProductLabel: productLabel,
		EmptyNote:    NoRecommendationsMessage,
	}

	if cached && !r.cachedDetail {
		// Compact cache hit: just the score and a reload hint.
		view.CachedNote = "Evaluated earlier - reload the sidebar to re-score the latest reply."
		return execute(verdictTemplate, view)
	}

	if cached {
		view.CachedNote = CachedResultMessage
	}
	view.Improvements = v.KeyImprovements
	view.ShowImprovements = true
	for _, row := range v.Categories.Rows() {
		view.Categories = append(view.Categories, categoryView{
			Name:     row.Name,
			Score:    row.Score,
			Color:    scoreColor(float64(row.Score)),
			Feedback: row.Feedback,
		})
	}

	return execute(verdictTemplate, view)
}

func scoreColor(score float64) string {
	switch {
	case score >= 8:
		return "#10a54a"
	case score >= 6:
		return "#2c5aa0"
	default:
		return "#d63638"
	}
}

func execute(t *template.Template, data interface{}) string {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		// Degrade locally, the webhook still answers with valid HTML.
		return `<div style="padding: 20px;"><p>Could not render evaluation.</p></div>`
	}
	return sb.String()
}
