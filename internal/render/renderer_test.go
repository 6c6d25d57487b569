package render

import (
	"strings"
	"testing"

	"github.com/adelinv/replyscore/internal/models"
	"github.com/stretchr/testify/assert"
)

func goodVerdict() models.Verdict {
	v := models.Verdict{
		OverallScore: 8.5,
		Categories: models.Categories{
			ToneEmpathy:         models.CategoryScore{Score: 9, Feedback: "Warm opener"},
			ClarityCompleteness: models.CategoryScore{Score: 8, Feedback: "Clear"},
			StandardOfEnglish:   models.CategoryScore{Score: 8, Feedback: "Natural"},
			ProblemResolution:   models.CategoryScore{Score: 8, Feedback: "Solved"},
			FollowingStructure:  models.CategoryScore{Score: 9, Feedback: "Good closing"},
		},
		KeyImprovements: []string{},
	}
	return v
}

func TestVerdict_ShowsScoreAndEmptyState(t *testing.T) {
	html := New(true).Verdict(goodVerdict(), "WordPress Plugin", false)

	assert.Contains(t, html, "8.5")
	assert.Contains(t, html, NoRecommendationsMessage)
	assert.NotContains(t, html, "<li")
	assert.Contains(t, html, "Tone &amp; Empathy")
	assert.Contains(t, html, "9/10")
	assert.Contains(t, html, "Detected: WordPress Plugin")
}

func TestVerdict_ImprovementsList(t *testing.T) {
	v := goodVerdict()
	v.KeyImprovements = []string{"Add a documentation link", "Offer a workaround"}

	html := New(true).Verdict(v, "", false)

	assert.Equal(t, 2, strings.Count(html, "<li"))
	assert.Contains(t, html, "Add a documentation link")
	assert.NotContains(t, html, NoRecommendationsMessage)
}

func TestVerdict_EscapesModelOutput(t *testing.T) {
	v := goodVerdict()
	v.Categories.ToneEmpathy.Feedback = `<script>alert("x")</script>`
	v.KeyImprovements = []string{`use <b>bold</b> & "quotes"`}

	html := New(true).Verdict(v, "", false)

	assert.NotContains(t, html, "<script>")
	assert.Contains(t, html, "&lt;script&gt;")
	assert.NotContains(t, html, "<b>bold</b>")
}

func TestVerdict_ErrorPanel(t *testing.T) {
	v := models.ErrorVerdict(`upstream said <no>`)

	html := New(true).Verdict(v, "WordPress Plugin", false)

	assert.Contains(t, html, "Evaluation failed")
	assert.Contains(t, html, "&lt;no&gt;")
	assert.NotContains(t, html, "Tone")
	assert.NotContains(t, html, "/10")
}

func TestVerdict_CachedDetailToggle(t *testing.T) {
	full := New(true).Verdict(goodVerdict(), "", true)
	assert.Contains(t, full, "Tone &amp; Empathy")
	assert.Contains(t, full, CachedResultMessage)

	compact := New(false).Verdict(goodVerdict(), "", true)
	assert.NotContains(t, compact, "Tone &amp; Empathy")
	assert.NotContains(t, compact, NoRecommendationsMessage)
	assert.Contains(t, compact, "8.5")
	assert.Contains(t, compact, "reload")

	// An uncached render is always the full breakdown without a note
	fresh := New(false).Verdict(goodVerdict(), "", false)
	assert.Contains(t, fresh, "Tone &amp; Empathy")
	assert.NotContains(t, fresh, CachedResultMessage)
}

func TestScoreColorBands(t *testing.T) {
	assert.Equal(t, "#10a54a", scoreColor(8.5))
	assert.Equal(t, "#10a54a", scoreColor(8))
	assert.Equal(t, "#2c5aa0", scoreColor(6.4))
	assert.Equal(t, "#d63638", scoreColor(3))
}

func TestFixedFragments(t *testing.T) {
	assert.Contains(t, ChatNotSupported(), ChatNotSupportedMessage)
	assert.Contains(t, NoTicket(), "No ticket data")
	assert.Contains(t, FetchFailed("1001"), "#1001")
	assert.Contains(t, NoReply("1001"), "No team response")
	assert.Contains(t, Processing("1001"), "in progress")
}
