package models

// EvaluationFailedFeedback replaces every category feedback when the
// model call errors or returns something that is not valid JSON.
const EvaluationFailedFeedback = "Evaluation failed"

// CategoryScore is one rubric dimension of a verdict.
type CategoryScore struct {
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// Categories holds the five fixed rubric dimensions. The JSON keys
// match the shape the model is instructed to produce.
type Categories struct {
	ToneEmpathy         CategoryScore `json:"tone_empathy"`
	ClarityCompleteness CategoryScore `json:"clarity_completeness"`
	StandardOfEnglish   CategoryScore `json:"standard_of_english"`
	ProblemResolution   CategoryScore `json:"problem_resolution"`
	FollowingStructure  CategoryScore `json:"following_structure"`
}

// Verdict is the structured scoring output for one team reply.
type Verdict struct {
	OverallScore    float64    `json:"overall_score"`
	Categories      Categories `json:"categories"`
	KeyImprovements []string   `json:"key_improvements"`
	Error           string     `json:"error,omitempty"`
}

// CategoryRow pairs a display name with its score for rendering.
type CategoryRow struct {
	Name     string
	Score    int
	Feedback string
}

// Rows returns the categories in their fixed display order.
func (c Categories) Rows() []CategoryRow {
	return []CategoryRow{
		{Name: "Tone & Empathy", Score: c.ToneEmpathy.Score, Feedback: c.ToneEmpathy.Feedback},
		{Name: "Clarity & Completeness", Score: c.ClarityCompleteness.Score, Feedback: c.ClarityCompleteness.Feedback},
		{Name: "Standard of English", Score: c.StandardOfEnglish.Score, Feedback: c.StandardOfEnglish.Feedback},
		{Name: "Problem Resolution", Score: c.ProblemResolution.Score, Feedback: c.ProblemResolution.Feedback},
		{Name: "Following Structure", Score: c.FollowingStructure.Score, Feedback: c.FollowingStructure.Feedback},
	}
}

// IsError reports whether this verdict is the fallback produced when
// the model call failed.
func (v Verdict) IsError() bool {
	return v.Error != ""
}

// Normalize clamps every score into its documented range. Model output
// occasionally drifts outside 0-10 and the renderer relies on the bound.
func (v *Verdict) Normalize() {
	v.OverallScore = clampFloat(v.OverallScore, 0, 10)
	for _, c := range []*CategoryScore{
		&v.Categories.ToneEmpathy,
		&v.Categories.ClarityCompleteness,
		&v.Categories.StandardOfEnglish,
		&v.Categories.ProblemResolution,
		&v.Categories.FollowingStructure,
	} {
		c.Score = clampInt(c.Score, 0, 10)
	}
	if v.KeyImprovements == nil {
		v.KeyImprovements = []string{}
	}
}

// ErrorVerdict builds the all-zero fallback verdict carrying the
// underlying failure message.
func ErrorVerdict(message string) Verdict {
	failed := CategoryScore{Score: 0, Feedback: EvaluationFailedFeedback}
	return Verdict{
		OverallScore: 0,
		Categories: Categories{
			ToneEmpathy:         failed,
			ClarityCompleteness: failed,
			StandardOfEnglish:   failed,
			ProblemResolution:   failed,
			FollowingStructure:  failed,
		},
		KeyImprovements: []string{},
		Error:           message,
	}
}

func clampFloat(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
