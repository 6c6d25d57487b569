package evaluator

import (
	"strings"
	"text/template"
)

// PromptVersion identifies the rubric revision. Bump it whenever the
// rubric text changes so logged evaluations stay comparable.
const PromptVersion = "v2"

const systemPrompt = "You are an expert at evaluating customer support responses. Always respond with valid JSON and nothing else."

// The rubric lives here as template data, away from control flow, so
// tone-rule changes never touch the pipeline.
var rubricTemplate = template.Must(template.New("rubric").Parse(`You are evaluating a customer support response based on these specific guidelines:

SUPPORT TONE REQUIREMENTS:
1. MUST start by thanking the customer
2. MUST end with a polite closing (e.g., "Let me know if you have any questions")
3. Suggest workarounds ONLY when declining a request or saying something isn't possible, not when the request is fully resolved
4. Only apologize when the company has done something wrong
5. Use positive language (avoid "but" and "however")
6. Suggest adding a link ONLY when the response mentions specific features or documentation without already linking them
7. Use "{{.ProductTerm}}" not "{{.WrongTerm}}" (this is a {{.ProductLabel}} product)
8. Focus on being helpful and reassuring, especially for pre-sales
9. If the response is gathering information to investigate the issue, score it on the quality of the investigation, not on the absence of a final resolution

RESPONSE TO EVALUATE:
"{{.Reply}}"
{{if .Transcript}}
RECENT CONVERSATION (oldest first), for context only:
{{.Transcript}}
{{end}}
Please evaluate this response on these criteria:
1. Tone & Empathy (follows support tone guidelines, thanks customer, polite closing)
2. Clarity & Completeness (clear, direct answers, addresses all questions)
3. Standard of English (grammar, spelling, natural phrasing for non-native speakers)
4. Problem Resolution (addresses actual customer needs, suggests solutions)
5. Following Structure (proper greeting, closing, correct terminology)

For each category, provide:
- Score out of 10 (integer)
- Specific feedback (what was good, what needs improvement)

Then provide an overall score out of 10 (one decimal) and a list of key improvement suggestions. Include ONLY improvements that are genuinely necessary; when the response is already strong, return an empty list. Never invent an improvement just to fill the list.

Format as JSON with this structure:
{
  "overall_score": 8.5,
  "categories": {
    "tone_empathy": {"score": 9, "feedback": "..."},
    "clarity_completeness": {"score": 8, "feedback": "..."},
    "standard_of_english": {"score": 7, "feedback": "..."},
    "problem_resolution": {"score": 8, "feedback": "..."},
    "following_structure": {"score": 9, "feedback": "..."}
  },
  "key_improvements": []
}`))

type promptData struct {
	ProductTerm  string
	WrongTerm    string
	ProductLabel string
	Reply        string
	Transcript   string
}

// BuildPrompt renders the rubric prompt for one reply.
func BuildPrompt(replyText, transcript string, product Product) string {
	var sb strings.Builder
	// The template text is static, Execute cannot fail on it.
	_ = rubricTemplate.Execute(&sb, promptData{
		ProductTerm:  product.Term(),
		WrongTerm:    product.WrongTerm(),
		ProductLabel: product.Label(),
		Reply:        replyText,
		Transcript:   transcript,
	})
	return sb.String()
}
