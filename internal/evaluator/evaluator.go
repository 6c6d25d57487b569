package evaluator

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/adelinv/replyscore/internal/conversation"
	"github.com/adelinv/replyscore/internal/models"
	"github.com/adelinv/replyscore/internal/openai"
	"github.com/sirupsen/logrus"
)

// Evaluator scores a selected reply against the rubric via one
// chat-completion call.
type Evaluator struct {
	client *openai.Client
	logger *logrus.Logger
}

func New(client *openai.Client, logger *logrus.Logger) *Evaluator {
	return &Evaluator{
		client: client,
		logger: logger,
	}
}

// Evaluate produces a Verdict for the reply. It never fails: any call
// error or unparseable model output degrades to the all-zero error
// verdict carrying the failure message.
func (e *Evaluator) Evaluate(ctx context.Context, reply *conversation.SelectedReply, transcript string, product Product) models.Verdict {
	prompt := BuildPrompt(reply.Text, transcript, product)

	content, err := e.client.ChatCompletion(ctx, []openai.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		e.logger.WithError(err).Error("Chat completion failed")
		return models.ErrorVerdict(err.Error())
	}

	var verdict models.Verdict
	if err := json.Unmarshal([]byte(stripCodeFence(content)), &verdict); err != nil {
		e.logger.WithFields(logrus.Fields{
			"error":           err.Error(),
			"content_preview": conversation.Truncate(content, 200),
		}).Error("Model returned non-JSON verdict")
		return models.ErrorVerdict("invalid verdict JSON: " + err.Error())
	}

	verdict.Normalize()

	e.logger.WithFields(logrus.Fields{
		"overall_score": verdict.OverallScore,
		"improvements":  len(verdict.KeyImprovements),
		"product":       string(product),
	}).Info("Reply evaluated")

	return verdict
}

// stripCodeFence unwraps ```json fences some models insist on adding
// despite the JSON-only instruction.
func stripCodeFence(content string) string {
	trimmed := strings.TrimSpace(content)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
