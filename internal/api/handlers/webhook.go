// internal/api/handlers/webhook.go
package handlers

import (
	"context"
	"time"

	"github.com/adelinv/replyscore/internal/cache"
	"github.com/adelinv/replyscore/internal/conversation"
	"github.com/adelinv/replyscore/internal/evaluator"
	"github.com/adelinv/replyscore/internal/helpscout"
	"github.com/adelinv/replyscore/internal/models"
	"github.com/adelinv/replyscore/internal/render"
	"github.com/adelinv/replyscore/internal/repository"
	"github.com/adelinv/replyscore/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type WebhookHandler struct {
	helpscout         *helpscout.Client
	evaluator         *evaluator.Evaluator
	store             cache.Store
	inflight          *cache.InFlight
	renderer          *render.Renderer
	repoManager       *repository.RepositoryManager
	logger            *logrus.Logger
	timeout           time.Duration
	transcriptEntries int
}

func NewWebhookHandler(
	hsClient *helpscout.Client,
	eval *evaluator.Evaluator,
	store cache.Store,
	inflight *cache.InFlight,
	renderer *render.Renderer,
	repoManager *repository.RepositoryManager,
	logger *logrus.Logger,
	timeout time.Duration,
	transcriptEntries int,
) *WebhookHandler {
	return &WebhookHandler{
		helpscout:         hsClient,
		evaluator:         eval,
		store:             store,
		inflight:          inflight,
		renderer:          renderer,
		repoManager:       repoManager,
		logger:            logger,
		timeout:           timeout,
		transcriptEntries: transcriptEntries,
	}
}

// HandleWebhook serves the Help Scout dynamic app callback. Every
// outcome, including every failure, is HTTP 200 with an {html} body.
func (h *WebhookHandler) HandleWebhook(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.Ticket.ID.String() == "" {
		h.logger.Warn("Webhook payload carried no ticket id")
		utils.HTMLResponse(c, render.NoTicket())
		return
	}

	ticket := payload.Ticket
	ticketID := ticket.ID.String()
	ticketNumber := ticket.Number.String()

	log := h.logger.WithFields(logrus.Fields{
		"ticket_id":     ticketID,
		"ticket_number": ticketNumber,
	})

	if ticket.IsChat() {
		log.Debug("Chat conversation, skipping evaluation")
		utils.HTMLResponse(c, render.ChatNotSupported())
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	conv, err := h.helpscout.GetConversation(ctx, ticketID)
	if err != nil {
		log.WithError(err).Error("Failed to fetch conversation")
		utils.HTMLResponse(c, render.FetchFailed(ticketNumber))
		return
	}

	reply := conversation.SelectLatestTeamReply(conv.Threads)
	if reply == nil {
		log.Info("No team reply found to evaluate")
		utils.HTMLResponse(c, render.NoReply(ticketNumber))
		return
	}

	product := evaluator.DetectProduct(ticket.Subject, conv.Tags, conv.Threads)
	key := cache.BuildKey(ticketID, reply.Text)

	if verdict, ok, err := h.store.Get(ctx, key); err != nil {
		log.WithError(err).Warn("Verdict cache lookup failed")
	} else if ok {
		log.WithField("cache_key", key).Debug("Verdict served from cache")
		utils.HTMLResponse(c, h.renderer.Verdict(*verdict, product.Label(), true))
		return
	}

	if !h.inflight.Begin(key) {
		log.WithField("cache_key", key).Debug("Evaluation already in flight")
		utils.HTMLResponse(c, render.Processing(ticketNumber))
		return
	}

	transcript := conversation.BuildTranscript(conv.Threads, h.transcriptEntries)

	done := h.evaluate(key, ticketID, ticketNumber, reply, transcript, product)

	select {
	case verdict := <-done:
		utils.HTMLResponse(c, h.renderer.Verdict(verdict, product.Label(), false))
	case <-time.After(h.timeout):
		// The evaluation keeps running detached; its result lands in
		// the cache for the next sidebar reload to pick up.
		log.WithField("cache_key", key).Info("Evaluation outlived webhook timeout, continuing in background")
		utils.HTMLResponse(c, render.Processing(ticketNumber))
	}
}

// evaluate runs the model call on its own goroutine and returns a
// handle the caller may stop listening to. The cache write and the
// in-flight clear happen on every exit path.
func (h *WebhookHandler) evaluate(
	key, ticketID, ticketNumber string,
	reply *conversation.SelectedReply,
	transcript string,
	product evaluator.Product,
) <-chan models.Verdict {
	done := make(chan models.Verdict, 1)

	go func() {
		defer h.inflight.End(key)

		start := time.Now()
		// Detached from the request context on purpose: there is no
		// cancellation, a timed-out evaluation runs to completion.
		verdict := h.evaluator.Evaluate(context.Background(), reply, transcript, product)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.store.Set(ctx, key, verdict); err != nil {
			h.logger.WithError(err).WithField("cache_key", key).Error("Failed to cache verdict")
		}

		done <- verdict

		h.logEvaluation(ticketID, ticketNumber, key, reply, verdict, product, time.Since(start))
	}()

	return done
}

// logEvaluation appends the audit row. Best-effort: failures are
// logged and never reach the webhook caller.
func (h *WebhookHandler) logEvaluation(
	ticketID, ticketNumber, key string,
	reply *conversation.SelectedReply,
	verdict models.Verdict,
	product evaluator.Product,
	duration time.Duration,
) {
	if h.repoManager == nil {
		return
	}

	record := &models.EvaluationRecord{
		TicketID:     ticketID,
		TicketNumber: ticketNumber,
		CacheKey:     key,
		Product:      string(product),
		ReplyLength:  len(reply.Text),
		DurationMs:   int(duration.Milliseconds()),
	}
	record.FromVerdict(verdict)

	if err := h.repoManager.Evaluations.Create(record); err != nil {
		h.logger.WithError(err).WithField("ticket_id", ticketID).Error("Failed to record evaluation")
	}
}

// HandleWidget serves the static test page used during app setup.
func (h *WebhookHandler) HandleWidget(c *gin.Context) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(200, render.Widget(time.Now().UTC().Format(time.RFC3339)))
}
