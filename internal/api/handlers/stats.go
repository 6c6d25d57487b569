package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/adelinv/replyscore/internal/repository"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// StatsHandler exposes read-only views over the evaluation audit log.
// These endpoints are for the support team lead, not for Help Scout,
// so they answer plain JSON with real status codes.
type StatsHandler struct {
	repoManager *repository.RepositoryManager
	logger      *logrus.Logger
}

func NewStatsHandler(repoManager *repository.RepositoryManager, logger *logrus.Logger) *StatsHandler {
	return &StatsHandler{
		repoManager: repoManager,
		logger:      logger,
	}
}

// HandleSummary serves the recent evaluations and the average score
// over the requested window (default 7 days, failed runs excluded).
func (h *StatsHandler) HandleSummary(c *gin.Context) {
	if h.repoManager == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "statistics need a configured database"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		limit = 20
	}
	days, err := strconv.Atoi(c.DefaultQuery("days", "7"))
	if err != nil || days < 1 {
		days = 7
	}

	to := time.Now()
	from := to.AddDate(0, 0, -days)

	avg, err := h.repoManager.Evaluations.AverageScore(from, to)
	if err != nil {
		h.logger.WithError(err).Error("Failed to compute average score")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read statistics"})
		return
	}

	recent, err := h.repoManager.Evaluations.GetRecent(limit)
	if err != nil {
		h.logger.WithError(err).Error("Failed to load recent evaluations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"average_score": avg,
		"window_days":   days,
		"recent":        recent,
	})
}

// HandleTicket serves every recorded evaluation of one ticket, newest
// first.
func (h *StatsHandler) HandleTicket(c *gin.Context) {
	if h.repoManager == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "statistics need a configured database"})
		return
	}

	ticketID := c.Param("id")
	records, err := h.repoManager.Evaluations.GetByTicket(ticketID)
	if err != nil {
		h.logger.WithError(err).WithField("ticket_id", ticketID).Error("Failed to load ticket evaluations")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read statistics"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ticket_id":   ticketID,
		"evaluations": records,
	})
}
