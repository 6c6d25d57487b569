package health

import (
	"context"
	"sync"
	"time"

	"github.com/adelinv/replyscore/internal/database"
	"github.com/adelinv/replyscore/internal/helpscout"
	"github.com/sirupsen/logrus"
)

// HealthChecker probes the service's collaborators: Postgres (audit
// log), Redis (shared cache) and the Help Scout API. The model API is
// deliberately not probed, every probe would cost tokens.
type HealthChecker struct {
	dbManager *database.Manager
	helpscout *helpscout.Client
	logger    *logrus.Logger

	mu   sync.RWMutex
	last *OverallHealth
}

func NewHealthChecker(dbManager *database.Manager, hsClient *helpscout.Client, logger *logrus.Logger) *HealthChecker {
	return &HealthChecker{
		dbManager: dbManager,
		helpscout: hsClient,
		logger:    logger,
	}
}

type ServiceHealth struct {
	Name         string `json:"name"`
	Status       string `json:"status"`
	ResponseTime int    `json:"response_time_ms"`
	Error        string `json:"error,omitempty"`
	LastChecked  string `json:"last_checked"`
}

type OverallHealth struct {
	Status   string          `json:"status"`
	Services []ServiceHealth `json:"services"`
	Uptime   string          `json:"uptime"`
}

func (h *HealthChecker) check(name string, probe func() error) ServiceHealth {
	start := time.Now()
	err := probe()
	responseTime := int(time.Since(start).Milliseconds())

	status := "healthy"
	errorMsg := ""
	if err != nil {
		status = "unhealthy"
		errorMsg = err.Error()
		h.logger.WithError(err).WithField("service", name).Error("Health check failed")
	}

	return ServiceHealth{
		Name:         name,
		Status:       status,
		ResponseTime: responseTime,
		Error:        errorMsg,
		LastChecked:  time.Now().Format(time.RFC3339),
	}
}

// CheckAll probes every configured collaborator and caches the result.
func (h *HealthChecker) CheckAll(ctx context.Context) OverallHealth {
	var services []ServiceHealth

	if h.dbManager != nil {
		if h.dbManager.DB != nil {
			services = append(services, h.check("postgresql", h.dbManager.PingDatabase))
		}
		if h.dbManager.Redis != nil {
			services = append(services, h.check("redis", h.dbManager.PingRedis))
		}
	}
	services = append(services, h.check("helpscout", func() error {
		probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return h.helpscout.Ping(probeCtx)
	}))

	overallStatus := "healthy"
	for _, service := range services {
		if service.Status == "unhealthy" {
			overallStatus = "unhealthy"
			break
		}
	}

	health := OverallHealth{
		Status:   overallStatus,
		Services: services,
		Uptime:   time.Since(startTime).String(),
	}

	h.mu.Lock()
	h.last = &health
	h.mu.Unlock()

	return health
}

// Cached returns the last health result without probing, or nil when
// no check has run yet.
func (h *HealthChecker) Cached() *OverallHealth {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.last
}

var startTime = time.Now()

// PeriodicHealthCheck runs health checks until ctx is done.
func (h *HealthChecker) PeriodicHealthCheck(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			health := h.CheckAll(ctx)
			h.logger.WithField("status", health.Status).Debug("Periodic health check completed")
		}
	}
}
