// Package job runs the scheduled expiry scan.
package job

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/status"
)

// Reporter produces a compliance summary, reloading its data when asked
type Reporter interface {
	Compliance(ctx context.Context, reload bool) (status.Summary, error)
}

// ExpiryScan reloads the records and logs everything expired or expiring
type ExpiryScan struct {
	reporter Reporter
	logger   *slog.Logger
	timeout  time.Duration
	last     atomic.Pointer[status.Summary]
}

// NewExpiryScan creates a scan over reporter
func NewExpiryScan(reporter Reporter, logger *slog.Logger) *ExpiryScan {
	return &ExpiryScan{
		reporter: reporter,
		logger:   logger.With("component", "expiry-scan"),
		timeout:  5 * time.Minute,
	}
}

// Run performs one scan and keeps its summary as the latest
func (s *ExpiryScan) Run(ctx context.Context) (status.Summary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	sum, err := s.reporter.Compliance(ctx, true)
	if err != nil {
		s.logger.ErrorContext(ctx, "expiry scan failed", "error", err)
		return status.Summary{}, err
	}
	s.last.Store(&sum)

	for _, n := range sum.Notices {
		level := slog.LevelInfo
		switch n.Severity {
		case model.SeverityError:
			level = slog.LevelError
		case model.SeverityWarning:
			level = slog.LevelWarn
		}
		s.logger.Log(ctx, level, n.Message, "code", n.Code)
	}
	s.logger.InfoContext(ctx, "expiry scan finished",
		"expired", sum.Total(status.Expired),
		"expiring_soon", sum.Total(status.ExpiringSoon),
		"valid", sum.Total(status.Valid),
	)
	return sum, nil
}

// Last returns the most recent successful summary, or nil before the first
func (s *ExpiryScan) Last() *status.Summary {
	return s.last.Load()
}

// Start schedules scan on a standard five-field cron spec and starts the
// scheduler. Callers stop it with the returned cron's Stop.
func Start(spec string, scan *ExpiryScan) (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		_, _ = scan.Run(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("schedule expiry scan %q: %w", spec, err)
	}
	c.Start()
	return c, nil
}
