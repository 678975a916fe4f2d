package hearts

import (
	"context"
	"log/slog"
	"time"

	"github.com/lumilearn/quiz-runner/internal/models"
)

// FetchFunc retrieves the current hearts status from the backend.
type FetchFunc func(ctx context.Context) (models.LessonHeartsStatus, error)

// Poller is the fallback freshness mechanism for hearts indicators mounted
// outside the quiz flow: it re-fetches on an interval and on explicit wake
// signals (window focus), re-broadcasting whatever the backend reports.
type Poller struct {
	fetch       FetchFunc
	broadcaster *Broadcaster
	interval    time.Duration
	wake        chan struct{}
	logger      *slog.Logger
}

func NewPoller(fetch FetchFunc, broadcaster *Broadcaster, interval time.Duration, logger *slog.Logger) *Poller {
	return &Poller{
		fetch:       fetch,
		broadcaster: broadcaster,
		interval:    interval,
		wake:        make(chan struct{}, 1),
		logger:      logger,
	}
}

// Wake requests an immediate refresh, used on focus events. Coalesces when a
// refresh is already queued.
func (p *Poller) Wake() {
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Run polls until the context is cancelled. Fetch failures are logged and
// skipped; the last broadcast value simply stays current.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.wake:
		}

		status, err := p.fetch(ctx)
		if err != nil {
			p.logger.Warn("Hearts refresh failed", "error", err)
			continue
		}
		if err := p.broadcaster.Emit(status); err != nil {
			p.logger.Warn("Hearts rebroadcast failed", "error", err)
		}
	}
}
