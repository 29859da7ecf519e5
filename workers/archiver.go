package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vialtech/rutalerta/db"
)

// Archiver periodically moves expired and voted-out reports into the
// historical store. A failed sweep is logged and retried on the next
// tick; it never takes the process down.
type Archiver struct {
	repo     db.ArchiveRepository
	interval time.Duration
	logger   *logrus.Logger
}

func NewArchiver(repo db.ArchiveRepository, interval time.Duration, logger *logrus.Logger) *Archiver {
	return &Archiver{
		repo:     repo,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until ctx is cancelled, sweeping once per interval. The
// first sweep happens immediately so a restart catches up right away.
func (a *Archiver) Run(ctx context.Context) {
	a.logger.WithField("interval", a.interval).Info("archiver started")

	a.RunOnce(time.Now())

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("archiver stopped")
			return
		case t := <-ticker.C:
			a.RunOnce(t)
		}
	}
}

// RunOnce performs a single sweep. Exposed so the sweep is callable
// synchronously outside the ticker loop.
func (a *Archiver) RunOnce(now time.Time) {
	count, err := a.repo.ArchiveStale(now)
	if err != nil {
		a.logger.WithError(err).Error("sweep failed")
		return
	}
	if count > 0 {
		a.logger.WithField("archived", count).Info("sweep archived reports")
	}
}
