package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/catalog/internal/core/port"
	"github.com/robfig/cron/v3"
)

// A Job is a periodic unit of work.
type Job func(context.Context) error

// A slogLogger adapts [slog] to [cron.Logger].
type slogLogger struct {
	log *slog.Logger
}

func (l slogLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug(msg, keysAndValues...)
}

func (l slogLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error(msg, append(keysAndValues, "err", err)...)
}

// A Scheduler runs registered jobs on cron schedules.
//
// A run is skipped when the previous run of the same job is still going.
type Scheduler struct {
	cron    *cron.Cron
	ctx     context.Context
	cancel  context.CancelFunc
	timeout time.Duration
}

// New returns a scheduler giving every run at most timeout.
func New(timeout time.Duration) *Scheduler {
	logger := slogLogger{slog.With("op", "Scheduler")}
	ctx, cancel := context.WithCancel(context.Background())
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)
	return &Scheduler{cron: c, ctx: ctx, cancel: cancel, timeout: timeout}
}

// Add registers job under name on the standard 5 field cron spec.
func (s *Scheduler) Add(name, spec string, job Job) error {
	const op = "Scheduler.Add"

	_, err := s.cron.AddFunc(spec, func() { s.runJob(name, job) })
	if err != nil {
		return fmt.Errorf("%s: job %q: %w", op, name, err)
	}
	return nil
}

func (s *Scheduler) runJob(name string, job Job) {
	const op = "Scheduler.runJob"
	log := slog.With("op", op, "job", name)

	ctx, cancel := context.WithTimeout(s.ctx, s.timeout)
	defer cancel()

	start := time.Now()
	if err := job(ctx); err != nil {
		log.Error("job failed", "err", err, "duration", time.Since(start))
		return
	}
	log.Info("job done", "duration", time.Since(start))
}

func (s *Scheduler) Start() {
	const op = "Scheduler.Start"
	slog.Info("starting scheduler...", "op", op, "nJobs", len(s.cron.Entries()))
	s.cron.Start()
}

// Stop cancels running jobs and waits for them to return or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	const op = "Scheduler.Stop"
	log := slog.With("op", op)

	log.Info("stopping scheduler...")
	s.cancel()
	done := s.cron.Stop()
	select {
	case <-done.Done():
		log.Info("scheduler is stopped")
	case <-ctx.Done():
		log.Warn("jobs still running", "err", ctx.Err())
	}
}

// ReconcileJob keeps category product lists in sync with products.
func ReconcileJob(r port.CategoryReconciler) Job {
	return func(ctx context.Context) error {
		report, err := r.ReconcileAll(ctx)
		if err != nil {
			return err
		}
		slog.Info("categories reconciled",
			"nScanned", report.Scanned,
			"nUpdated", report.Updated,
			"nDropped", report.Dropped,
			"nAdded", report.Added,
		)
		return nil
	}
}

// DiscountJob clears discounts whose offer has ended.
func DiscountJob(d port.DiscountSweeper) Job {
	return func(ctx context.Context) error {
		n, err := d.ClearExpiredDiscounts(ctx)
		if err != nil {
			return err
		}
		slog.Info("expired discounts cleared", "nProducts", n)
		return nil
	}
}
