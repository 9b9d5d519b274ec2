package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/niksmo/catalog/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reconcilerFunc func(context.Context) (domain.ReconcileReport, error)

func (f reconcilerFunc) ReconcileAll(ctx context.Context) (domain.ReconcileReport, error) {
	return f(ctx)
}

type sweeperFunc func(context.Context) (int, error)

func (f sweeperFunc) ClearExpiredDiscounts(ctx context.Context) (int, error) {
	return f(ctx)
}

func TestSchedulerAdd(t *testing.T) {
	s := New(time.Second)

	require.NoError(t, s.Add("reconcile", "30 0 * * *", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("discounts", "0 * * * *", func(context.Context) error { return nil }))
	assert.Len(t, s.cron.Entries(), 2)

	err := s.Add("broken", "every minute", func(context.Context) error { return nil })
	assert.ErrorContains(t, err, "broken")
}

func TestRunJobTimeout(t *testing.T) {
	s := New(10 * time.Millisecond)

	var deadline bool
	s.runJob("slow", func(ctx context.Context) error {
		_, deadline = ctx.Deadline()
		<-ctx.Done()
		return ctx.Err()
	})
	assert.True(t, deadline)
}

func TestStopCancelsJobs(t *testing.T) {
	s := New(time.Minute)
	s.Stop(t.Context())

	var err error
	s.runJob("after-stop", func(ctx context.Context) error {
		err = ctx.Err()
		return err
	})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReconcileJob(t *testing.T) {
	called := false
	job := ReconcileJob(reconcilerFunc(func(context.Context) (domain.ReconcileReport, error) {
		called = true
		return domain.ReconcileReport{Scanned: 2, Updated: 1}, nil
	}))
	require.NoError(t, job(t.Context()))
	assert.True(t, called)

	errStore := errors.New("store is down")
	job = ReconcileJob(reconcilerFunc(func(context.Context) (domain.ReconcileReport, error) {
		return domain.ReconcileReport{}, errStore
	}))
	assert.ErrorIs(t, job(t.Context()), errStore)
}

func TestDiscountJob(t *testing.T) {
	job := DiscountJob(sweeperFunc(func(context.Context) (int, error) { return 3, nil }))
	assert.NoError(t, job(t.Context()))

	errStore := errors.New("store is down")
	job = DiscountJob(sweeperFunc(func(context.Context) (int, error) { return 0, errStore }))
	assert.ErrorIs(t, job(t.Context()), errStore)
}
