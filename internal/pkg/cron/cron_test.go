package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteRecordsOutcome(t *testing.T) {
	s := New()
	s.Register(Job{Name: "ok", Interval: time.Hour, Fn: func(ctx context.Context) error { return nil }})
	s.Register(Job{Name: "bad", Interval: time.Hour, Fn: func(ctx context.Context) error { return errors.New("boom") }})

	s.execute(context.Background(), s.jobs["ok"])
	s.execute(context.Background(), s.jobs["bad"])

	assert.Equal(t, StatusFulfill, s.jobs["ok"].status)
	assert.Equal(t, StatusReject, s.jobs["bad"].status)
	assert.Equal(t, "boom", s.jobs["bad"].message)
}

func TestExecuteSurvivesJobPanic(t *testing.T) {
	s := New()
	calls := 0
	s.Register(Job{Name: "flaky", Interval: time.Hour, Fn: func(ctx context.Context) error {
		calls++
		if calls == 1 {
			panic("disk gone")
		}
		return nil
	}})

	js := s.jobs["flaky"]
	require.NotPanics(t, func() { s.execute(context.Background(), js) })
	assert.Equal(t, StatusReject, js.status)
	assert.Contains(t, js.message, "disk gone")

	// The job stays schedulable after a panicked run.
	s.execute(context.Background(), js)
	assert.Equal(t, StatusFulfill, js.status)
}
