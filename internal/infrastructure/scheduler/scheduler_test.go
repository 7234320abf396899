package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestAdd_RejectsBadSpec(t *testing.T) {
	s := New(zap.NewNop(), time.Second)
	assert.Error(t, s.Add("reconcile", "every night", func(context.Context) error { return nil }))
	assert.Equal(t, 0, s.Len())
}

func TestAdd_EmptySpecDisablesJob(t *testing.T) {
	s := New(zap.NewNop(), time.Second)
	require.NoError(t, s.Add("idempotency-cleanup", "", func(context.Context) error { return nil }))
	require.NoError(t, s.Add("reconcile", "  ", func(context.Context) error { return nil }))
	assert.Equal(t, 0, s.Len())
}

func TestRun_InvokesJobWithDeadline(t *testing.T) {
	s := New(zap.NewNop(), time.Second)

	called := false
	s.run("reconcile", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		called = ok
		return errors.New("logged, not returned")
	})

	assert.True(t, called)
}

func TestStartStop(t *testing.T) {
	s := New(zap.NewNop(), time.Second)
	require.NoError(t, s.Add("reconcile", "0 0 3 * * *", func(context.Context) error { return nil }))
	assert.Equal(t, 1, s.Len())

	s.Start()
	s.Stop()
}
