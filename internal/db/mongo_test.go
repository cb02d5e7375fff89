package db_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"notekeeper/internal/config"
	"notekeeper/internal/db"
)

var errNotReady = errors.New("connection refused")

type fakeDialer struct {
	failures int
	calls    int
}

func (p *fakeDialer) open(context.Context) (string, error) {
	p.calls++
	if p.calls <= p.failures {
		return "", errNotReady
	}
	return "handle", nil
}

func TestRetry(t *testing.T) {
	policy := db.RetryPolicy{Attempts: 10, Delay: time.Millisecond}

	tests := []struct {
		name      string
		failures  int
		wantCalls int
		wantErr   bool
	}{
		{name: "first attempt succeeds", failures: 0, wantCalls: 1},
		{name: "store comes up later", failures: 4, wantCalls: 5},
		{name: "store comes up on last attempt", failures: 9, wantCalls: 10},
		{name: "store never comes up", failures: 100, wantCalls: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dialer := &fakeDialer{failures: tt.failures}

			got, err := db.Retry(context.Background(), policy, zap.NewNop(), dialer.open)
			assert.Equal(t, tt.wantCalls, dialer.calls)

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, db.ErrUnreachable)
				assert.ErrorIs(t, err, errNotReady)
				assert.Empty(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "handle", got)
		})
	}
}

func TestRetryWaitsFixedDelay(t *testing.T) {
	policy := db.RetryPolicy{Attempts: 3, Delay: 20 * time.Millisecond}
	dialer := &fakeDialer{failures: 100}

	start := time.Now()
	_, err := db.Retry(context.Background(), policy, zap.NewNop(), dialer.open)
	elapsed := time.Since(start)

	require.ErrorIs(t, err, db.ErrUnreachable)
	assert.Equal(t, 3, dialer.calls)
	// Two waits between three attempts, none after the last.
	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond)
}

func TestRetryLogsNoRetryAfterLastAttempt(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	policy := db.RetryPolicy{Attempts: 3, Delay: time.Millisecond}
	dialer := &fakeDialer{failures: 100}

	_, err := db.Retry(context.Background(), policy, zap.New(core), dialer.open)
	require.ErrorIs(t, err, db.ErrUnreachable)

	entries := logs.AllUntimed()
	require.Len(t, entries, 3)
	for _, e := range entries[:2] {
		assert.Equal(t, "database not ready yet", e.Message)
		assert.Contains(t, e.ContextMap(), "retry_in")
	}

	last := entries[2]
	assert.Equal(t, "database not ready, giving up", last.Message)
	assert.NotContains(t, last.ContextMap(), "retry_in")
	assert.EqualValues(t, 3, last.ContextMap()["attempts"])
}

func TestRetryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	policy := db.RetryPolicy{Attempts: 10, Delay: time.Hour}
	dialer := &fakeDialer{failures: 100}

	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := db.Retry(ctx, policy, zap.NewNop(), dialer.open)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, dialer.calls)
}

func TestRetryRejectsEmptyBudget(t *testing.T) {
	dialer := &fakeDialer{}
	_, err := db.Retry(context.Background(), db.RetryPolicy{}, zap.NewNop(), dialer.open)
	require.ErrorIs(t, err, db.ErrUnreachable)
	assert.Zero(t, dialer.calls)
}

func TestDefaultRetryPolicy(t *testing.T) {
	assert.Equal(t, 10, db.DefaultRetryPolicy.Attempts)
	assert.Equal(t, 5*time.Second, db.DefaultRetryPolicy.Delay)
}

func TestConnectUnreachable(t *testing.T) {
	cfg := config.MongoConfig{
		URI:            "mongodb://127.0.0.1:1/?directConnection=true",
		Database:       "notes_db",
		ConnectTimeout: 50 * time.Millisecond,
	}

	handle, err := db.Connect(context.Background(), cfg, db.RetryPolicy{Attempts: 2, Delay: time.Millisecond}, zap.NewNop())
	require.ErrorIs(t, err, db.ErrUnreachable)
	assert.Nil(t, handle)
}
