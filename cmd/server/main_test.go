package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"notekeeper/internal/config"
)

func TestRunInterruptedDuringBootstrapIsCleanStop(t *testing.T) {
	cfg := &config.Config{
		Mongo: config.MongoConfig{
			URI:            "mongodb://127.0.0.1:1/?directConnection=true",
			Database:       "notes_db",
			Collection:     "notes",
			ConnectTimeout: 50 * time.Millisecond,
		},
		Shutdown: config.ShutdownConfig{Timeout: time.Second},
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	core, logs := observer.New(zapcore.InfoLevel)

	done := make(chan error, 1)
	go func() { done <- run(ctx, cfg, zap.New(core)) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("run did not return after cancellation")
	}

	assert.Equal(t, 1, logs.FilterMessage("startup interrupted before the database was reachable").Len())
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
