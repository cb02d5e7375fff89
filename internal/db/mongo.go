package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"

	"notekeeper/internal/config"
)

// ErrUnreachable is returned when every bootstrap attempt failed.
var ErrUnreachable = errors.New("database unreachable")

// RetryPolicy is a fixed-delay retry budget for the startup connection.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
}

// DefaultRetryPolicy gives the store roughly 50 seconds to come up.
var DefaultRetryPolicy = RetryPolicy{Attempts: 10, Delay: 5 * time.Second}

// Handle is a verified connection to the notes database. It is created once
// at startup and shared read-only by every request.
type Handle struct {
	client   *mongo.Client
	database *mongo.Database
}

// Collection returns the named collection of the connected database.
func (h *Handle) Collection(name string) *mongo.Collection {
	return h.database.Collection(name)
}

// Close disconnects the underlying client.
func (h *Handle) Close(ctx context.Context) error {
	if err := h.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("disconnect mongo: %w", err)
	}
	return nil
}

// Connect opens a client against cfg.URI and pings it, retrying under policy
// until the server answers or the budget is spent.
func Connect(ctx context.Context, cfg config.MongoConfig, policy RetryPolicy, log *zap.Logger) (*Handle, error) {
	client, err := Retry(ctx, policy, log, func(ctx context.Context) (*mongo.Client, error) {
		return dial(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}
	return &Handle{client: client, database: client.Database(cfg.Database)}, nil
}

func dial(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(cfg.URI)
	if cfg.ConnectTimeout > 0 {
		opts.SetServerSelectionTimeout(cfg.ConnectTimeout)
	}

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}
	return client, nil
}

// Retry calls open until it succeeds, waiting policy.Delay between failures.
// After policy.Attempts failures it returns ErrUnreachable wrapping the last
// error. Cancelling ctx aborts the wait.
func Retry[T any](ctx context.Context, policy RetryPolicy, log *zap.Logger, open func(context.Context) (T, error)) (T, error) {
	var zero T
	if policy.Attempts < 1 {
		return zero, fmt.Errorf("%w: no connection attempts allowed", ErrUnreachable)
	}

	var lastErr error
	for remaining := policy.Attempts; remaining > 0; remaining-- {
		v, err := open(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if remaining == 1 {
			log.Warn("database not ready, giving up",
				zap.Int("attempts", policy.Attempts),
				zap.Error(err))
			break
		}
		log.Warn("database not ready yet",
			zap.Int("attempts_left", remaining-1),
			zap.Duration("retry_in", policy.Delay),
			zap.Error(err))

		timer := time.NewTimer(policy.Delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("wait for database: %w", ctx.Err())
		}
	}

	return zero, fmt.Errorf("%w after %d attempts: %w", ErrUnreachable, policy.Attempts, lastErr)
}
