package health_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/artem13815/agentchat/pkg/health"
	"github.com/artem13815/agentchat/pkg/health/checkers"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestReady_NoCheckers(t *testing.T) {
	assert.NoError(t, health.NewService().Ready(context.Background()))
}

func TestReady_NamesFailingChecker(t *testing.T) {
	down := errors.New("groq http 401: Invalid API Key")
	svc := health.NewService(
		checkers.NewProviderChecker("ok", pingerFunc(func(context.Context) error { return nil })),
		checkers.NewProviderChecker("groq", pingerFunc(func(context.Context) error { return down })),
	)

	err := svc.Ready(context.Background())
	assert.ErrorIs(t, err, down)
	assert.EqualError(t, err, "groq: groq http 401: Invalid API Key")
}

func TestProviderChecker_AppliesTimeout(t *testing.T) {
	c := checkers.NewProviderChecker("slow", pingerFunc(func(ctx context.Context) error {
		deadline, ok := ctx.Deadline()
		assert.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(2*time.Second), deadline, time.Second)
		return nil
	}))

	assert.Equal(t, "slow", c.Name())
	assert.NoError(t, c.Check(context.Background()))
}
