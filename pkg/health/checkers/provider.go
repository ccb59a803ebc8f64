package checkers

import (
	"context"
	"time"
)

// Pinger is implemented by upstream API clients that can cheaply verify access.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ProviderChecker reports an upstream API as ready when its Ping succeeds.
type ProviderChecker struct {
	name    string
	pinger  Pinger
	timeout time.Duration
}

func NewProviderChecker(name string, p Pinger) *ProviderChecker {
	return &ProviderChecker{name: name, pinger: p, timeout: 2 * time.Second}
}

func (c *ProviderChecker) Name() string { return c.name }

func (c *ProviderChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.pinger.Ping(ctx)
}
