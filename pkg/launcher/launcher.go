package launcher

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/artem13815/agentchat/pkg/logger"
)

// Task runs until ctx is cancelled or it fails.
type Task func(ctx context.Context) error

// ErrNotReady is returned when the backend never answers its health probe.
var ErrNotReady = errors.New("backend did not become ready")

// Launcher starts the backend, waits for its health endpoint, then runs the
// frontend in the foreground.
type Launcher struct {
	Backend   Task
	Frontend  Task
	HealthURL string
	// Interval between health probes; Timeout bounds the whole wait.
	Interval time.Duration
	Timeout  time.Duration

	log    logger.Logger
	httpDo *http.Client
}

func New(backend, frontend Task, healthURL string, log logger.Logger) *Launcher {
	return &Launcher{
		Backend:   backend,
		Frontend:  frontend,
		HealthURL: healthURL,
		Interval:  250 * time.Millisecond,
		Timeout:   5 * time.Second,
		log:       log,
		httpDo:    &http.Client{Timeout: time.Second},
	}
}

// Run blocks until the frontend exits or either task fails. Cancelling ctx
// stops both.
func (l *Launcher) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		l.log.Info("running backend server", "health_url", l.HealthURL)
		if err := l.Backend(gctx); err != nil {
			l.log.Error("backend server failed to start", "error", err)
			return fmt.Errorf("backend server failed to start: %w", err)
		}
		return nil
	})

	if err := l.waitReady(gctx); err != nil {
		interrupted := ctx.Err() != nil
		cancel()
		if gerr := g.Wait(); gerr != nil {
			return gerr
		}
		if interrupted {
			l.log.Info("startup interrupted")
			return nil
		}
		l.log.Error("backend not ready", "error", err)
		return err
	}

	l.log.Info("running frontend server")
	ferr := l.Frontend(gctx)
	cancel()
	gerr := g.Wait()
	if ferr != nil {
		l.log.Error("frontend server failed to start", "error", ferr)
		return fmt.Errorf("frontend server failed to start: %w", ferr)
	}
	return gerr
}

func (l *Launcher) waitReady(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, l.Timeout)
	defer cancel()

	ticker := time.NewTicker(l.Interval)
	defer ticker.Stop()
	for {
		if l.probe(ctx) {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w at %s: %v", ErrNotReady, l.HealthURL, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *Launcher) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.HealthURL, nil)
	if err != nil {
		return false
	}
	resp, err := l.httpDo.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
