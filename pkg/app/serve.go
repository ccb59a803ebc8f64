package app

import (
	"context"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
)

const shutdownTimeout = 10 * time.Second

// Serve listens on addr until ctx is cancelled, then shuts the app down.
// A listen failure (port in use, bad address) is returned as is. A ctx that is
// already done when the port is bound returns without serving.
func Serve(ctx context.Context, app *fiber.App, addr string) error {
	ln, err := net.Listen(app.Config().Network, addr)
	if err != nil {
		return err
	}
	if ctx.Err() != nil {
		return ln.Close()
	}

	errCh := make(chan error, 1)
	go func() { errCh <- app.Listener(ln) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		shutdownErr := app.ShutdownWithContext(shutdownCtx)
		// Listener may not have reached Accept yet; closing ln makes it return.
		_ = ln.Close()
		if err := <-errCh; err != nil {
			return err
		}
		return shutdownErr
	}
}
