package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/flavioribeiro/donut-cc/internal/entities"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewHTTPServer serves the caption API for the lifetime of the fx app.
func NewHTTPServer(
	c *entities.Config,
	mux *http.ServeMux,
	l *zap.SugaredLogger,
	lc fx.Lifecycle,
) *http.Server {
	srv := &http.Server{
		Addr:              net.JoinHostPort(c.HTTPHost, fmt.Sprint(c.HTTPPort)),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return fmt.Errorf("caption api listen on %s: %w", srv.Addr, err)
			}
			l.Infow("caption api is listening",
				"addr", ln.Addr().String(),
			)
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					l.Errorw("caption api has stopped",
						"error", err,
					)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			l.Infow("caption api is shutting down")
			return srv.Shutdown(ctx)
		},
	})
	return srv
}
