package main

import (
	"context"
	"flag"
	"net/http"

	"github.com/flavioribeiro/donut-cc/internal/controllers/engine"
	"github.com/flavioribeiro/donut-cc/internal/web"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func main() {
	input := flag.String("input", engine.StdinInput, "MPEG-TS input file, - reads stdin")
	serve := flag.Bool("serve", false, "keep serving the HTTP caption API once the input ends")
	flag.Parse()

	fx.New(
		web.Dependencies(),
		fx.Invoke(func(*http.Server) {}),
		fx.Invoke(func(
			lc fx.Lifecycle,
			e *engine.CaptionEngine,
			shutdowner fx.Shutdowner,
			l *zap.SugaredLogger,
		) {
			ctx, cancel := context.WithCancel(context.Background())
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					go func() {
						if err := e.Run(ctx, *input); err != nil {
							l.Errorw("caption decoding has failed",
								"input", *input,
								"error", err,
							)
						}
						if !*serve {
							shutdowner.Shutdown()
						}
					}()
					return nil
				},
				OnStop: func(context.Context) error {
					cancel()
					return nil
				},
			})
		}),
	).Run()
}
