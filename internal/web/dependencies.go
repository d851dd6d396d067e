package web

import (
	"log"
	"os"

	"github.com/flavioribeiro/donut-cc/internal/controllers"
	"github.com/flavioribeiro/donut-cc/internal/controllers/engine"
	"github.com/flavioribeiro/donut-cc/internal/controllers/streamers"
	"github.com/flavioribeiro/donut-cc/internal/controllers/streammiddlewares"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/flavioribeiro/donut-cc/internal/mapper"
	"github.com/flavioribeiro/donut-cc/internal/web/handlers"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

func Dependencies() fx.Option {
	var c entities.Config
	err := envconfig.Process("dtvcc", &c)
	if err != nil {
		log.Fatal(err.Error())
	}

	return fx.Options(
		// HTTP Server
		fx.Provide(NewHTTPServer),

		// HTTP router
		fx.Provide(NewServeMux),

		// HTTP handlers
		fx.Provide(handlers.NewCaptionsHandler),

		// Controllers
		fx.Provide(NewCaptionDecoder),
		fx.Provide(streamers.NewMpegTSStreamer),
		fx.Provide(func(s *streamers.MpegTSStreamer) streamers.DonutStreamer {
			return s
		}),
		fx.Provide(engine.NewCaptionEngine),

		// Stream middlewares
		fx.Provide(streammiddlewares.NewStreamInfo),
		fx.Provide(streammiddlewares.NewCEA708),
		fx.Provide(streammiddlewares.NewEIA608),

		// Mappers
		fx.Provide(mapper.NewMapper),

		// Cue output
		fx.Provide(func() entities.CueSink {
			return controllers.NewJSONLinesSink(os.Stdout)
		}),

		// Logging, Config constructors
		fx.Provide(func() *zap.SugaredLogger {
			logger, _ := zap.NewProduction()
			return logger.Sugar()
		}),
		fx.Provide(func() *entities.Config {
			return &c
		}),
	)
}
