package web

import (
	"context"

	"github.com/flavioribeiro/donut-cc/internal/controllers"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/flavioribeiro/donut-cc/internal/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// NewCaptionDecoder builds the caption decoder and sends its captions to the cue sink.
func NewCaptionDecoder(
	c *entities.Config,
	l *zap.SugaredLogger,
	m *mapper.Mapper,
	sink entities.CueSink,
	lc fx.Lifecycle,
) (*controllers.CaptionDecoder, error) {
	d := controllers.NewCaptionDecoder(l)
	config := c.DecoderConfig()

	err := d.Initialize(config, entities.CaptionCallbacks{
		OnCaption: func(caption entities.DecodedCaption) {
			cue, ok := m.FromDecodedCaptionToCue(caption, config)
			if !ok {
				return
			}
			if err := controllers.SendCue(sink, cue); err != nil {
				l.Errorw("failed to send caption cue",
					"service", caption.Service,
					"error", err,
				)
			}
		},
		OnError: func(err error) {
			l.Errorw("caption decoder fault",
				"error", err,
			)
		},
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			d.Close()
			return nil
		},
	})
	return d, nil
}
