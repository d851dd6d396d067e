package engine

import (
	"context"
	"io"
	"os"

	"github.com/flavioribeiro/donut-cc/internal/controllers"
	"github.com/flavioribeiro/donut-cc/internal/controllers/streamers"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const StdinInput = "-"

type CaptionEngineParams struct {
	fx.In
	L        *zap.SugaredLogger
	Streamer streamers.DonutStreamer
	Decoder  *controllers.CaptionDecoder
	Sink     entities.CueSink
}

// CaptionEngine streams an MPEG-TS input through the caption middlewares.
type CaptionEngine struct {
	p CaptionEngineParams
}

func NewCaptionEngine(p CaptionEngineParams) *CaptionEngine {
	return &CaptionEngine{p}
}

// Run decodes input, a file path or StdinInput, until it ends or ctx is done.
func (e *CaptionEngine) Run(ctx context.Context, input string) error {
	if input == "" {
		return entities.ErrMissingInput
	}

	r, closer, err := open(input)
	if err != nil {
		return err
	}
	defer closer()

	return e.Serve(ctx, input, r)
}

// Serve decodes the transport stream in r.
func (e *CaptionEngine) Serve(ctx context.Context, streamID string, r io.Reader) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sp := &entities.StreamParameters{
		Cancel:       cancel,
		Ctx:          ctx,
		StreamID:     streamID,
		MetadataSink: e.p.Sink,
	}
	err := e.p.Streamer.Stream(r, sp)

	m := e.p.Decoder.GetMetrics()
	e.p.L.Infow("caption decoding has finished",
		"stream", streamID,
		"packetsProcessed", m.PacketsProcessed,
		"captionsDecoded", m.CaptionsDecoded,
		"errors", m.Errors,
		"malformed", m.MalformedStructures,
		"services", m.Services,
	)
	return err
}

func open(input string) (io.Reader, func(), error) {
	if input == StdinInput {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(input)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
