package streamers

import (
	"bufio"
	"context"
	"errors"
	"io"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/flavioribeiro/donut-cc/internal/mapper"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type MpegTSStreamer struct {
	c *entities.Config
	l *zap.SugaredLogger
	m *mapper.Mapper

	middlewares []entities.StreamMiddleware
}

type MpegTSStreamerParams struct {
	fx.In
	C *entities.Config
	L *zap.SugaredLogger
	M *mapper.Mapper

	Middlewares []entities.StreamMiddleware `group:"middlewares"`
}

func NewMpegTSStreamer(p MpegTSStreamerParams) *MpegTSStreamer {
	return &MpegTSStreamer{
		c:           p.C,
		l:           p.L,
		m:           p.M,
		middlewares: p.Middlewares,
	}
}

// Stream demuxes the transport stream in r and runs the middlewares on every
// demuxed unit until r is exhausted or sp.Ctx is done.
func (c *MpegTSStreamer) Stream(r io.Reader, sp *entities.StreamParameters) error {
	// fetching mpeg-ts data
	// ref https://tsduck.io/download/docs/mpegts-introduction.pdf
	mpegTSDemuxer := astits.NewDemuxer(sp.Ctx, bufio.NewReaderSize(r, c.c.TSReadBufferSizeBytes))

	c.l.Infow("streaming has started",
		"stream", sp.StreamID,
	)

	for {
		select {
		case <-sp.Ctx.Done():
			if errors.Is(sp.Ctx.Err(), context.Canceled) {
				c.l.Infow("streaming has stopped due cancellation")
				return nil
			}
			return sp.Ctx.Err()
		default:
			mpegTSDemuxData, err := mpegTSDemuxer.NextData()
			if err != nil {
				if errors.Is(err, astits.ErrNoMorePackets) || errors.Is(err, io.EOF) {
					c.l.Infow("streaming has reached the end of input",
						"stream", sp.StreamID,
					)
					return nil
				}
				c.l.Errorw("failed to demux mpeg-ts",
					"error", err,
				)
				return err
			}
			c.handle(mpegTSDemuxData, sp)
		}
	}
}

func (c *MpegTSStreamer) handle(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) {
	if mpegTSDemuxData.PMT != nil {
		sp.StreamInfo = c.m.FromPMTToStreamInfo(mpegTSDemuxData.PMT)
		c.l.Infow("stream info updated",
			"streams", sp.StreamInfo.Streams,
		)
	}

	// calling all registered middlewares
	for _, m := range c.middlewares {
		if err := m.Act(mpegTSDemuxData, sp); err != nil {
			c.l.Errorw("middleware error",
				"error", err,
			)
		}
	}
}
