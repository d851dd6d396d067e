package streammiddlewares

import (
	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/donut-cc/eia608"
	"github.com/flavioribeiro/donut-cc/internal/controllers"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/flavioribeiro/donut-cc/internal/mapper"
	"go.uber.org/fx"
)

type eia608Middleware struct {
	c      *entities.Config
	m      *mapper.Mapper
	reader *eia608.EIA608Reader
}

type EIA608Response struct {
	fx.Out
	EIA608Middleware entities.StreamMiddleware `group:"middlewares"`
}

// NewEIA608 creates a new EIA608 middleware
func NewEIA608(c *entities.Config, m *mapper.Mapper) EIA608Response {
	return EIA608Response{
		EIA608Middleware: &eia608Middleware{c: c, m: m, reader: eia608.NewEIA608Reader()},
	}
}

// Act parses and send eia608 data from mpeg-ts to metadata sink
func (e *eia608Middleware) Act(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) error {
	if !e.c.Decode608 || !isCaptionVideoPES(mpegTSDemuxData, sp) {
		return nil
	}
	for _, v := range sp.StreamInfo.VideoStreams() {
		if v.Id != mpegTSDemuxData.PID || v.Codec != entities.H264 {
			continue
		}

		captions, err := e.reader.Parse(mpegTSDemuxData.PES.Data)
		if err != nil {
			return err
		}
		pts := e.m.FromPESDataToPTS(mpegTSDemuxData.PES)
		for _, text := range captions {
			if text == "" {
				continue
			}
			if err := controllers.SendCue(sp.MetadataSink, e.m.FromEIA608TextToCue(pts, text)); err != nil {
				return err
			}
		}
	}
	return nil
}
