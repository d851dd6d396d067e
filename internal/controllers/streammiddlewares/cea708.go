package streammiddlewares

import (
	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/donut-cc/internal/controllers"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/flavioribeiro/donut-cc/internal/mapper"
	"go.uber.org/fx"
)

type cea708Middleware struct {
	decoder *controllers.CaptionDecoder
	m       *mapper.Mapper
}

type CEA708Response struct {
	fx.Out
	CEA708Middleware entities.StreamMiddleware `group:"middlewares"`
}

// NewCEA708 creates a new CEA-708 middleware
func NewCEA708(decoder *controllers.CaptionDecoder, m *mapper.Mapper) CEA708Response {
	return CEA708Response{
		CEA708Middleware: &cea708Middleware{decoder: decoder, m: m},
	}
}

// Act feeds the video PES of caption capable streams to the caption decoder.
// Decoded captions leave through the decoder callbacks.
func (c *cea708Middleware) Act(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) error {
	if !isCaptionVideoPES(mpegTSDemuxData, sp) {
		return nil
	}
	c.decoder.ProcessVideoPayload(mpegTSDemuxData.PES.Data, c.m.FromPESDataToPTS(mpegTSDemuxData.PES))
	return nil
}

func isCaptionVideoPES(d *astits.DemuxerData, sp *entities.StreamParameters) bool {
	if d.PES == nil || sp.StreamInfo == nil {
		return false
	}
	for _, v := range sp.StreamInfo.VideoStreams() {
		if v.Id == d.PID && v.CaptionVideoStream() {
			return true
		}
	}
	return false
}
