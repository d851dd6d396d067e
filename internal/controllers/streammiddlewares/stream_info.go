package streammiddlewares

import (
	"encoding/json"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/flavioribeiro/donut-cc/internal/mapper"
	"go.uber.org/fx"
)

type streamInfoMiddleware struct {
	m *mapper.Mapper
}

type StreamInfoResponse struct {
	fx.Out
	StreamInfoMiddleware entities.StreamMiddleware `group:"middlewares"`
}

// NewStreamInfo creates a new StreamInfo middleware
func NewStreamInfo(m *mapper.Mapper) StreamInfoResponse {
	return StreamInfoResponse{
		StreamInfoMiddleware: &streamInfoMiddleware{m: m},
	}
}

// Act sends the streams of every PMT to the metadata sink
func (s *streamInfoMiddleware) Act(mpegTSDemuxData *astits.DemuxerData, sp *entities.StreamParameters) error {
	if mpegTSDemuxData.PMT == nil {
		return nil
	}

	si := s.m.FromPMTToStreamInfo(mpegTSDemuxData.PMT)
	for _, st := range si.Streams {
		msg, err := json.Marshal(entities.Message{
			Type:    entities.MessageTypeMetadata,
			Message: string(st.Codec) + "/" + string(st.Type),
		})
		if err != nil {
			return err
		}
		if err := sp.MetadataSink.SendText(string(msg)); err != nil {
			return err
		}
	}
	return nil
}
