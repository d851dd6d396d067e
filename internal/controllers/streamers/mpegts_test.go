package streamers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"github.com/flavioribeiro/donut-cc/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingMiddleware struct {
	seen []*astits.DemuxerData
	err  error
}

func (r *recordingMiddleware) Act(d *astits.DemuxerData, sp *entities.StreamParameters) error {
	r.seen = append(r.seen, d)
	return r.err
}

func newStreamer(middlewares ...entities.StreamMiddleware) *MpegTSStreamer {
	l := zap.NewNop().Sugar()
	return NewMpegTSStreamer(MpegTSStreamerParams{
		C:           &entities.Config{TSReadBufferSizeBytes: 1316},
		L:           l,
		M:           mapper.NewMapper(l),
		Middlewares: middlewares,
	})
}

func TestHandle_UpdatesStreamInfoAndRunsMiddlewares(t *testing.T) {
	failing := &recordingMiddleware{err: errors.New("boom")}
	recording := &recordingMiddleware{}
	s := newStreamer(failing, recording)
	sp := &entities.StreamParameters{StreamID: "test"}

	pmt := &astits.DemuxerData{PMT: &astits.PMTData{
		ElementaryStreams: []*astits.PMTElementaryStream{
			{ElementaryPID: 256, StreamType: astits.StreamTypeMPEG2Video},
		},
	}}
	s.handle(pmt, sp)

	require.NotNil(t, sp.StreamInfo)
	assert.Equal(t, []entities.Stream{
		{Codec: entities.MPEG2Video, Type: entities.VideoType, Id: 256},
	}, sp.StreamInfo.Streams)
	assert.Len(t, failing.seen, 1)
	assert.Equal(t, []*astits.DemuxerData{pmt}, recording.seen)

	s.handle(&astits.DemuxerData{PID: 256}, sp)
	assert.Len(t, recording.seen, 2)
	assert.Len(t, sp.StreamInfo.Streams, 1)
}

func TestStream_Cancelled(t *testing.T) {
	s := newStreamer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, s.Stream(strings.NewReader(""), &entities.StreamParameters{Ctx: ctx, Cancel: cancel}))
}
