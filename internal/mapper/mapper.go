package mapper

import (
	"github.com/asticode/go-astits"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"go.uber.org/zap"
)

type Mapper struct {
	l *zap.SugaredLogger
}

func NewMapper(l *zap.SugaredLogger) *Mapper {
	return &Mapper{l: l}
}

func (m *Mapper) FromMpegTsStreamTypeToCodec(st astits.StreamType) entities.Codec {
	switch st {
	case astits.StreamTypeH264Video:
		return entities.H264
	case astits.StreamTypeH265Video:
		return entities.H265
	case astits.StreamTypeMPEG2Video:
		return entities.MPEG2Video
	case astits.StreamTypeAACAudio:
		return entities.AAC
	}
	m.l.Debugw("no codec mapping",
		"streamType", st,
	)
	return entities.UnknownCodec
}

func (m *Mapper) FromMpegTsStreamTypeToType(st astits.StreamType) entities.MediaType {
	if st.IsVideo() {
		return entities.VideoType
	}
	if st.IsAudio() {
		return entities.AudioType
	}
	m.l.Debugw("no media type mapping",
		"streamType", st,
	)
	return entities.UnknownType
}

func (m *Mapper) FromElementaryStreamToEntityStream(es *astits.PMTElementaryStream) entities.Stream {
	return entities.Stream{
		Codec: m.FromMpegTsStreamTypeToCodec(es.StreamType),
		Type:  m.FromMpegTsStreamTypeToType(es.StreamType),
		Id:    es.ElementaryPID,
	}
}

func (m *Mapper) FromPMTToStreamInfo(pmt *astits.PMTData) *entities.StreamInfo {
	si := &entities.StreamInfo{}
	for i, es := range pmt.ElementaryStreams {
		s := m.FromElementaryStreamToEntityStream(es)
		s.Index = uint16(i)
		si.Streams = append(si.Streams, s)
	}
	return si
}

// FromClockReferenceToPTS returns the 90 kHz base of a PES timestamp, nil when absent.
func (m *Mapper) FromClockReferenceToPTS(cr *astits.ClockReference) *int64 {
	if cr == nil {
		return nil
	}
	pts := cr.Base
	return &pts
}

// FromPESDataToPTS returns the presentation timestamp of a PES packet, nil when absent.
func (m *Mapper) FromPESDataToPTS(pes *astits.PESData) *int64 {
	if pes == nil || pes.Header == nil || pes.Header.OptionalHeader == nil {
		return nil
	}
	return m.FromClockReferenceToPTS(pes.Header.OptionalHeader.PTS)
}

// FromDecodedCaptionToCue builds the cue a renderer receives, carrying the
// operator styling overrides. It returns false when captions are disabled.
func (m *Mapper) FromDecodedCaptionToCue(c entities.DecodedCaption, config entities.CaptionDecoderConfig) (entities.Cue, bool) {
	if !config.Enabled {
		return entities.Cue{}, false
	}
	cue := entities.Cue{
		Type:    string(entities.MessageTypeCaptions),
		Service: c.Service,
		Text:    c.Text(),
		Style:   m.FromDecoderConfigToCueStyle(config),
	}
	if c.PTS != nil {
		cue.StartTime = *c.PTS
	}
	return cue, true
}

func (m *Mapper) FromDecoderConfigToCueStyle(config entities.CaptionDecoderConfig) *entities.CueStyle {
	style := entities.CueStyle{
		FontSize:        config.FontSize,
		FontFamily:      config.FontFamily,
		BackgroundColor: config.BackgroundColor,
		TextColor:       config.TextColor,
		EdgeStyle:       config.EdgeStyle,
	}
	if config.WindowOpacity != nil {
		opacity := *config.WindowOpacity
		style.WindowOpacity = &opacity
	}
	if style == (entities.CueStyle{}) {
		return nil
	}
	return &style
}

// FromEIA608TextToCue builds the cue of a CEA-608 field 1 caption.
func (m *Mapper) FromEIA608TextToCue(pts *int64, text string) entities.Cue {
	cue := entities.Cue{
		Type: "eia608",
		Text: text,
	}
	if pts != nil {
		cue.StartTime = *pts
	}
	return cue
}
