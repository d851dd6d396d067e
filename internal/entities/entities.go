package entities

import (
	"fmt"
)

type MessageType string

const (
	MessageTypeMetadata MessageType = "metadata"
	MessageTypeCaptions MessageType = "captions"
)

type Message struct {
	Type    MessageType
	Message string
}

type Codec string
type MediaType string

const (
	UnknownCodec Codec = "unknownCodec"
	H264         Codec = "h264"
	H265         Codec = "h265"
	MPEG2Video   Codec = "mpeg2video"
	AAC          Codec = "aac"
)

const (
	UnknownType MediaType = "unknownMediaType"
	VideoType   MediaType = "video"
	AudioType   MediaType = "audio"
)

type Stream struct {
	Codec Codec
	Type  MediaType
	Id    uint16
	Index uint16
}

type StreamInfo struct {
	Streams []Stream
}

func (s *StreamInfo) VideoStreams() []Stream {
	var result []Stream
	for _, s := range s.Streams {
		if s.Type == VideoType {
			result = append(result, s)
		}
	}
	return result
}

// CaptionVideoStream reports whether captions can be carried by the stream.
func (s Stream) CaptionVideoStream() bool {
	return s.Type == VideoType && (s.Codec == H264 || s.Codec == MPEG2Video)
}

type Cue struct {
	Type      string
	Service   int   `json:",omitempty"`
	StartTime int64 `json:",omitempty"`
	Text      string
	Style     *CueStyle `json:",omitempty"`
}

// CueStyle carries the operator overrides a renderer applies on top of the stream styling.
type CueStyle struct {
	FontSize        string   `json:",omitempty"`
	FontFamily      string   `json:",omitempty"`
	BackgroundColor string   `json:",omitempty"`
	TextColor       string   `json:",omitempty"`
	EdgeStyle       string   `json:",omitempty"`
	WindowOpacity   *float64 `json:",omitempty"`
}

type Config struct {
	HTTPPort int32  `required:"true" default:"8080"`
	HTTPHost string `required:"true" default:"0.0.0.0"`

	// MPEG-TS consists of single units of 188 bytes, 188*7 fits an MTU of 1500.
	TSReadBufferSizeBytes int `required:"true" default:"1316"`

	Decode608 bool `default:"true"`

	PreferredService int     `default:"1"`
	CaptionsEnabled  bool    `default:"true"`
	FontSize         string  `default:""`
	FontFamily       string  `default:""`
	BackgroundColor  string  `default:""`
	TextColor        string  `default:""`
	EdgeStyle        string  `default:""`
	WindowOpacity    float64 `default:"-1"`
}

// DecoderConfig extracts the caption decoder settings.
func (c *Config) DecoderConfig() CaptionDecoderConfig {
	dc := CaptionDecoderConfig{
		PreferredService: c.PreferredService,
		FontSize:         c.FontSize,
		FontFamily:       c.FontFamily,
		BackgroundColor:  c.BackgroundColor,
		TextColor:        c.TextColor,
		EdgeStyle:        c.EdgeStyle,
		Enabled:          c.CaptionsEnabled,
	}
	// a negative opacity keeps the stream's own window fill
	if c.WindowOpacity >= 0 {
		opacity := c.WindowOpacity
		dc.WindowOpacity = &opacity
	}
	return dc
}

func (c *Config) String() string {
	if c == nil {
		return ""
	}
	return fmt.Sprintf("Config %v:%v service=%d", c.HTTPHost, c.HTTPPort, c.PreferredService)
}
