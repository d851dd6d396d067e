package entities

import (
	"context"

	"github.com/asticode/go-astits"
)

// CueSink receives the JSON messages produced while streaming.
type CueSink interface {
	SendText(msg string) error
}

type StreamParameters struct {
	Cancel context.CancelFunc
	Ctx    context.Context

	StreamID   string // ie: file name, stdin
	StreamInfo *StreamInfo

	MetadataSink CueSink
}

type StreamMiddleware interface {
	Act(mpegTSDemuxData *astits.DemuxerData, sp *StreamParameters) error
}
