package streamers

import (
	"io"

	"github.com/flavioribeiro/donut-cc/internal/entities"
)

type DonutStreamer interface {
	Stream(r io.Reader, sp *entities.StreamParameters) error
}
