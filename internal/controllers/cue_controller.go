package controllers

import (
	"encoding/json"
	"io"
	"sync"

	"github.com/flavioribeiro/donut-cc/internal/entities"
)

func BuildCueMessage(cue entities.Cue) (string, error) {
	c, err := json.Marshal(cue)
	if err != nil {
		return "", err
	}
	return string(c), nil
}

// JSONLinesSink writes every message on its own line.
type JSONLinesSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	return &JSONLinesSink{w: w}
}

func (s *JSONLinesSink) SendText(msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := io.WriteString(s.w, msg+"\n")
	return err
}

// SendCue marshals cue and hands it to sink.
func SendCue(sink entities.CueSink, cue entities.Cue) error {
	msg, err := BuildCueMessage(cue)
	if err != nil {
		return err
	}
	return sink.SendText(msg)
}
