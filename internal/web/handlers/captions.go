package handlers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/flavioribeiro/donut-cc/internal/controllers"
	"github.com/flavioribeiro/donut-cc/internal/entities"
	"go.uber.org/zap"
)

// CaptionsHandler exposes the caption decoder read and control operations.
type CaptionsHandler struct {
	l       *zap.SugaredLogger
	decoder *controllers.CaptionDecoder
}

func NewCaptionsHandler(l *zap.SugaredLogger, decoder *controllers.CaptionDecoder) *CaptionsHandler {
	return &CaptionsHandler{l: l, decoder: decoder}
}

// Services lists the services that received data.
func (h *CaptionsHandler) Services(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return entities.ErrHTTPGetOnly
	}
	return WriteJson(w, h.decoder.GetAvailableServices())
}

// Captions returns the decoded state of the service in the query.
func (h *CaptionsHandler) Captions(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return entities.ErrHTTPGetOnly
	}
	services, err := queryServices(r)
	if err != nil {
		return err
	}
	if len(services) != 1 {
		return entities.ErrMissingService
	}

	c, ok := h.decoder.GetServiceCaptions(services[0])
	if !ok {
		http.Error(w, fmt.Sprintf("service %d has no captions", services[0]), http.StatusNotFound)
		return nil
	}
	return WriteJson(w, c)
}

// SelectService changes the service delivered to the caption callback.
func (h *CaptionsHandler) SelectService(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return entities.ErrHTTPPostOnly
	}
	services, err := queryServices(r)
	if err != nil {
		return err
	}
	if len(services) != 1 {
		return entities.ErrMissingService
	}
	if err := h.decoder.SetService(services[0]); err != nil {
		return err
	}
	h.l.Infow("caption service selected",
		"service", services[0],
	)
	return WriteJson(w, h.decoder.GetMetrics())
}

// Clear drops the services in the query, every service when none is given.
func (h *CaptionsHandler) Clear(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodPost {
		return entities.ErrHTTPPostOnly
	}
	services, err := queryServices(r)
	if err != nil {
		return err
	}
	if len(services) == 0 {
		h.decoder.ClearAll()
	}
	for _, s := range services {
		if err := h.decoder.ClearService(s); err != nil {
			return err
		}
	}
	return WriteJson(w, h.decoder.GetAvailableServices())
}

func (h *CaptionsHandler) Metrics(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return entities.ErrHTTPGetOnly
	}
	return WriteJson(w, h.decoder.GetMetrics())
}

func (h *CaptionsHandler) State(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return entities.ErrHTTPGetOnly
	}
	return WriteJson(w, map[string]entities.DecoderState{"State": h.decoder.GetState()})
}

func (h *CaptionsHandler) ExportText(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return entities.ErrHTTPGetOnly
	}
	services, err := queryServices(r)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, err = io.WriteString(w, h.decoder.ExportAsText(services...))
	return err
}

func (h *CaptionsHandler) ExportSRT(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return entities.ErrHTTPGetOnly
	}
	services, err := queryServices(r)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/x-subrip; charset=utf-8")
	_, err = io.WriteString(w, h.decoder.ExportAsSRT(services...))
	return err
}

func queryServices(r *http.Request) ([]int, error) {
	var services []int
	for _, v := range r.URL.Query()["service"] {
		s, err := strconv.Atoi(v)
		if err != nil || !entities.ValidService(s) {
			return nil, fmt.Errorf("%w: %q", entities.ErrInvalidService, v)
		}
		services = append(services, s)
	}
	return services, nil
}
