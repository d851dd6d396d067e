package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/flavioribeiro/donut-cc/internal/entities"
)

// ErrorHandlerFunc is an http handler that reports failures by returning them.
type ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request) error

func (f ErrorHandlerFunc) ServeHTTP(w http.ResponseWriter, r *http.Request) error {
	return f(w, r)
}

func SetError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusFor(err))
}

// StatusFor maps caller mistakes to 400 and everything else to 500.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, entities.ErrInvalidService),
		errors.Is(err, entities.ErrMissingService),
		errors.Is(err, entities.ErrHTTPGetOnly),
		errors.Is(err, entities.ErrHTTPPostOnly):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func SetSuccessJson(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
}

func WriteJson(w http.ResponseWriter, v interface{}) error {
	SetSuccessJson(w)
	return json.NewEncoder(w).Encode(v)
}
