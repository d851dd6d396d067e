package web

import (
	"net/http"

	"github.com/flavioribeiro/donut-cc/internal/web/handlers"
	"go.uber.org/zap"
)

type ErrorHTTPHandler interface {
	ServeHTTP(w http.ResponseWriter, r *http.Request) error
}

func NewServeMux(
	captions *handlers.CaptionsHandler,
	l *zap.SugaredLogger,
) *http.ServeMux {

	mux := http.NewServeMux()

	mux.Handle("/services", setCors(errorHandler(l, handlers.ErrorHandlerFunc(captions.Services))))
	mux.Handle("/service", setCors(errorHandler(l, handlers.ErrorHandlerFunc(captions.SelectService))))
	mux.Handle("/captions", setCors(errorHandler(l, handlers.ErrorHandlerFunc(captions.Captions))))
	mux.Handle("/captions/clear", setCors(errorHandler(l, handlers.ErrorHandlerFunc(captions.Clear))))
	mux.Handle("/metrics", setCors(errorHandler(l, handlers.ErrorHandlerFunc(captions.Metrics))))
	mux.Handle("/state", setCors(errorHandler(l, handlers.ErrorHandlerFunc(captions.State))))
	mux.Handle("/export.txt", setCors(errorHandler(l, handlers.ErrorHandlerFunc(captions.ExportText))))
	mux.Handle("/export.srt", setCors(errorHandler(l, handlers.ErrorHandlerFunc(captions.ExportSRT))))

	return mux
}

func setCors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			allowedHeaders := "Accept, Content-Type, Content-Length, Accept-Encoding, Authorization,X-CSRF-Token"
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)
		}
		next.ServeHTTP(w, r)
	})
}

func errorHandler(l *zap.SugaredLogger, next ErrorHTTPHandler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := next.ServeHTTP(w, r)
		if err != nil {
			l.Errorw("error on handler",
				"path", r.URL.Path,
				"err", err,
			)
			handlers.SetError(w, err)
			return
		}
	})
}
