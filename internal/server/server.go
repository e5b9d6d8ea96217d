// Package server exposes the caption store and editing operations over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"captionforge/internal/store"
	"captionforge/internal/worker"
)

// Server wires the HTTP handlers to the stores and the pipeline worker.
type Server struct {
	videos   *store.VideoStore
	captions *store.CaptionStore
	configs  *store.ConfigStore
	worker   *worker.Worker
}

func New(videos *store.VideoStore, captions *store.CaptionStore, configs *store.ConfigStore, w *worker.Worker) *Server {
	return &Server{
		videos:   videos,
		captions: captions,
		configs:  configs,
		worker:   w,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /videos", s.listVideos)
	mux.HandleFunc("POST /videos", s.createVideo)
	mux.HandleFunc("GET /videos/{videoId}", s.getVideo)
	mux.HandleFunc("DELETE /videos/{videoId}", s.deleteVideo)
	mux.HandleFunc("PUT /videos/{videoId}/name", s.putVideoName)
	mux.HandleFunc("PUT /videos/{videoId}/description", s.putVideoDescription)
	mux.HandleFunc("PUT /videos/{videoId}/language", s.putVideoLanguage)
	mux.HandleFunc("PUT /videos/{videoId}/complete", s.putVideoComplete)

	mux.HandleFunc("GET /videos/{videoId}/captions", s.getCaptions)
	mux.HandleFunc("GET /videos/{videoId}/caption", s.exportCaptions)
	mux.HandleFunc("PUT /videos/{videoId}/caption", s.editCaptions)
	mux.HandleFunc("POST /videos/{videoId}/translate", s.translateVideo)

	mux.HandleFunc("GET /tweaks", s.getTweaks)
	mux.HandleFunc("PUT /tweaks", s.putTweaks)
	mux.HandleFunc("GET /vocabulary", s.getVocabulary)
	mux.HandleFunc("PUT /vocabulary", s.putVocabulary)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

type errorResponse struct {
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrNotFound) {
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Message: err.Error()})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeBadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}
