package server

import (
	"net/http"

	"github.com/google/uuid"

	"captionforge/internal/store"
)

type createVideoRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

func (s *Server) listVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.videos.List()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, videos)
}

func (s *Server) createVideo(w http.ResponseWriter, r *http.Request) {
	var req createVideoRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	if req.Language == "" {
		writeBadRequest(w, "language is required")
		return
	}

	video := &store.Video{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		Language:    req.Language,
		Status:      store.StatusProcessing,
		StatusText:  "Awaiting transcription",
	}
	if err := s.videos.Put(video); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, video)
}

func (s *Server) getVideo(w http.ResponseWriter, r *http.Request) {
	video, err := s.videos.Get(r.PathValue("videoId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}

func (s *Server) deleteVideo(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("videoId")
	if err := s.videos.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	// Caption sets and the stored transcript go with the record.
	if err := s.captions.Delete(id); err != nil {
		writeError(w, err)
		return
	}
	if err := s.worker.RemoveTranscript(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) putVideoName(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeBadRequest(w, "name is required")
		return
	}
	s.updateVideo(w, r, func(v *store.Video) { v.Name = req.Name })
}

func (s *Server) putVideoDescription(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.updateVideo(w, r, func(v *store.Video) { v.Description = req.Description })
}

func (s *Server) putVideoLanguage(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Language string `json:"language"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Language == "" {
		writeBadRequest(w, "language is required")
		return
	}
	s.updateVideo(w, r, func(v *store.Video) { v.Language = req.Language })
}

func (s *Server) putVideoComplete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Complete bool `json:"complete"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	s.updateVideo(w, r, func(v *store.Video) { v.Complete = req.Complete })
}

func (s *Server) updateVideo(w http.ResponseWriter, r *http.Request, mutate func(*store.Video)) {
	video, err := s.videos.Update(r.PathValue("videoId"), mutate)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, video)
}
