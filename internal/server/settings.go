package server

import "net/http"

type tweaksPayload struct {
	Tweaks []string `json:"tweaks"`
}

type vocabularyPayload struct {
	Vocabulary []string `json:"vocabulary"`
}

func (s *Server) getTweaks(w http.ResponseWriter, r *http.Request) {
	tweaks, err := s.configs.Tweaks()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tweaksPayload{Tweaks: tweaks})
}

func (s *Server) putTweaks(w http.ResponseWriter, r *http.Request) {
	var req tweaksPayload
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Tweaks == nil {
		req.Tweaks = []string{}
	}
	if err := s.configs.SaveTweaks(req.Tweaks); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tweaksPayload{Tweaks: req.Tweaks})
}

func (s *Server) getVocabulary(w http.ResponseWriter, r *http.Request) {
	vocab, err := s.configs.Vocabulary()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vocabularyPayload{Vocabulary: vocab})
}

func (s *Server) putVocabulary(w http.ResponseWriter, r *http.Request) {
	var req vocabularyPayload
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Vocabulary == nil {
		req.Vocabulary = []string{}
	}
	if err := s.configs.SaveVocabulary(req.Vocabulary); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vocabularyPayload{Vocabulary: req.Vocabulary})
}
