package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"captionforge/internal/caption"
	"captionforge/internal/docexport"
)

// Edit operation names used by the caption editor client.
const (
	editOpSplit   = "SPLITE"
	editOpMerge   = "MERGE"
	editOpSetText = "SAVE-CAPTION"
)

type editRequest struct {
	CaptionIndex int    `json:"captionIndex"`
	Type         string `json:"type"`
	Text         string `json:"text"`
	WordLength   int    `json:"wordLength"`
	Language     string `json:"language"`
	Translated   bool   `json:"translated"`
}

type translateRequest struct {
	Language string `json:"language"`
}

func (s *Server) getCaptions(w http.ResponseWriter, r *http.Request) {
	captions, err := s.captions.Load(r.PathValue("videoId"), r.URL.Query().Get("language"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, captions)
}

func (s *Server) exportCaptions(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")
	language := r.URL.Query().Get("language")

	video, err := s.videos.Get(videoID)
	if err != nil {
		writeError(w, err)
		return
	}
	captions, err := s.captions.Load(videoID, language)
	if err != nil {
		writeError(w, err)
		return
	}

	displayLang := video.Language
	if language != "" {
		displayLang = language
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "webvtt"
	}

	switch format {
	case "webvtt", "vtt":
		w.Header().Set("Content-Type", "text/vtt; charset=utf-8")
		fmt.Fprint(w, caption.ToWebVTT(captions, displayLang))
	case "srt":
		w.Header().Set("Content-Type", "text/srt; charset=utf-8")
		fmt.Fprint(w, caption.ToSRT(captions, displayLang))
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, caption.ToText(captions, displayLang))
	case "docx":
		s.exportDocx(w, captions, video.Name)
	default:
		writeBadRequest(w, "unknown export format "+format)
	}
}

func (s *Server) exportDocx(w http.ResponseWriter, captions []caption.Caption, title string) {
	dir, err := os.MkdirTemp("", "captionforge-docx-")
	if err != nil {
		writeError(w, err)
		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "transcript.docx")
	if err := docexport.Write(captions, title, path); err != nil {
		writeError(w, err)
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", `attachment; filename="transcript.docx"`)
	w.Write(data)
}

func (s *Server) editCaptions(w http.ResponseWriter, r *http.Request) {
	videoID := r.PathValue("videoId")

	var req editRequest
	if !decodeBody(w, r, &req) {
		return
	}

	op := caption.Op{Index: req.CaptionIndex, Text: req.Text, Offset: req.WordLength}
	switch req.Type {
	case editOpSplit:
		op.Type = caption.OpSplit
	case editOpMerge:
		op.Type = caption.OpMerge
	case editOpSetText:
		op.Type = caption.OpSetText
	default:
		writeBadRequest(w, "unknown edit type "+req.Type)
		return
	}

	// Edits address the translated set when the editor is working in one.
	language := ""
	if req.Translated {
		language = req.Language
	}

	captions, err := s.captions.Load(videoID, language)
	if err != nil {
		writeError(w, err)
		return
	}

	edited, err := caption.Apply(captions, op)
	if err != nil {
		writeBadRequest(w, err.Error())
		return
	}

	if err := s.captions.Save(videoID, language, edited); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, edited)
}

func (s *Server) translateVideo(w http.ResponseWriter, r *http.Request) {
	var req translateRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Language == "" {
		writeBadRequest(w, "language is required")
		return
	}

	if err := s.worker.Translate(r.Context(), r.PathValue("videoId"), req.Language); err != nil {
		writeError(w, err)
		return
	}

	captions, err := s.captions.Load(r.PathValue("videoId"), req.Language)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, captions)
}
