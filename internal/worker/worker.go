// Package worker orchestrates the captioning pipeline: transcript results
// come in, segmented caption sets and status updates go out.
package worker

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"captionforge/internal/caption"
	"captionforge/internal/config"
	"captionforge/internal/store"
	"captionforge/internal/transcript"
	"captionforge/internal/translate"
)

// Worker ties the stores, the segmenter configuration, the translation pool
// and the recognizer together.
type Worker struct {
	cfg      *config.Config
	videos   *store.VideoStore
	captions *store.CaptionStore
	configs  *store.ConfigStore
	pool     *translate.Pool
	stt      transcript.Service
}

// New creates a Worker. The translation pool and recognizer are optional;
// operations needing an absent collaborator fail with a clear error.
func New(cfg *config.Config, videos *store.VideoStore, captions *store.CaptionStore, configs *store.ConfigStore, pool *translate.Pool, stt transcript.Service) *Worker {
	return &Worker{
		cfg:      cfg,
		videos:   videos,
		captions: captions,
		configs:  configs,
		pool:     pool,
		stt:      stt,
	}
}

// ProcessTranscript reads a recognizer result file, segments it into
// captions and stores them. The video id is the file's base name. The video
// record moves to READY on success and ERRORED on failure; the returned
// error reports the failure either way.
func (w *Worker) ProcessTranscript(ctx context.Context, path string) error {
	videoID := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	slog.Info("processing transcript", "video", videoID, "path", path)

	captions, err := w.computeCaptions(path)
	if err != nil {
		if statusErr := w.videos.SetStatus(videoID, store.StatusErrored,
			fmt.Sprintf("Failed to compute captions: %v", err)); statusErr != nil && !errors.Is(statusErr, store.ErrNotFound) {
			slog.Error("failed to record error status", "video", videoID, "error", statusErr)
		}
		return fmt.Errorf("process transcript for %s: %w", videoID, err)
	}

	if err := w.captions.Save(videoID, "", captions); err != nil {
		return fmt.Errorf("store captions for %s: %w", videoID, err)
	}

	if err := w.videos.SetStatus(videoID, store.StatusReady, "Ready for editing"); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("mark %s ready: %w", videoID, err)
	}

	slog.Info("captions stored", "video", videoID, "captions", len(captions))
	return nil
}

func (w *Worker) computeCaptions(path string) ([]caption.Caption, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read transcript: %w", err)
	}

	result, err := transcript.Parse(data)
	if err != nil {
		return nil, err
	}

	tweaks, err := w.configs.Tweaks()
	if err != nil {
		return nil, fmt.Errorf("load tweaks: %w", err)
	}
	glossary := caption.BuildGlossary(tweaks, caption.GlossaryExact)

	segmenter := caption.NewSegmenter(w.cfg.Segmenter, glossary)
	return segmenter.Segment(result.Tokens()), nil
}

// RemoveTranscript deletes the stored recognizer result file for a video.
// A missing file is not an error; captions can exist without one.
func (w *Worker) RemoveTranscript(videoID string) error {
	path := filepath.Join(w.cfg.Paths.Transcripts, videoID+".json")
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove transcript for %s: %w", videoID, err)
	}
	return nil
}

// Translate produces the translated caption set for a video in targetLang
// and stores it next to the source set. Nothing is persisted when the batch
// fails.
func (w *Worker) Translate(ctx context.Context, videoID, targetLang string) error {
	if w.pool == nil {
		return fmt.Errorf("translate %s: no translation backend configured", videoID)
	}

	video, err := w.videos.Get(videoID)
	if err != nil {
		return fmt.Errorf("translate %s: %w", videoID, err)
	}

	captions, err := w.captions.Load(videoID, "")
	if err != nil {
		return fmt.Errorf("translate %s: %w", videoID, err)
	}

	sourceLang := config.SourceLanguageCode(video.Language)
	slog.Info("translating captions", "video", videoID, "from", sourceLang, "to", targetLang, "captions", len(captions))

	translated, err := w.pool.TranslateAll(ctx, captions, sourceLang, targetLang)
	if err != nil {
		return fmt.Errorf("translate %s: %w", videoID, err)
	}

	if err := w.captions.Save(videoID, targetLang, translated); err != nil {
		return fmt.Errorf("store translated captions for %s: %w", videoID, err)
	}

	if _, err := w.videos.Update(videoID, func(v *store.Video) {
		v.TranslatedLanguage = targetLang
	}); err != nil {
		return fmt.Errorf("record translated language for %s: %w", videoID, err)
	}

	return nil
}

// Reprocess resubmits a video to the recognizer. A stale job with the same
// name is deleted first; the custom vocabulary is attached only when the
// recognizer actually has it.
func (w *Worker) Reprocess(ctx context.Context, videoID, mediaURI string) error {
	if w.stt == nil {
		return fmt.Errorf("reprocess %s: no recognizer configured", videoID)
	}

	video, err := w.videos.Get(videoID)
	if err != nil {
		return fmt.Errorf("reprocess %s: %w", videoID, err)
	}

	if err := w.stt.DeleteJob(ctx, videoID); err != nil {
		// A missing previous job is the normal case.
		slog.Debug("no previous job to delete", "video", videoID, "error", err)
	}

	job := transcript.Job{
		Name:         videoID,
		MediaURI:     mediaURI,
		LanguageCode: video.Language,
	}
	hasVocab, err := transcript.HasVocabulary(ctx, w.stt, w.cfg.VocabularyName)
	if err != nil {
		return fmt.Errorf("reprocess %s: check vocabulary: %w", videoID, err)
	}
	if hasVocab {
		job.VocabularyName = w.cfg.VocabularyName
	}

	if err := w.stt.StartJob(ctx, job); err != nil {
		return fmt.Errorf("reprocess %s: %w", videoID, err)
	}

	return w.videos.SetStatus(videoID, store.StatusProcessing, "Transcribing audio")
}
