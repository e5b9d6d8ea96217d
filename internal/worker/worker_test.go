package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"captionforge/internal/config"
	"captionforge/internal/store"
	"captionforge/internal/transcript"
	"captionforge/internal/translate"
)

const workerTranscript = `{
  "jobName": "vid-1",
  "status": "COMPLETED",
  "results": {
    "transcripts": [{"transcript": "hello there."}],
    "items": [
      {
        "start_time": "0.0", "end_time": "0.4", "type": "pronunciation",
        "alternatives": [{"confidence": "0.99", "content": "hello"}]
      },
      {
        "start_time": "0.4", "end_time": "0.8", "type": "pronunciation",
        "alternatives": [{"confidence": "0.98", "content": "there"}]
      },
      {
        "type": "punctuation",
        "alternatives": [{"confidence": "0.0", "content": "."}]
      }
    ]
  }
}`

type stores struct {
	videos   *store.VideoStore
	captions *store.CaptionStore
	configs  *store.ConfigStore
}

func newStores(t *testing.T) stores {
	t.Helper()
	blobs, err := store.NewFSStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFSStore: %v", err)
	}
	return stores{
		videos:   store.NewVideoStore(blobs),
		captions: store.NewCaptionStore(blobs),
		configs:  store.NewConfigStore(blobs),
	}
}

func newWorker(t *testing.T, s stores, pool *translate.Pool, stt transcript.Service) *Worker {
	t.Helper()
	return New(config.Default(), s.videos, s.captions, s.configs, pool, stt)
}

func writeTranscript(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}
	return path
}

func TestProcessTranscript(t *testing.T) {
	s := newStores(t)
	if err := s.videos.Put(&store.Video{ID: "vid-1", Name: "Demo", Language: "en-US", Status: store.StatusProcessing}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	w := newWorker(t, s, nil, nil)
	path := writeTranscript(t, "vid-1.json", workerTranscript)

	if err := w.ProcessTranscript(context.Background(), path); err != nil {
		t.Fatalf("ProcessTranscript: %v", err)
	}

	captions, err := s.captions.Load("vid-1", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(captions) != 1 || captions[0].Text != "hello there" {
		t.Errorf("captions = %+v", captions)
	}

	video, err := s.videos.Get("vid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if video.Status != store.StatusReady {
		t.Errorf("status = %q, want READY", video.Status)
	}
	if video.ProcessedDate == "" {
		t.Error("ProcessedDate not set")
	}
}

func TestProcessTranscript_AppliesTweaks(t *testing.T) {
	s := newStores(t)
	if err := s.configs.SaveTweaks([]string{"hello=Howdy"}); err != nil {
		t.Fatalf("SaveTweaks: %v", err)
	}
	if err := s.videos.Put(&store.Video{ID: "vid-1", Name: "Demo", Language: "en-US"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	w := newWorker(t, s, nil, nil)
	path := writeTranscript(t, "vid-1.json", workerTranscript)
	if err := w.ProcessTranscript(context.Background(), path); err != nil {
		t.Fatalf("ProcessTranscript: %v", err)
	}

	captions, err := s.captions.Load("vid-1", "")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if captions[0].Text != "Howdy there" {
		t.Errorf("Text = %q, want 'Howdy there'", captions[0].Text)
	}
}

func TestProcessTranscript_MalformedMarksErrored(t *testing.T) {
	s := newStores(t)
	if err := s.videos.Put(&store.Video{ID: "vid-1", Name: "Demo", Language: "en-US"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	w := newWorker(t, s, nil, nil)
	path := writeTranscript(t, "vid-1.json", `{"results": {}}`)

	err := w.ProcessTranscript(context.Background(), path)
	if !errors.Is(err, transcript.ErrMalformedInput) {
		t.Fatalf("err = %v, want ErrMalformedInput", err)
	}

	video, getErr := s.videos.Get("vid-1")
	if getErr != nil {
		t.Fatalf("Get: %v", getErr)
	}
	if video.Status != store.StatusErrored {
		t.Errorf("status = %q, want ERRORED", video.Status)
	}
	if video.StatusText == "" {
		t.Error("StatusText empty, want failure description")
	}
	if _, err := s.captions.Load("vid-1", ""); !errors.Is(err, store.ErrNotFound) {
		t.Error("captions stored despite failure")
	}
}

func TestRemoveTranscript(t *testing.T) {
	s := newStores(t)
	cfg := config.Default()
	cfg.Paths.Transcripts = t.TempDir()
	w := New(cfg, s.videos, s.captions, s.configs, nil, nil)

	path := filepath.Join(cfg.Paths.Transcripts, "vid-1.json")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatalf("write transcript: %v", err)
	}

	if err := w.RemoveTranscript("vid-1"); err != nil {
		t.Fatalf("RemoveTranscript: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("transcript file survived removal")
	}

	// Removing again is not an error.
	if err := w.RemoveTranscript("vid-1"); err != nil {
		t.Errorf("second RemoveTranscript: %v", err)
	}
}

type echoTranslator struct{}

func (echoTranslator) Translate(_ context.Context, text, _, targetLang string) (string, error) {
	return "(" + targetLang + ") " + text, nil
}

type failingTranslator struct{}

func (failingTranslator) Translate(_ context.Context, _, _, _ string) (string, error) {
	return "", errors.New("backend down")
}

func TestTranslate(t *testing.T) {
	s := newStores(t)
	if err := s.videos.Put(&store.Video{ID: "vid-1", Name: "Demo", Language: "en-US", Status: store.StatusReady}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	w := newWorker(t, s, translate.NewPool(echoTranslator{}, 2, 100000), nil)

	path := writeTranscript(t, "vid-1.json", workerTranscript)
	if err := w.ProcessTranscript(context.Background(), path); err != nil {
		t.Fatalf("ProcessTranscript: %v", err)
	}

	if err := w.Translate(context.Background(), "vid-1", "es"); err != nil {
		t.Fatalf("Translate: %v", err)
	}

	translated, err := s.captions.Load("vid-1", "es")
	if err != nil {
		t.Fatalf("Load translated: %v", err)
	}
	if translated[0].Text != "(es) hello there" {
		t.Errorf("translated text = %q", translated[0].Text)
	}

	video, err := s.videos.Get("vid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if video.TranslatedLanguage != "es" {
		t.Errorf("TranslatedLanguage = %q, want 'es'", video.TranslatedLanguage)
	}
}

func TestTranslate_UnknownVideo(t *testing.T) {
	s := newStores(t)
	w := newWorker(t, s, translate.NewPool(echoTranslator{}, 2, 100000), nil)

	err := w.Translate(context.Background(), "missing", "es")
	if !errors.Is(err, store.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTranslate_FailedBatchPersistsNothing(t *testing.T) {
	s := newStores(t)
	if err := s.videos.Put(&store.Video{ID: "vid-1", Name: "Demo", Language: "en-US"}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	w := newWorker(t, s, translate.NewPool(failingTranslator{}, 2, 100000), nil)

	path := writeTranscript(t, "vid-1.json", workerTranscript)
	if err := w.ProcessTranscript(context.Background(), path); err != nil {
		t.Fatalf("ProcessTranscript: %v", err)
	}

	err := w.Translate(context.Background(), "vid-1", "es")
	var batchErr *translate.BatchError
	if !errors.As(err, &batchErr) {
		t.Fatalf("err = %v, want *BatchError", err)
	}

	if _, err := s.captions.Load("vid-1", "es"); !errors.Is(err, store.ErrNotFound) {
		t.Error("partial translation persisted")
	}
	video, err := s.videos.Get("vid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if video.TranslatedLanguage != "" {
		t.Errorf("TranslatedLanguage = %q after failed batch", video.TranslatedLanguage)
	}
}

type fakeSTT struct {
	vocabularies []transcript.Vocabulary
	deleted      []string
	started      []transcript.Job
	deleteErr    error
}

func (f *fakeSTT) StartJob(_ context.Context, job transcript.Job) error {
	f.started = append(f.started, job)
	return nil
}

func (f *fakeSTT) DeleteJob(_ context.Context, name string) error {
	f.deleted = append(f.deleted, name)
	return f.deleteErr
}

func (f *fakeSTT) ListVocabularies(_ context.Context, _ string) (transcript.VocabularyPage, error) {
	return transcript.VocabularyPage{Items: f.vocabularies}, nil
}

func TestReprocess(t *testing.T) {
	s := newStores(t)
	if err := s.videos.Put(&store.Video{ID: "vid-1", Name: "Demo", Language: "en-US", Status: store.StatusReady}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	stt := &fakeSTT{
		vocabularies: []transcript.Vocabulary{{Name: "captionforge"}},
		deleteErr:    errors.New("no such job"),
	}
	w := newWorker(t, s, nil, stt)

	if err := w.Reprocess(context.Background(), "vid-1", "file:///media/vid-1.mp4"); err != nil {
		t.Fatalf("Reprocess: %v", err)
	}

	if len(stt.deleted) != 1 || stt.deleted[0] != "vid-1" {
		t.Errorf("deleted jobs = %v", stt.deleted)
	}
	if len(stt.started) != 1 {
		t.Fatalf("started jobs = %v", stt.started)
	}
	job := stt.started[0]
	if job.Name != "vid-1" || job.LanguageCode != "en-US" {
		t.Errorf("job = %+v", job)
	}
	if job.VocabularyName != "captionforge" {
		t.Errorf("VocabularyName = %q, want 'captionforge'", job.VocabularyName)
	}

	video, err := s.videos.Get("vid-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if video.Status != store.StatusProcessing || video.StatusText != "Transcribing audio" {
		t.Errorf("status = %q / %q", video.Status, video.StatusText)
	}
}

func TestReprocess_MissingVocabularyOmitted(t *testing.T) {
	s := newStores(t)
	if err := s.videos.Put(&store.Video{ID: "vid-1", Name: "Demo", Language: "en-US"}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	stt := &fakeSTT{}
	w := newWorker(t, s, nil, stt)

	if err := w.Reprocess(context.Background(), "vid-1", "file:///media/vid-1.mp4"); err != nil {
		t.Fatalf("Reprocess: %v", err)
	}
	if stt.started[0].VocabularyName != "" {
		t.Errorf("VocabularyName = %q, want empty", stt.started[0].VocabularyName)
	}
}
