package store

import (
	"encoding/json"
	"fmt"
	"strings"

	"captionforge/internal/caption"
)

// CaptionStore persists caption sets per video. The source-language set
// lives at captions/<videoId>.json; translated sets at
// captions/<videoId>_<lang>.json.
type CaptionStore struct {
	blobs BlobStore
}

func NewCaptionStore(blobs BlobStore) *CaptionStore {
	return &CaptionStore{blobs: blobs}
}

func captionKey(videoID, language string) string {
	if language == "" {
		return "captions/" + videoID + ".json"
	}
	return "captions/" + videoID + "_" + language + ".json"
}

// Load reads the caption set for a video. An empty language selects the
// source-language set.
func (s *CaptionStore) Load(videoID, language string) ([]caption.Caption, error) {
	data, err := s.blobs.Get(captionKey(videoID, language))
	if err != nil {
		return nil, err
	}
	var captions []caption.Caption
	if err := json.Unmarshal(data, &captions); err != nil {
		return nil, fmt.Errorf("decode captions for %s: %w", videoID, err)
	}
	return captions, nil
}

// Save writes the caption set for a video.
func (s *CaptionStore) Save(videoID, language string, captions []caption.Caption) error {
	data, err := json.MarshalIndent(captions, "", "  ")
	if err != nil {
		return fmt.Errorf("encode captions for %s: %w", videoID, err)
	}
	return s.blobs.Put(captionKey(videoID, language), data)
}

// Delete removes the source set and every translated set for a video.
func (s *CaptionStore) Delete(videoID string) error {
	keys, err := s.blobs.List("captions")
	if err != nil {
		return err
	}
	for _, key := range keys {
		name := strings.TrimPrefix(key, "captions/")
		if name == videoID+".json" || strings.HasPrefix(name, videoID+"_") {
			if err := s.blobs.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}
