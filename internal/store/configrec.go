package store

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ConfigStore persists the user-editable tweak and vocabulary lists under
// config/. Missing records read as empty lists; both start blank on a new
// deployment.
type ConfigStore struct {
	blobs BlobStore
}

func NewConfigStore(blobs BlobStore) *ConfigStore {
	return &ConfigStore{blobs: blobs}
}

const (
	tweaksKey     = "config/tweaks.json"
	vocabularyKey = "config/vocabulary.json"
)

type tweaksRecord struct {
	Tweaks []string `json:"tweaks"`
}

type vocabularyRecord struct {
	Vocabulary []string `json:"vocabulary"`
}

// Tweaks returns the stored tweak lines, or an empty list when none exist.
func (s *ConfigStore) Tweaks() ([]string, error) {
	data, err := s.blobs.Get(tweaksKey)
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var rec tweaksRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode tweaks: %w", err)
	}
	if rec.Tweaks == nil {
		rec.Tweaks = []string{}
	}
	return rec.Tweaks, nil
}

func (s *ConfigStore) SaveTweaks(lines []string) error {
	data, err := json.MarshalIndent(tweaksRecord{Tweaks: lines}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tweaks: %w", err)
	}
	return s.blobs.Put(tweaksKey, data)
}

// Vocabulary returns the stored vocabulary terms, or an empty list when none
// exist.
func (s *ConfigStore) Vocabulary() ([]string, error) {
	data, err := s.blobs.Get(vocabularyKey)
	if errors.Is(err, ErrNotFound) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	var rec vocabularyRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode vocabulary: %w", err)
	}
	if rec.Vocabulary == nil {
		rec.Vocabulary = []string{}
	}
	return rec.Vocabulary, nil
}

func (s *ConfigStore) SaveVocabulary(terms []string) error {
	data, err := json.MarshalIndent(vocabularyRecord{Vocabulary: terms}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode vocabulary: %w", err)
	}
	return s.blobs.Put(vocabularyKey, data)
}
