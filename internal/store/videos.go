package store

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Video processing states.
const (
	StatusProcessing = "PROCESSING"
	StatusReady      = "READY"
	StatusErrored    = "ERRORED"
)

// Video is the metadata record for one uploaded video.
type Video struct {
	ID                 string `json:"videoId"`
	Name               string `json:"name"`
	Description        string `json:"description,omitempty"`
	Language           string `json:"language"`
	TranslatedLanguage string `json:"translatedLanguage,omitempty"`
	Status             string `json:"status"`
	StatusText         string `json:"statusText,omitempty"`
	ProcessedDate      string `json:"processedDate,omitempty"`
	Complete           bool   `json:"complete"`
}

// VideoStore persists video metadata records at videos/<videoId>.json.
type VideoStore struct {
	blobs BlobStore
}

func NewVideoStore(blobs BlobStore) *VideoStore {
	return &VideoStore{blobs: blobs}
}

func videoKey(id string) string { return "videos/" + id + ".json" }

func (s *VideoStore) Get(id string) (*Video, error) {
	data, err := s.blobs.Get(videoKey(id))
	if err != nil {
		return nil, err
	}
	var v Video
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("decode video %s: %w", id, err)
	}
	return &v, nil
}

func (s *VideoStore) Put(v *Video) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode video %s: %w", v.ID, err)
	}
	return s.blobs.Put(videoKey(v.ID), data)
}

func (s *VideoStore) Delete(id string) error {
	return s.blobs.Delete(videoKey(id))
}

// List returns all video records sorted by name.
func (s *VideoStore) List() ([]Video, error) {
	keys, err := s.blobs.List("videos")
	if err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		data, err := s.blobs.Get(key)
		if err != nil {
			return nil, err
		}
		var v Video
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, fmt.Errorf("decode video record %s: %w", key, err)
		}
		videos = append(videos, v)
	}

	sort.Slice(videos, func(i, j int) bool {
		return strings.ToLower(videos[i].Name) < strings.ToLower(videos[j].Name)
	})
	return videos, nil
}

// SetStatus updates a video's processing state and status message.
func (s *VideoStore) SetStatus(id, status, statusText string) error {
	v, err := s.Get(id)
	if err != nil {
		return err
	}
	v.Status = status
	v.StatusText = statusText
	if status == StatusReady {
		v.ProcessedDate = time.Now().UTC().Format(time.RFC3339)
	}
	return s.Put(v)
}

// Update applies a mutation to a stored record and writes it back.
func (s *VideoStore) Update(id string, mutate func(*Video)) (*Video, error) {
	v, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	mutate(v)
	if err := s.Put(v); err != nil {
		return nil, err
	}
	return v, nil
}
