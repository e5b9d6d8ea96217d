// Package transcript reads speech-to-text result documents and adapts them
// into the token stream the captioner consumes.
package transcript

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"

	"captionforge/internal/caption"
)

// ErrMalformedInput reports a transcript document without a usable item list.
var ErrMalformedInput = errors.New("transcript has no items")

// Item type markers used by the recognizer output.
const (
	itemPronunciation = "pronunciation"
	itemPunctuation   = "punctuation"
)

// Result is the recognizer's JSON result document. Timestamps and
// confidences arrive as string-encoded decimals.
type Result struct {
	JobName string `json:"jobName"`
	Results struct {
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
		Items []Item `json:"items"`
	} `json:"results"`
	Status string `json:"status"`
}

// Item is one recognized word or punctuation mark.
type Item struct {
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Type         string        `json:"type"`
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is one candidate reading of an item.
type Alternative struct {
	Confidence string `json:"confidence"`
	Content    string `json:"content"`
}

// Parse decodes a recognizer result document.
func Parse(data []byte) (*Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("decode transcript: %w", err)
	}
	if r.Results.Items == nil {
		return nil, ErrMalformedInput
	}
	return &r, nil
}

// Tokens converts the result items into captioner tokens. Punctuation items
// carry no timing of their own and inherit the end time of the preceding
// word; malformed numeric fields degrade to zero rather than failing the
// whole document.
func (r *Result) Tokens() []caption.Token {
	tokens := make([]caption.Token, 0, len(r.Results.Items))
	var lastEnd float64

	for _, item := range r.Results.Items {
		if len(item.Alternatives) == 0 {
			continue
		}

		tok := caption.Token{
			Text:          item.Alternatives[0].Content,
			IsPunctuation: item.Type == itemPunctuation,
			Confidence:    parseDecimal(item.Alternatives[0].Confidence),
		}

		if tok.IsPunctuation {
			tok.StartTime = lastEnd
			tok.EndTime = lastEnd
		} else {
			tok.StartTime = parseDecimal(item.StartTime)
			tok.EndTime = parseDecimal(item.EndTime)
			lastEnd = tok.EndTime
		}

		tokens = append(tokens, tok)
	}

	return tokens
}

// Text returns the full transcript text when the recognizer supplied one.
func (r *Result) Text() string {
	if len(r.Results.Transcripts) == 0 {
		return ""
	}
	return r.Results.Transcripts[0].Transcript
}

// parseDecimal reads a string-encoded decimal, mapping absent or broken
// values to zero.
func parseDecimal(s string) float64 {
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
