package caption

import (
	"unicode/utf8"

	"captionforge/internal/config"
)

// Segmenter converts a token sequence into display-ready captions. It is a
// single-pass automaton: tokens accumulate into the current caption until a
// punctuation mark, a silence gap, or a length limit closes it. A caption
// closed by a short gap stays eligible for a lookback merge, which recombines
// it with an over-short successor instead of emitting orphan one-word cues.
type Segmenter struct {
	cfg      config.SegmenterConfig
	glossary *Glossary
	noSpace  bool
}

// NewSegmenter creates a Segmenter for the given configuration and glossary.
func NewSegmenter(cfg config.SegmenterConfig, glossary *Glossary) *Segmenter {
	if glossary == nil {
		glossary = BuildGlossary(nil, GlossaryExact)
	}
	return &Segmenter{
		cfg:      cfg,
		glossary: glossary,
		noSpace:  config.IsCJK(cfg.Language),
	}
}

// Segment runs the automaton over the token sequence and returns captions
// with dense 1-based ids. Word order within a caption and caption order in
// the result are strictly chronological.
func (s *Segmenter) Segment(tokens []Token) []Caption {
	var (
		captions  []Caption
		cur       *Caption
		prev      *Caption
		wordCount int
		lastEnd   float64
	)

	for _, tok := range tokens {
		if cur == nil {
			// Leading punctuation never starts a caption.
			if tok.IsPunctuation {
				continue
			}
			cur = &Caption{Start: tok.StartTime}
		}

		// A boundary fires on punctuation, or on any silence gap once the
		// caption has accumulated text.
		if tok.IsPunctuation || (cur.Text != "" && lastEnd < tok.StartTime) {
			if prev != nil && len(captions) > 0 &&
				utf8.RuneCountInString(prev.Text)+utf8.RuneCountInString(cur.Text) <= s.cfg.MergeCharThreshold {
				// Lookback merge: pop the previous caption and prepend it.
				popped := captions[len(captions)-1]
				captions = captions[:len(captions)-1]
				cur.Start = popped.Start
				cur.Text = s.joinText(popped.Text, cur.Text)
				cur.Words = append(popped.Words, cur.Words...)
			}
			cur.End = lastEnd
			captions = append(captions, *cur)
			wordCount = 0

			if tok.IsPunctuation {
				// Punctuation is a hard break: never merge across it.
				prev = nil
				cur = nil
				continue
			}

			if tok.StartTime-lastEnd >= s.cfg.SilenceGapThreshold {
				prev = nil
			} else {
				closed := captions[len(captions)-1]
				prev = &closed
			}
			cur = &Caption{Start: tok.StartTime}
		}

		lastEnd = tok.EndTime

		text := tok.Text
		if s.glossary.Mode() == GlossaryExact {
			text = s.glossary.Resolve(text)
		}

		if cur.Text != "" && !s.noSpace {
			cur.Text += " "
		}
		cur.Text += text

		cur.Words = append(cur.Words, Word{
			Text:       text,
			Start:      tok.StartTime,
			End:        tok.EndTime,
			Confidence: tok.Confidence,
		})
		wordCount++

		// Length-triggered close, independent of boundary logic.
		if wordCount >= s.cfg.MaxWords || utf8.RuneCountInString(cur.Text) >= s.cfg.MaxLength {
			cur.End = lastEnd
			captions = append(captions, *cur)
			closed := captions[len(captions)-1]
			prev = &closed
			wordCount = 0
			cur = nil
		}
	}

	// Close the trailing caption if one is still open.
	if cur != nil {
		cur.End = lastEnd
		captions = append(captions, *cur)
	}

	if s.glossary.Mode() == GlossaryRegex {
		for i := range captions {
			captions[i].Text = s.glossary.ApplyToText(captions[i].Text)
		}
	}

	Renumber(captions)
	return captions
}

// joinText combines two caption texts during a lookback merge: a single
// space for space-delimited languages, direct concatenation otherwise.
func (s *Segmenter) joinText(a, b string) string {
	if a == "" || b == "" || s.noSpace {
		return a + b
	}
	return a + " " + b
}
