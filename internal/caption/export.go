package caption

import (
	"fmt"
	"math"
	"strings"

	"captionforge/internal/config"
)

// Line-wrapping limits for rendered subtitle blocks.
const (
	cjkLineLength   = 25
	latinLineLength = 50
)

// ToWebVTT renders captions as a WebVTT document. Captions with empty text
// are skipped; long captions are re-wrapped per the language family.
func ToWebVTT(captions []Caption, language string) string {
	var sb strings.Builder
	sb.WriteString("WEBVTT\n\n")

	for _, c := range captions {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s --> %s\n%s\n\n",
			FormatTimestamp(c.Start, '.'),
			FormatTimestamp(c.End, '.'),
			wrapText(c.Text, language))
	}

	return sb.String()
}

// ToSRT renders captions as an SRT document with 1-based sequence numbers.
func ToSRT(captions []Caption, language string) string {
	var sb strings.Builder
	index := 1

	for _, c := range captions {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		fmt.Fprintf(&sb, "%d\n%s --> %s\n%s\n\n",
			index,
			FormatTimestamp(c.Start, ','),
			FormatTimestamp(c.End, ','),
			wrapText(c.Text, language))
		index++
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// ToText renders caption texts as a plain transcript with no timestamps:
// concatenated directly for CJK languages, space-joined otherwise.
func ToText(captions []Caption, language string) string {
	var parts []string
	for _, c := range captions {
		if strings.TrimSpace(c.Text) == "" {
			continue
		}
		parts = append(parts, c.Text)
	}
	if config.IsCJK(language) {
		return strings.Join(parts, "")
	}
	return strings.Join(parts, " ")
}

// FormatTimestamp renders seconds as HH:MM:SS<sep>mmm with zero-padded
// fields, e.g. 61.5 -> "00:01:01,500" for SRT or "00:01:01.500" for WebVTT.
func FormatTimestamp(seconds float64, sep byte) string {
	total := int(math.Round(math.Abs(seconds) * 1000))
	hours := total / 3600000
	total -= hours * 3600000
	minutes := total / 60000
	total -= minutes * 60000
	secs := total / 1000
	millis := total - secs*1000
	return fmt.Sprintf("%02d:%02d:%02d%c%03d", hours, minutes, secs, sep, millis)
}

// wrapText re-splits a long caption into multiple physical lines. Text that
// already contains line breaks is emitted as-is, which keeps exporter output
// stable across a parse/re-export round trip.
func wrapText(text string, language string) string {
	if strings.Contains(text, "\n") {
		return text
	}
	if config.IsCJK(language) {
		return wrapByRunes(text, cjkLineLength)
	}
	return wrapAtSpaces(text, latinLineLength)
}

// wrapByRunes breaks text every maxLen runes regardless of word boundaries.
func wrapByRunes(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	var lines []string
	for len(runes) > maxLen {
		lines = append(lines, string(runes[:maxLen]))
		runes = runes[maxLen:]
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	return strings.Join(lines, "\n")
}

// wrapAtSpaces breaks text at the nearest space at or after every maxLen
// runes, falling back to end-of-string when no further space exists.
func wrapAtSpaces(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}

	var lines []string
	for len(runes) > maxLen {
		split := -1
		for i := maxLen; i < len(runes); i++ {
			if runes[i] == ' ' {
				split = i
				break
			}
		}
		if split < 0 {
			break
		}
		lines = append(lines, string(runes[:split]))
		runes = runes[split+1:]
	}
	if len(runes) > 0 {
		lines = append(lines, string(runes))
	}
	return strings.Join(lines, "\n")
}
