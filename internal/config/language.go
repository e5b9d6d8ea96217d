package config

import "strings"

// cjkMarkers are the language-code fragments that select character-count
// line wrapping instead of word-boundary wrapping.
var cjkMarkers = []string{"zh", "ja", "ko"}

// IsCJK returns true if the language code represents Chinese, Japanese, or Korean.
func IsCJK(langCode string) bool {
	code := strings.ToLower(langCode)
	for _, m := range cjkMarkers {
		if strings.Contains(code, m) {
			return true
		}
	}
	return false
}

// SourceLanguageCode reduces a transcription language code (e.g. "zh-CN",
// "en-US") to the two-letter code the translation service expects.
func SourceLanguageCode(langCode string) string {
	if len(langCode) > 2 {
		return langCode[:2]
	}
	return langCode
}
