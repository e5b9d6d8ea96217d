package caption

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseSRT reads an SRT document back into captions. Sequence numbers in
// the input are ignored; captions are renumbered on the way out. Word
// timing is not recoverable from SRT, so Words is left empty.
func ParseSRT(data string) ([]Caption, error) {
	data = strings.ReplaceAll(data, "\r\n", "\n")
	blocks := strings.Split(strings.TrimSpace(data), "\n\n")

	var captions []Caption
	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// First line is the sequence number, second the time range.
		timeLine := lines[1]
		if !strings.Contains(timeLine, "-->") {
			return nil, fmt.Errorf("parse srt: missing time range in block %q", block)
		}
		parts := strings.SplitN(timeLine, "-->", 2)
		start, err := parseSRTTimestamp(strings.TrimSpace(parts[0]))
		if err != nil {
			return nil, fmt.Errorf("parse srt: %w", err)
		}
		end, err := parseSRTTimestamp(strings.TrimSpace(parts[1]))
		if err != nil {
			return nil, fmt.Errorf("parse srt: %w", err)
		}

		text := ""
		if len(lines) > 2 {
			text = strings.Join(lines[2:], "\n")
		}

		captions = append(captions, Caption{
			Start: start,
			End:   end,
			Text:  text,
		})
	}

	Renumber(captions)
	return captions, nil
}

// parseSRTTimestamp parses HH:MM:SS,mmm (or a '.' millisecond separator)
// into seconds.
func parseSRTTimestamp(s string) (float64, error) {
	s = strings.ReplaceAll(s, ".", ",")
	main, millis, ok := strings.Cut(s, ",")
	if !ok {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	fields := strings.Split(main, ":")
	if len(fields) != 3 {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	h, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	m, err := strconv.Atoi(fields[1])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	sec, err := strconv.Atoi(fields[2])
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}
	ms, err := strconv.Atoi(millis)
	if err != nil {
		return 0, fmt.Errorf("invalid timestamp %q", s)
	}

	return float64(h)*3600 + float64(m)*60 + float64(sec) + float64(ms)/1000, nil
}
