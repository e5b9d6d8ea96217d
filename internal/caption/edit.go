package caption

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange reports an edit addressed at a caption or character
	// offset that does not exist.
	ErrIndexOutOfRange = errors.New("caption index out of range")
	// ErrInvalidMerge reports a merge at an index with no following caption.
	ErrInvalidMerge = errors.New("cannot merge at caption index")
)

// OpType enumerates the editor operations.
type OpType int

const (
	OpSplit OpType = iota
	OpMerge
	OpSetText
)

// Op is one edit operation against a caption set. Text carries the
// caller-supplied wording: the text to split for OpSplit, the merged wording
// for OpMerge, and the replacement for OpSetText. Offset is the character
// offset of the split point.
type Op struct {
	Type   OpType
	Index  int
	Text   string
	Offset int
}

// Apply dispatches an edit operation and returns the new caption set with
// ids renumbered. The input slice is not modified; on error no mutation is
// visible to the caller.
func Apply(captions []Caption, op Op) ([]Caption, error) {
	switch op.Type {
	case OpSplit:
		return SplitAtOffset(captions, op.Index, op.Text, op.Offset)
	case OpMerge:
		return MergeAdjacent(captions, op.Index, op.Text)
	case OpSetText:
		return SetText(captions, op.Index, op.Text)
	default:
		return nil, fmt.Errorf("unknown edit operation %d", op.Type)
	}
}

// SplitAtOffset splits the caption at index into two at the given character
// offset of text. The split timestamp is linearly interpolated from the
// offset's position within the text. An empty text means the caption's
// stored text. Words are partitioned onto the side their midpoint falls in.
func SplitAtOffset(captions []Caption, index int, text string, offset int) ([]Caption, error) {
	if index < 0 || index >= len(captions) {
		return nil, fmt.Errorf("split at %d of %d captions: %w", index, len(captions), ErrIndexOutOfRange)
	}

	c := captions[index]
	if text == "" {
		text = c.Text
	}
	runes := []rune(text)
	if offset < 1 || offset > len(runes)-1 {
		return nil, fmt.Errorf("split offset %d outside text of %d characters: %w", offset, len(runes), ErrIndexOutOfRange)
	}

	splitTime := c.Start + float64(offset)/float64(len(runes))*(c.End-c.Start)

	first := Caption{
		Start: c.Start,
		End:   splitTime,
		Text:  string(runes[:offset]),
	}
	second := Caption{
		Start: splitTime,
		End:   c.End,
		Text:  string(runes[offset:]),
	}
	for _, w := range c.Words {
		if (w.Start+w.End)/2 < splitTime {
			first.Words = append(first.Words, w)
		} else {
			second.Words = append(second.Words, w)
		}
	}

	out := make([]Caption, 0, len(captions)+1)
	out = append(out, captions[:index]...)
	out = append(out, first, second)
	out = append(out, captions[index+1:]...)
	Renumber(out)
	return out, nil
}

// MergeAdjacent merges the caption at index with its successor. The merged
// caption spans both time ranges and carries the caller-supplied text; the
// editor decides the merged wording.
func MergeAdjacent(captions []Caption, index int, text string) ([]Caption, error) {
	if index < 0 || index >= len(captions)-1 {
		return nil, fmt.Errorf("merge at %d of %d captions: %w", index, len(captions), ErrInvalidMerge)
	}

	merged := captions[index]
	next := captions[index+1]
	merged.End = next.End
	merged.Text = text
	merged.Words = append(append([]Word(nil), merged.Words...), next.Words...)

	out := make([]Caption, 0, len(captions)-1)
	out = append(out, captions[:index]...)
	out = append(out, merged)
	out = append(out, captions[index+2:]...)
	Renumber(out)
	return out, nil
}

// SetText replaces the caption text at index without retiming.
func SetText(captions []Caption, index int, text string) ([]Caption, error) {
	if index < 0 || index >= len(captions) {
		return nil, fmt.Errorf("set text at %d of %d captions: %w", index, len(captions), ErrIndexOutOfRange)
	}

	out := append([]Caption(nil), captions...)
	out[index].Text = text
	Renumber(out)
	return out, nil
}
