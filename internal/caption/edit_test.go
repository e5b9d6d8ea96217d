package caption

import (
	"errors"
	"math"
	"testing"
)

func sampleCaptions() []Caption {
	return []Caption{
		{ID: 1, Start: 0.0, End: 3.0, Text: "hello world!", Words: []Word{
			{Text: "hello", Start: 0.0, End: 1.4},
			{Text: "world!", Start: 1.5, End: 3.0},
		}},
		{ID: 2, Start: 3.5, End: 5.0, Text: "second caption"},
		{ID: 3, Start: 5.5, End: 7.0, Text: "third caption"},
	}
}

func TestSplitAtOffset_InterpolatesTime(t *testing.T) {
	// 12 runes over [0, 3]; a split after 8 lands at 0 + 8/12*3 = 2.0.
	got, err := SplitAtOffset(sampleCaptions(), 0, "hello world!", 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 4 {
		t.Fatalf("got %d captions, want 4", len(got))
	}
	if got[0].Text != "hello wo" || got[1].Text != "rld!" {
		t.Errorf("split texts = %q, %q", got[0].Text, got[1].Text)
	}
	if math.Abs(got[0].End-2.0) > 1e-9 || math.Abs(got[1].Start-2.0) > 1e-9 {
		t.Errorf("split time = %f / %f, want 2.0", got[0].End, got[1].Start)
	}
	if got[1].End != 3.0 {
		t.Errorf("second half End = %f, want 3.0", got[1].End)
	}
	for i, c := range got {
		if c.ID != i+1 {
			t.Errorf("caption %d has ID %d, want %d", i, c.ID, i+1)
		}
	}
}

func TestSplitAtOffset_PartitionsWords(t *testing.T) {
	got, err := SplitAtOffset(sampleCaptions(), 0, "hello world!", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Split time is 1.5; "hello" (midpoint 0.7) goes left, "world!"
	// (midpoint 2.25) goes right.
	if len(got[0].Words) != 1 || got[0].Words[0].Text != "hello" {
		t.Errorf("first half words = %+v", got[0].Words)
	}
	if len(got[1].Words) != 1 || got[1].Words[0].Text != "world!" {
		t.Errorf("second half words = %+v", got[1].Words)
	}
}

func TestSplitAtOffset_EmptyTextUsesStored(t *testing.T) {
	got, err := SplitAtOffset(sampleCaptions(), 1, "", 6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[1].Text != "second" || got[2].Text != " caption" {
		t.Errorf("split texts = %q, %q", got[1].Text, got[2].Text)
	}
}

func TestSplitAtOffset_LastCaption(t *testing.T) {
	got, err := SplitAtOffset(sampleCaptions(), 2, "third caption", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %d captions, want 4", len(got))
	}
	if got[3].End != 7.0 {
		t.Errorf("final End = %f, want 7.0", got[3].End)
	}
}

func TestSplitAtOffset_Errors(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		offset int
	}{
		{"negative index", -1, 5},
		{"index past end", 3, 5},
		{"offset zero", 0, 0},
		{"offset at end", 0, 12},
		{"offset past end", 0, 20},
	}
	for _, tt := range tests {
		_, err := SplitAtOffset(sampleCaptions(), tt.index, "hello world!", tt.offset)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("%s: err = %v, want ErrIndexOutOfRange", tt.name, err)
		}
	}
}

func TestSplitAtOffset_DoesNotMutateInput(t *testing.T) {
	in := sampleCaptions()
	if _, err := SplitAtOffset(in, 0, "hello world!", 6); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(in) != 3 || in[0].Text != "hello world!" {
		t.Errorf("input was mutated: %+v", in)
	}
}

func TestMergeAdjacent(t *testing.T) {
	got, err := MergeAdjacent(sampleCaptions(), 1, "second and third")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d captions, want 2", len(got))
	}
	merged := got[1]
	if merged.Text != "second and third" {
		t.Errorf("Text = %q, want 'second and third'", merged.Text)
	}
	if merged.Start != 3.5 || merged.End != 7.0 {
		t.Errorf("range = [%f, %f], want [3.5, 7.0]", merged.Start, merged.End)
	}
	if merged.ID != 2 {
		t.Errorf("ID = %d, want 2", merged.ID)
	}
}

func TestMergeAdjacent_LastCaptionFails(t *testing.T) {
	_, err := MergeAdjacent(sampleCaptions(), 2, "x")
	if !errors.Is(err, ErrInvalidMerge) {
		t.Errorf("err = %v, want ErrInvalidMerge", err)
	}
	_, err = MergeAdjacent(sampleCaptions(), 5, "x")
	if !errors.Is(err, ErrInvalidMerge) {
		t.Errorf("err = %v, want ErrInvalidMerge", err)
	}
}

func TestSetText(t *testing.T) {
	in := sampleCaptions()
	got, err := SetText(in, 1, "rewritten")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[1].Text != "rewritten" {
		t.Errorf("Text = %q, want 'rewritten'", got[1].Text)
	}
	if got[1].Start != 3.5 || got[1].End != 5.0 {
		t.Errorf("timing changed: [%f, %f]", got[1].Start, got[1].End)
	}
	if in[1].Text != "second caption" {
		t.Errorf("input was mutated: %q", in[1].Text)
	}
}

func TestSetText_OutOfRange(t *testing.T) {
	_, err := SetText(sampleCaptions(), 3, "x")
	if !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("err = %v, want ErrIndexOutOfRange", err)
	}
}

func TestApply_UnknownOp(t *testing.T) {
	_, err := Apply(sampleCaptions(), Op{Type: OpType(99)})
	if err == nil {
		t.Error("expected error for unknown op type")
	}
}

func TestApply_Dispatch(t *testing.T) {
	got, err := Apply(sampleCaptions(), Op{Type: OpMerge, Index: 0, Text: "joined"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 || got[0].Text != "joined" {
		t.Errorf("merge via Apply: %+v", got)
	}
}
