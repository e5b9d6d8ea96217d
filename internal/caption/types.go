package caption

// Token is a single recognized unit (word or punctuation mark) with timing
// and confidence from speech recognition.
type Token struct {
	Text          string
	StartTime     float64
	EndTime       float64
	Confidence    float64
	IsPunctuation bool
}

// Word is one display word of a caption with its source timing and confidence.
type Word struct {
	Text       string  `json:"w"`
	Start      float64 `json:"st"`
	End        float64 `json:"et"`
	Confidence float64 `json:"c"`
}

// Caption is one timed subtitle cue. Ids are dense 1-based ordinals over the
// whole caption set and are renumbered after every edit.
type Caption struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
	Words []Word  `json:"words,omitempty"`
}

// Renumber reassigns dense 1..N ids in slice order.
func Renumber(captions []Caption) {
	for i := range captions {
		captions[i].ID = i + 1
	}
}
