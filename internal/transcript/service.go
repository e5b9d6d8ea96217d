package transcript

import "context"

// Job describes one transcription job submitted to the recognizer.
type Job struct {
	Name           string
	MediaURI       string
	LanguageCode   string
	VocabularyName string
}

// Vocabulary is one custom pronunciation vocabulary known to the recognizer.
type Vocabulary struct {
	Name         string
	LanguageCode string
	State        string
}

// VocabularyPage is one page of a vocabulary listing.
type VocabularyPage struct {
	Items     []Vocabulary
	NextToken string
}

// Service is the recognizer collaborator. Implementations wrap whichever
// speech-to-text backend the deployment uses.
type Service interface {
	// StartJob submits a transcription job. An existing job with the same
	// name must be deleted first.
	StartJob(ctx context.Context, job Job) error
	// DeleteJob removes a finished or failed job by name.
	DeleteJob(ctx context.Context, name string) error
	VocabularyLister
}

// VocabularyLister pages through the recognizer's custom vocabularies.
type VocabularyLister interface {
	ListVocabularies(ctx context.Context, nextToken string) (VocabularyPage, error)
}

// AllVocabularies drains every page of a vocabulary listing.
func AllVocabularies(ctx context.Context, lister VocabularyLister) ([]Vocabulary, error) {
	var all []Vocabulary
	token := ""
	for {
		page, err := lister.ListVocabularies(ctx, token)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if page.NextToken == "" {
			return all, nil
		}
		token = page.NextToken
	}
}

// HasVocabulary reports whether a vocabulary with the given name exists.
func HasVocabulary(ctx context.Context, lister VocabularyLister, name string) (bool, error) {
	vocabs, err := AllVocabularies(ctx, lister)
	if err != nil {
		return false, err
	}
	for _, v := range vocabs {
		if v.Name == name {
			return true, nil
		}
	}
	return false, nil
}
