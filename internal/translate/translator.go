// Package translate produces translated caption sets through a bounded
// worker pool over a pluggable machine-translation backend.
package translate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"captionforge/internal/caption"
)

// Translator converts one text fragment between languages.
type Translator interface {
	Translate(ctx context.Context, text, sourceLang, targetLang string) (string, error)
}

// BatchError reports a translation batch that failed partway. None of the
// batch's output is usable when this is returned.
type BatchError struct {
	Err error
}

func (e *BatchError) Error() string {
	return fmt.Sprintf("translation batch failed: %v", e.Err)
}

func (e *BatchError) Unwrap() error { return e.Err }

// Pool fans caption texts out to the translator with bounded parallelism
// and request rate limiting.
type Pool struct {
	translator Translator
	size       int
	limiter    *rate.Limiter
}

// NewPool creates a Pool running at most size concurrent requests, rate
// limited to ratePerMin requests per minute.
func NewPool(translator Translator, size, ratePerMin int) *Pool {
	if size < 1 {
		size = 1
	}
	return &Pool{
		translator: translator,
		size:       size,
		limiter:    rate.NewLimiter(rate.Limit(float64(ratePerMin)/60.0), 1),
	}
}

// TranslateAll translates every caption's text and returns a new caption set
// in the same order, timing and ids untouched. The first failure cancels the
// remaining work and the whole batch fails with a BatchError. Whitespace
// placeholders stand in for empty texts so the caption count stays stable.
func (p *Pool) TranslateAll(ctx context.Context, captions []caption.Caption, sourceLang, targetLang string) ([]caption.Caption, error) {
	out := make([]caption.Caption, len(captions))
	copy(out, captions)

	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.size)

	for i := range out {
		g.Go(func() error {
			if out[i].Text == "" {
				out[i].Text = " "
				return nil
			}

			if err := p.limiter.Wait(gctx); err != nil {
				return fmt.Errorf("rate limiter: %w", err)
			}

			translated, err := p.translator.Translate(gctx, out[i].Text, sourceLang, targetLang)
			if err != nil {
				return fmt.Errorf("caption %d: %w", out[i].ID, err)
			}
			if translated == "" {
				translated = " "
			}
			out[i].Text = translated

			mu.Lock()
			done++
			if done%25 == 0 {
				slog.Debug("translation progress", "done", done, "total", len(out))
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, &BatchError{Err: err}
	}
	return out, nil
}
