package engine

import (
	"context"
	"strings"

	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/override"
)

// Engine classifies candidate files against a prebuilt content index.
type Engine struct {
	idx *Index
}

// New returns an engine over the given index.
func New(idx *Index) *Engine {
	return &Engine{idx: idx}
}

// FindUnused returns the paths in batch that nothing else references,
// honoring overrides: a pinned-used candidate never appears, a
// pinned-unused candidate always does, and neither costs a content
// scan. Cancellation is polled between candidates, never inside a
// candidate's document loop; on cancellation the partial result is
// returned with ctx.Err() and the remaining candidates stay unjudged.
func (e *Engine) FindUnused(ctx context.Context, batch []model.Candidate, ov *override.Store) ([]string, error) {
	var unused []string
	for _, c := range batch {
		select {
		case <-ctx.Done():
			return unused, ctx.Err()
		default:
		}

		if used, ok := ov.Get(c.Path); ok {
			if !used {
				unused = append(unused, c.Path)
			}
			continue
		}
		if !e.idx.Mentions(c) {
			unused = append(unused, c.Path)
		}
	}
	return unused, nil
}

func containsAny(content string, needles ...string) bool {
	for _, n := range needles {
		if n != "" && strings.Contains(content, n) {
			return true
		}
	}
	return false
}
