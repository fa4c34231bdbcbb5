// Package engine implements the reference heuristic: a file counts as
// used when any other tracked file's content mentions its name. The
// heuristic is deliberately conservative; a false "used" is cheaper
// than flagging a live file for deletion.
package engine

import (
	"context"
	"runtime"
	"sort"
	"sync"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"github.com/sadopc/stray/internal/model"
	"github.com/sadopc/stray/internal/scanner"
)

// Document is one distinct file content plus every tracked path that
// carries it byte-for-byte.
type Document struct {
	Paths   []string
	Content string
	Digest  uint64
}

// Index holds every tracked file's content, read once per scan and
// deduplicated by content digest so identical files are searched once.
type Index struct {
	docs   []*Document
	byPath map[string]*Document
}

// BuildIndex reads each tracked file through src exactly once, with
// bounded parallelism, and groups byte-identical contents into a single
// document. Unreadable files contribute an empty content that can never
// match anything. The progress callback, if non-nil, is invoked after
// every completed read.
func BuildIndex(ctx context.Context, src scanner.Source, tracked []model.Candidate, workers int, progress func(done, total int)) (*Index, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0) * 2
	}

	contents := make([]string, len(tracked))
	var mu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, c := range tracked {
		i, c := i, c
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := src.ReadFile(c.Path)
			if err != nil {
				data = nil
			}
			mu.Lock()
			contents[i] = string(data)
			done++
			if progress != nil {
				progress(done, len(tracked))
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	idx := &Index{byPath: make(map[string]*Document, len(tracked))}
	byDigest := make(map[uint64][]*Document)
	for i, c := range tracked {
		content := contents[i]
		digest := xxhash.Sum64String(content)

		var doc *Document
		for _, d := range byDigest[digest] {
			if d.Content == content {
				doc = d
				break
			}
		}
		if doc == nil {
			doc = &Document{Content: content, Digest: digest}
			byDigest[digest] = append(byDigest[digest], doc)
			idx.docs = append(idx.docs, doc)
		}
		doc.Paths = append(doc.Paths, c.Path)
		idx.byPath[c.Path] = doc
	}
	return idx, nil
}

// Files returns the number of indexed paths.
func (idx *Index) Files() int {
	return len(idx.byPath)
}

// Mentions reports whether any tracked file other than the candidate
// itself contains the candidate's base name or stem as a substring.
// The comparison is a raw case-sensitive byte search.
func (idx *Index) Mentions(c model.Candidate) bool {
	own := idx.byPath[c.Path]
	for _, d := range idx.docs {
		// A document backed only by the candidate itself is not
		// evidence of use.
		if d == own && len(d.Paths) == 1 {
			continue
		}
		if containsAny(d.Content, c.BaseName, c.Stem) {
			return true
		}
	}
	return false
}

// DuplicateGroups returns the sets of byte-identical non-empty files,
// largest group first.
func (idx *Index) DuplicateGroups() []model.DupGroup {
	var groups []model.DupGroup
	for _, d := range idx.docs {
		if len(d.Paths) < 2 || len(d.Content) == 0 {
			continue
		}
		paths := append([]string(nil), d.Paths...)
		sort.Strings(paths)
		groups = append(groups, model.DupGroup{
			Size:  int64(len(d.Content)),
			Paths: paths,
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i].Paths) != len(groups[j].Paths) {
			return len(groups[i].Paths) > len(groups[j].Paths)
		}
		return groups[i].Paths[0] < groups[j].Paths[0]
	})
	return groups
}
