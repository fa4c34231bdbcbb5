package scanner

import (
	"context"
	"os"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/sadopc/stray/internal/config"
)

// Walker enumerates every file under a root with goroutine-per-directory
// parallelism, pruning ignored folders by name at any depth and skipping
// ignored file names at any depth. The returned order is whatever the
// traversal yields; callers must not rely on it.
type Walker struct {
	src Source
	// Workers overrides the directory concurrency (0 = auto).
	Workers int
}

// NewWalker creates a walker over the given source.
func NewWalker(src Source) *Walker {
	return &Walker{src: src}
}

// Walk returns the absolute paths of all surviving files under root.
// Progress updates are sent on the progress channel if non-nil; the
// channel is never closed by Walk. Unreadable directories are counted
// and skipped. Cancellation surfaces as ctx.Err() with no result.
func (w *Walker) Walk(ctx context.Context, root string, cfg config.Config, progress chan<- Progress) ([]string, error) {
	absRoot, err := w.src.Abs(root)
	if err != nil {
		return nil, err
	}
	info, err := w.src.Stat(absRoot)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &os.PathError{Op: "walk", Path: absRoot, Err: os.ErrInvalid}
	}

	concurrency := w.Workers
	if concurrency <= 0 {
		concurrency = runtime.GOMAXPROCS(0) * 3
	}
	sem := make(chan struct{}, concurrency)

	var filesFound, dirsWalked, errCount atomic.Int64
	startTime := time.Now()

	// Progress reporter goroutine
	var progressWg sync.WaitGroup
	progressDone := make(chan struct{})
	if progress != nil {
		progressWg.Add(1)
		go func() {
			defer progressWg.Done()
			ticker := time.NewTicker(50 * time.Millisecond)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					select {
					case progress <- Progress{
						FilesFound: filesFound.Load(),
						DirsWalked: dirsWalked.Load(),
						Errors:     errCount.Load(),
						StartTime:  startTime,
						Duration:   time.Since(startTime),
					}:
					default:
						// Drop if channel full
					}
				case <-progressDone:
					return
				}
			}
		}()
	}

	var mu sync.Mutex
	var files []string

	var wg sync.WaitGroup
	w.walkDir(ctx, absRoot, cfg, sem, &wg, &mu, &files, &filesFound, &dirsWalked, &errCount)
	wg.Wait()

	// Send final progress
	if progress != nil {
		close(progressDone)
		progressWg.Wait()
		select {
		case progress <- Progress{
			FilesFound: filesFound.Load(),
			DirsWalked: dirsWalked.Load(),
			Errors:     errCount.Load(),
			Done:       true,
			StartTime:  startTime,
			Duration:   time.Since(startTime),
		}:
		default:
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return files, nil
}

func (w *Walker) walkDir(
	ctx context.Context,
	dirPath string,
	cfg config.Config,
	sem chan struct{},
	wg *sync.WaitGroup,
	mu *sync.Mutex,
	files *[]string,
	filesFound, dirsWalked, errCount *atomic.Int64,
) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	entries, err := w.src.ReadDir(dirPath)
	if err != nil {
		errCount.Add(1)
		return
	}

	dirsWalked.Add(1)

	// Run subdirectory walks with bounded goroutines. If all workers are
	// busy, descend synchronously in the current goroutine instead of
	// spawning blocked goroutines.
	spawnWalk := func(path string) {
		select {
		case sem <- struct{}{}:
			wg.Add(1)
			go func(p string) {
				defer wg.Done()
				defer func() { <-sem }()
				w.walkDir(ctx, p, cfg, sem, wg, mu, files, filesFound, dirsWalked, errCount)
			}(path)
		default:
			w.walkDir(ctx, path, cfg, sem, wg, mu, files, filesFound, dirsWalked, errCount)
		}
	}

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return
		default:
		}

		name := entry.Name()

		if entry.IsDir() {
			// Prune by exact name, regardless of depth.
			if cfg.IgnoresFolder(name) {
				continue
			}
			spawnWalk(w.src.Join(dirPath, name))
			continue
		}

		// The ignored-file-name rule applies at every level, not just
		// the root.
		if cfg.IgnoresFile(name) {
			continue
		}
		// Sockets, fifos and devices are not scannable content.
		if mode := entry.Mode(); !mode.IsRegular() && mode&os.ModeSymlink == 0 {
			continue
		}

		mu.Lock()
		*files = append(*files, w.src.Join(dirPath, name))
		mu.Unlock()
		filesFound.Add(1)
	}
}
