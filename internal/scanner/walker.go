package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/cheerioskun/findninja/internal/matchers"
	"github.com/cheerioskun/findninja/internal/models"
	"github.com/cheerioskun/findninja/internal/utils"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// chunkSize is how many entries one worker evaluates at a time
const chunkSize = 256

// Walker traverses a filesystem and evaluates a matcher against every entry
type Walker struct {
	fs      afero.Fs
	workers int
}

// NewWalker creates a new Walker with the given filesystem
func NewWalker(fs afero.Fs) *Walker {
	return &Walker{
		fs:      fs,
		workers: runtime.NumCPU(),
	}
}

// SetWorkers sets how many goroutines evaluate entries. Values below 1 mean 1.
func (w *Walker) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	w.workers = n
}

// Workers returns the configured worker count
func (w *Walker) Workers() int {
	return w.workers
}

// Walk visits q.Root and everything below it depth-first, in name order,
// honoring the depth bounds. Directories that cannot be read are reported
// through skipped and traversal continues.
func (w *Walker) Walk(ctx context.Context, q *models.Query, visit func(*models.Entry) error, skipped func(path string, err error)) error {
	info, err := w.lstat(q.Root)
	if err != nil {
		return fmt.Errorf("failed to access path %s: %w", q.Root, err)
	}
	return w.walk(ctx, q, q.Root, 0, info, visit, skipped)
}

func (w *Walker) walk(ctx context.Context, q *models.Query, path string, depth int, info os.FileInfo, visit func(*models.Entry) error, skipped func(string, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if depth >= q.MinDepth {
		if err := visit(models.NewEntry(path, depth, info)); err != nil {
			return err
		}
	}

	if !info.IsDir() || (q.HasDepthLimit() && depth >= q.MaxDepth) {
		return nil
	}

	children, err := afero.ReadDir(w.fs, path)
	if err != nil {
		skipped(path, err)
		return nil
	}

	for _, child := range children {
		if err := w.walk(ctx, q, joinPath(path, child.Name()), depth+1, child, visit, skipped); err != nil {
			return err
		}
	}
	return nil
}

// Find walks q.Root and returns the entries m accepts, in traversal order.
// Entries are evaluated by a pool of workers sharing m.
func (w *Walker) Find(ctx context.Context, q *models.Query, m matchers.Matcher, io *matchers.MatcherIO) (*models.ResultSet, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	result := models.NewResultSet(q)

	var entries []*models.Entry
	err := w.Walk(ctx, q,
		func(e *models.Entry) error {
			entries = append(entries, e)
			return nil
		},
		func(path string, err error) {
			utils.Warning("failed to read directory %s: %v", path, err)
			result.Skipped = append(result.Skipped, path)
		})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", q.Root, err)
	}
	result.Visited = len(entries)

	if io == nil {
		io = matchers.NewMatcherIO()
	}

	// Quitting must stop at the first match in traversal order, so chunks
	// then run one after another.
	workers := w.workers
	if q.Quit {
		workers = 1
	}

	matched := make([]bool, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for start := 0; start < len(entries); start += chunkSize {
		end := start + chunkSize
		if end > len(entries) {
			end = len(entries)
		}
		start := start
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if io.ShouldQuit() {
					return nil
				}
				matched[i] = m.Matches(entries[i], io)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("evaluation interrupted: %w", err)
	}

	for i, e := range entries {
		if matched[i] {
			result.Add(e)
		}
	}
	result.Finish()

	utils.Debug("find %s: visited %d, matched %d, skipped %d", q.Root, result.Visited, result.Count(), len(result.Skipped))
	return result, nil
}

func (w *Walker) lstat(path string) (os.FileInfo, error) {
	if l, ok := w.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(path)
		return info, err
	}
	return w.fs.Stat(path)
}

// joinPath appends name to parent without cleaning parent, so the starting
// point appears in every path exactly as the user wrote it.
func joinPath(parent, name string) string {
	sep := string(filepath.Separator)
	if strings.HasSuffix(parent, sep) {
		return parent + name
	}
	return parent + sep + name
}
