// Package indexer walks an icon asset tree and writes an index.json manifest
// into every directory it visits.
//
// A directory holding at least one subdirectory gets a branch manifest
// (subdirectory name to that subdirectory's manifest; sibling files are
// dropped). Any other directory gets a leaf manifest listing its .png files.
// Manifests are written post-order: a directory's index.json lands only after
// all of its subdirectories' files have been written.
package indexer

import (
	"context"
	"io"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"uicons-index/internal/indexfile"
	"uicons-index/internal/manifest"
	"uicons-index/internal/sortutil"
	"uicons-index/internal/walkwalk"
)

// DefaultRoot is the directory indexed when none is given: the invocation
// directory.
const DefaultRoot = "./"

// DefaultMaxDiffBytes caps the input of one drift diff in Check.
const DefaultMaxDiffBytes = 1 << 20

// DirResult reports one visited directory.
type DirResult struct {
	Path     string
	Manifest manifest.Manifest
	Written  bool
}

// Options configures an Indexer. The zero value indexes with ModeSorted,
// runtime.NumCPU() jobs and no logging.
type Options struct {
	Mode Mode

	// Jobs bounds both the subdirectories indexed concurrently under one
	// parent and the directory reads and manifest writes in flight across
	// the whole tree. Zero or negative means runtime.NumCPU().
	Jobs int

	// DryRun computes manifests without writing any index.json.
	DryRun bool

	// MaxDiffBytes limits the combined size of the old and new documents
	// Check diffs; larger pairs get a placeholder diff. Zero or negative
	// means DefaultMaxDiffBytes.
	MaxDiffBytes int

	Logger *log.Logger

	// OnDirectory, if set, is called once per visited directory after its
	// manifest is final. Calls come from multiple goroutines.
	OnDirectory func(DirResult)
}

// Indexer builds manifests for asset trees. An Indexer may be reused but
// runs must not overlap.
type Indexer struct {
	opts   Options
	logger *log.Logger
	sem    *semaphore.Weighted
	stats  counters
}

// New returns an Indexer configured by opts.
func New(opts Options) *Indexer {
	if opts.Jobs <= 0 {
		opts.Jobs = runtime.NumCPU()
	}
	if opts.MaxDiffBytes <= 0 {
		opts.MaxDiffBytes = DefaultMaxDiffBytes
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Indexer{
		opts:   opts,
		logger: logger,
		sem:    semaphore.NewWeighted(int64(opts.Jobs)),
	}
}

// Options returns the effective options.
func (ix *Indexer) Options() Options { return ix.opts }

// Index scans root, writes index.json into root and every descendant
// directory, and returns root's manifest. The first read or write failure
// stops the run and is returned as an *Error; manifests already written stay
// on disk.
func (ix *Indexer) Index(ctx context.Context, root string) (manifest.Manifest, error) {
	ix.stats.reset()
	return ix.visit(ctx, walkwalk.NormalizePath(root))
}

// Stats returns counters for the most recent run.
func (ix *Indexer) Stats() Stats { return ix.stats.snapshot() }

func (ix *Indexer) visit(ctx context.Context, dir string) (manifest.Manifest, error) {
	if err := ctx.Err(); err != nil {
		return manifest.Manifest{}, err
	}
	entries, err := ix.list(ctx, dir)
	if err != nil {
		return manifest.Manifest{}, err
	}

	var m manifest.Manifest
	if entries.HasSubdirs() {
		children, err := ix.descend(ctx, dir, entries.Subdirs)
		if err != nil {
			return manifest.Manifest{}, err
		}
		m = manifest.Branch(children)
		ix.stats.branches.Add(1)
	} else {
		m = manifest.Leaf(ix.order(entries.Images())...)
		ix.stats.leaves.Add(1)
		ix.stats.images.Add(int64(m.Len()))
	}
	ix.stats.dirs.Add(1)

	written, err := ix.write(ctx, dir, m)
	if err != nil {
		return manifest.Manifest{}, err
	}
	ix.logger.Debug("indexed", "path", dir, "kind", m.Kind(), "entries", m.Len(), "written", written)
	if ix.opts.OnDirectory != nil {
		ix.opts.OnDirectory(DirResult{Path: dir, Manifest: m, Written: written})
	}
	return m, nil
}

// descend indexes every subdirectory of dir concurrently and folds the
// results into one map once all of them are done. Each task owns its slot
// in results until Wait returns.
func (ix *Indexer) descend(ctx context.Context, dir string, subdirs []string) (map[string]manifest.Manifest, error) {
	results := make([]manifest.Manifest, len(subdirs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ix.opts.Jobs)
	for i, name := range subdirs {
		g.Go(func() error {
			m, err := ix.visit(gctx, filepath.Join(dir, name))
			if err != nil {
				return err
			}
			results[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	children := make(map[string]manifest.Manifest, len(subdirs))
	for i, name := range subdirs {
		children[name] = results[i]
	}
	return children, nil
}

func (ix *Indexer) order(images []string) []string {
	if ix.opts.Mode == ModeUnsorted {
		return images
	}
	return sortutil.NaturalSort(images)
}

// list reads dir while holding one slot of the I/O semaphore.
func (ix *Indexer) list(ctx context.Context, dir string) (walkwalk.Entries, error) {
	if err := ix.sem.Acquire(ctx, 1); err != nil {
		return walkwalk.Entries{}, err
	}
	defer ix.sem.Release(1)
	entries, err := walkwalk.ReadEntries(dir)
	if err != nil {
		return walkwalk.Entries{}, &Error{Op: OpRead, Path: dir, Err: err}
	}
	return entries, nil
}

func (ix *Indexer) write(ctx context.Context, dir string, m manifest.Manifest) (bool, error) {
	if ix.opts.DryRun {
		return false, nil
	}
	if err := ix.sem.Acquire(ctx, 1); err != nil {
		return false, err
	}
	defer ix.sem.Release(1)
	if err := indexfile.Write(dir, m); err != nil {
		return false, &Error{Op: OpWrite, Path: indexfile.Path(dir), Err: err}
	}
	ix.stats.written.Add(1)
	return true, nil
}

// CreateIndex indexes root with naturally sorted leaves.
func CreateIndex(ctx context.Context, root string, logger *log.Logger) (manifest.Manifest, error) {
	return New(Options{Mode: ModeSorted, Logger: logger}).Index(ctx, root)
}

// Update indexes root keeping leaves in directory listing order.
func Update(ctx context.Context, root string, logger *log.Logger) (manifest.Manifest, error) {
	return New(Options{Mode: ModeUnsorted, Logger: logger}).Index(ctx, root)
}
