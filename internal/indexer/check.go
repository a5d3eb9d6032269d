package indexer

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"

	"uicons-index/internal/diff"
	"uicons-index/internal/indexfile"
	"uicons-index/internal/manifest"
)

// Drift describes one index.json that does not match what a run would write.
type Drift struct {
	Path    string // the index.json path
	Missing bool
	Diff    string // unified diff of the pretty-printed documents

	// Oversize is set when Diff is a placeholder because the documents
	// exceed Options.MaxDiffBytes.
	Oversize bool
}

// Check computes every manifest under root without writing and compares it
// byte-for-byte with the index.json already on disk. Drifts are returned
// sorted by path; an empty result means the tree is up to date.
func (ix *Indexer) Check(ctx context.Context, root string) ([]Drift, error) {
	var (
		mu      sync.Mutex
		results []DirResult
	)
	opts := ix.opts
	opts.DryRun = true
	opts.OnDirectory = func(r DirResult) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}
	if _, err := New(opts).Index(ctx, root); err != nil {
		return nil, err
	}

	var drifts []Drift
	for _, r := range results {
		d, err := compare(r.Path, r.Manifest, diff.Options{MaxBytes: ix.opts.MaxDiffBytes})
		if err != nil {
			return nil, err
		}
		if d != nil {
			drifts = append(drifts, *d)
		}
	}
	sort.Slice(drifts, func(i, j int) bool { return drifts[i].Path < drifts[j].Path })
	ix.logger.Debug("check complete", "root", root, "dirs", len(results), "drifts", len(drifts))
	return drifts, nil
}

func compare(dir string, m manifest.Manifest, opt diff.Options) (*Drift, error) {
	want, err := indexfile.Encode(m)
	if err != nil {
		return nil, err
	}
	path := filepath.ToSlash(indexfile.Path(dir))
	have, err := indexfile.ReadBytes(dir)
	if errors.Is(err, fs.ErrNotExist) {
		body, oversize := diff.Added(path, indexfile.Pretty(want), opt)
		return &Drift{Path: path, Missing: true, Diff: body, Oversize: oversize}, nil
	}
	if err != nil {
		return nil, &Error{Op: OpRead, Path: path, Err: err}
	}
	if bytes.Equal(have, want) {
		return nil, nil
	}
	body, oversize := diff.Unified("a/"+path, "b/"+path, indexfile.Pretty(have), indexfile.Pretty(want), opt)
	return &Drift{Path: path, Diff: body, Oversize: oversize}, nil
}
