package indexer

import (
	"errors"
	"fmt"
	"path/filepath"

	"uicons-index/internal/indexfile"
	"uicons-index/internal/manifest"
)

// Verify checks a published tree from the consumer's side: root/index.json
// must decode and validate, and every nested manifest in it must equal the
// index.json stored in the matching subdirectory. Image files are not
// listed. A root manifest that fails validation is reported without reading
// any subdirectory, since its keys may point outside root. Consistency
// problems are returned joined.
func Verify(root string) error {
	m, err := indexfile.Read(root)
	if err != nil {
		return err
	}
	if err := manifest.Validate(m); err != nil {
		return fmt.Errorf("%s: %w", indexfile.Path(root), err)
	}
	var errs []error
	_ = m.Walk(func(rel string, node manifest.Manifest) error {
		if rel == "" {
			return nil
		}
		dir := filepath.Join(root, filepath.FromSlash(rel))
		stored, err := indexfile.Read(dir)
		if err != nil {
			errs = append(errs, err)
			return nil
		}
		if !manifest.Equal(stored, node) {
			errs = append(errs, fmt.Errorf("%s: differs from the manifest in its parent", indexfile.Path(dir)))
		}
		return nil
	})
	return errors.Join(errs...)
}
