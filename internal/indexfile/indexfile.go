// Package indexfile reads and writes the index.json manifest stored in each
// asset directory.
//
// Writes are atomic: the manifest goes to a temporary sibling file which is
// then renamed over index.json, so a consumer fetching the tree mid-run never
// sees a truncated document. Temporary files are named ".tmp-index.json-*".
package indexfile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"uicons-index/internal/manifest"
	"uicons-index/internal/walkwalk"
)

// TempPrefix starts the name of every in-flight temporary file.
const TempPrefix = ".tmp-" + walkwalk.IndexFileName + "-"

// Path returns the location of dir's manifest file.
func Path(dir string) string {
	return filepath.Join(dir, walkwalk.IndexFileName)
}

// Encode returns the bytes Write stores for m: compact JSON, no trailing
// newline.
func Encode(m manifest.Manifest) ([]byte, error) {
	return manifest.Encode(m)
}

// Write stores m as dir/index.json, replacing any existing file.
func Write(dir string, m manifest.Manifest) error {
	data, err := Encode(m)
	if err != nil {
		return fmt.Errorf("encode manifest for %s: %w", dir, err)
	}
	return writeAtomic(dir, data)
}

// ReadBytes returns the raw content of dir/index.json.
func ReadBytes(dir string) ([]byte, error) {
	return os.ReadFile(Path(dir))
}

// Read decodes dir/index.json. A missing file yields an error matching
// fs.ErrNotExist.
func Read(dir string) (manifest.Manifest, error) {
	data, err := ReadBytes(dir)
	if err != nil {
		return manifest.Manifest{}, err
	}
	var m manifest.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return manifest.Manifest{}, fmt.Errorf("decode %s: %w", Path(dir), err)
	}
	return m, nil
}

// Pretty re-indents manifest bytes for human-readable diffs. Input that is not
// valid JSON is returned unchanged.
func Pretty(data []byte) []byte {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return data
	}
	buf.WriteByte('\n')
	return buf.Bytes()
}

func writeAtomic(dir string, data []byte) error {
	f, err := os.CreateTemp(dir, TempPrefix)
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp) // best-effort cleanup
		return err
	}
	// CreateTemp uses 0600; published manifests must be world-readable.
	if err := f.Chmod(0o644); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, Path(dir)); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
