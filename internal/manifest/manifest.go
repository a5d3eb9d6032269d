// Package manifest defines the value written to every index.json: either a
// leaf (the image filenames found directly in a directory) or a branch (the
// directory's subdirectories mapped to their own manifests).
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"path"
	"slices"

	"uicons-index/internal/sortutil"
)

// Kind tells which shape a Manifest has.
type Kind int

const (
	KindLeaf Kind = iota
	KindBranch
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindBranch:
		return "branch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Manifest is an immutable leaf-or-branch value. The zero value is an empty
// leaf, which encodes as [].
type Manifest struct {
	kind     Kind
	files    []string
	children map[string]Manifest
}

// Leaf builds a leaf manifest. Order of names is preserved.
func Leaf(names ...string) Manifest {
	files := make([]string, len(names))
	copy(files, names)
	return Manifest{kind: KindLeaf, files: files}
}

// Branch builds a branch manifest from subdirectory name to child manifest.
func Branch(children map[string]Manifest) Manifest {
	cp := make(map[string]Manifest, len(children))
	for name, child := range children {
		cp[name] = child
	}
	return Manifest{kind: KindBranch, children: cp}
}

func (m Manifest) Kind() Kind { return m.kind }

// Files returns a copy of the leaf filenames; nil for branches.
func (m Manifest) Files() []string {
	if m.kind != KindLeaf {
		return nil
	}
	out := make([]string, len(m.files))
	copy(out, m.files)
	return out
}

// Children returns the branch keys in byte-wise order; nil for leaves.
func (m Manifest) Children() []string {
	if m.kind != KindBranch {
		return nil
	}
	return sortutil.StablePathSort(slices.Collect(maps.Keys(m.children)))
}

// Child looks up a subdirectory manifest of a branch.
func (m Manifest) Child(name string) (Manifest, bool) {
	if m.kind != KindBranch {
		return Manifest{}, false
	}
	c, ok := m.children[name]
	return c, ok
}

// Len is the number of files of a leaf or children of a branch.
func (m Manifest) Len() int {
	if m.kind == KindBranch {
		return len(m.children)
	}
	return len(m.files)
}

// Equal reports whether a and b have the same shape and contents. Leaf order
// matters; branch key order does not exist.
func Equal(a, b Manifest) bool {
	if a.kind != b.kind {
		return false
	}
	if a.kind == KindLeaf {
		if len(a.files) != len(b.files) {
			return false
		}
		for i := range a.files {
			if a.files[i] != b.files[i] {
				return false
			}
		}
		return true
	}
	if len(a.children) != len(b.children) {
		return false
	}
	for name, ac := range a.children {
		bc, ok := b.children[name]
		if !ok || !Equal(ac, bc) {
			return false
		}
	}
	return true
}

// Walk visits m and every descendant depth-first, parents before children,
// siblings in byte-wise order. rel is the slash-separated path from the root
// manifest ("" for the root itself). Returning an error stops the walk.
func (m Manifest) Walk(fn func(rel string, m Manifest) error) error {
	return m.walk("", fn)
}

func (m Manifest) walk(rel string, fn func(string, Manifest) error) error {
	if err := fn(rel, m); err != nil {
		return err
	}
	for _, name := range m.Children() {
		if err := m.children[name].walk(path.Join(rel, name), fn); err != nil {
			return err
		}
	}
	return nil
}

// MarshalJSON encodes leaves as arrays and branches as objects. HTML
// characters, U+2028, U+2029 and U+FFFD are written raw, so the output
// matches JSON.stringify. Invalid UTF-8 in a name becomes U+FFFD.
func (m Manifest) MarshalJSON() ([]byte, error) {
	switch m.kind {
	case KindLeaf:
		files := m.files
		if files == nil {
			files = []string{}
		}
		return encodeCompact(files)
	case KindBranch:
		return encodeCompact(m.children)
	default:
		return nil, fmt.Errorf("manifest: unknown kind %v", m.kind)
	}
}

// UnmarshalJSON accepts a JSON array (leaf) or object (branch).
func (m *Manifest) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return errors.New("manifest: empty JSON value")
	}
	switch trimmed[0] {
	case '[':
		var files []string
		if err := json.Unmarshal(trimmed, &files); err != nil {
			return fmt.Errorf("manifest: decode leaf: %w", err)
		}
		*m = Leaf(files...)
	case '{':
		var children map[string]Manifest
		if err := json.Unmarshal(trimmed, &children); err != nil {
			return fmt.Errorf("manifest: decode branch: %w", err)
		}
		*m = Manifest{kind: KindBranch, children: children}
		if m.children == nil {
			m.children = map[string]Manifest{}
		}
	default:
		return fmt.Errorf("manifest: expected array or object, got %q", trimmed[0])
	}
	return nil
}

// Encode returns the compact JSON form of m, exactly as written to disk.
func Encode(m Manifest) ([]byte, error) {
	return encodeCompact(m)
}

func encodeCompact(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return unescapeRunes(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// rawEscapes are the \u escapes encoding/json always emits that
// JSON.stringify leaves as literal characters.
var rawEscapes = map[string]string{
	"2028": "\u2028",
	"2029": "\u2029",
	"fffd": "\ufffd",
}

// unescapeRunes rewrites the escapes in rawEscapes as UTF-8. Escaped
// backslashes are copied in pairs so a literal `\u2028` in a name survives.
func unescapeRunes(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		if b[i+1] == 'u' && i+6 <= len(b) {
			if r, ok := rawEscapes[string(b[i+2:i+6])]; ok {
				out = append(out, r...)
				i += 5
				continue
			}
		}
		out = append(out, b[i], b[i+1])
		i++
	}
	return out
}
