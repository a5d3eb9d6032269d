// Package walkwalk lists icon asset directories and classifies their entries
// the way the asset repositories expect: a name without a "." is a
// subdirectory, a name containing ".png" is an icon.
//
// Classification is by name only. A directory whose name contains a period is
// treated as a file, and an extensionless file is treated as a directory (and
// will fail to list). The asset trees are laid out to avoid both.
package walkwalk

import (
	"fmt"
	"os"
	"strings"
)

const (
	// SubdirMarker is absent from every subdirectory name.
	SubdirMarker = "."
	// ImageSubstring selects the files listed in a leaf manifest.
	ImageSubstring = ".png"
	// IndexFileName is the manifest written into every visited directory.
	IndexFileName = "index.json"
)

// Entries is the classified content of one directory, in listing order.
type Entries struct {
	Subdirs []string // names without SubdirMarker
	Files   []string // every other name
}

// HasSubdirs reports whether the directory produces a branch manifest.
func (e Entries) HasSubdirs() bool { return len(e.Subdirs) > 0 }

// Images returns the files containing ImageSubstring, in listing order.
func (e Entries) Images() []string {
	out := make([]string, 0, len(e.Files))
	for _, name := range e.Files {
		if IsImage(name) {
			out = append(out, name)
		}
	}
	return out
}

// IsSubdir reports whether name is treated as a subdirectory.
func IsSubdir(name string) bool {
	return !strings.Contains(name, SubdirMarker)
}

// IsImage reports whether name is listed in a leaf manifest.
func IsImage(name string) bool {
	return strings.Contains(name, ImageSubstring)
}

// NormalizePath collapses the first doubled "/" in p. Joining "./" with a
// child name by string concatenation yields ".//name"; this undoes it.
func NormalizePath(p string) string {
	return strings.Replace(p, "//", "/", 1)
}

// ReadNames returns the names of dir's direct entries in the order the
// filesystem yields them. Unlike os.ReadDir the result is not sorted.
func ReadNames(dir string) ([]string, error) {
	f, err := os.Open(dir)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	names, err := f.Readdirnames(-1)
	if err != nil {
		return nil, fmt.Errorf("readdir %s: %w", dir, err)
	}
	return names, nil
}

// ReadEntries lists dir and classifies its entries.
func ReadEntries(dir string) (Entries, error) {
	names, err := ReadNames(dir)
	if err != nil {
		return Entries{}, err
	}
	return Classify(names), nil
}

// Classify splits names into subdirectories and files, keeping order.
func Classify(names []string) Entries {
	var e Entries
	for _, name := range names {
		if IsSubdir(name) {
			e.Subdirs = append(e.Subdirs, name)
		} else {
			e.Files = append(e.Files, name)
		}
	}
	return e
}
