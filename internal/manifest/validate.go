package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks the structural rules every generated manifest obeys and
// returns a single aggregated error listing all violations:
//
//   - leaf entries are non-empty and contain ".png"
//   - branch keys are non-empty and contain no "."
//   - no name contains a path separator
//   - no leaf lists the same file twice
//
// Hand-edited or foreign index.json files may fail these checks even though
// they decode fine.
func Validate(m Manifest) error {
	var errs errlist
	_ = m.Walk(func(rel string, node Manifest) error {
		where := rel
		if where == "" {
			where = "."
		}
		switch node.Kind() {
		case KindLeaf:
			seen := make(map[string]struct{}, len(node.files))
			for i, name := range node.files {
				prefix := fmt.Sprintf("%s: files[%d] (%s)", where, i, name)
				checkName(&errs, prefix, name)
				if !strings.Contains(name, ".png") {
					errs.add("%s: not a .png file", prefix)
				}
				if _, dup := seen[name]; dup {
					errs.add("%s: duplicate file", prefix)
				}
				seen[name] = struct{}{}
			}
		case KindBranch:
			for _, name := range node.Children() {
				prefix := fmt.Sprintf("%s: child %q", where, name)
				checkName(&errs, prefix, name)
				if strings.Contains(name, ".") {
					errs.add("%s: directory names must not contain '.'", prefix)
				}
			}
		}
		return nil
	})
	return errs.err()
}

func checkName(errs *errlist, prefix, name string) {
	if name == "" {
		errs.add("%s: name must be non-empty", prefix)
	}
	if strings.ContainsAny(name, `/\`) {
		errs.add("%s: name must not contain a path separator", prefix)
	}
}

// errlist aggregates multiple validation issues into a single error.
type errlist struct {
	msgs []string
}

func (e *errlist) add(format string, args ...any) {
	if e == nil {
		return
	}
	e.msgs = append(e.msgs, fmt.Sprintf(format, args...))
}

func (e *errlist) err() error {
	if e == nil || len(e.msgs) == 0 {
		return nil
	}
	return errors.New(strings.Join(e.msgs, "\n"))
}
