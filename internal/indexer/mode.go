package indexer

import "fmt"

// Mode selects how leaf filenames are ordered.
type Mode int

const (
	// ModeSorted orders leaves with sortutil.NaturalSort.
	ModeSorted Mode = iota
	// ModeUnsorted keeps the filesystem's listing order.
	ModeUnsorted
)

func (m Mode) String() string {
	switch m {
	case ModeSorted:
		return "sorted"
	case ModeUnsorted:
		return "unsorted"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}
