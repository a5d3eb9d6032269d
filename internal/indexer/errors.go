package indexer

import "fmt"

const (
	OpRead  = "read"
	OpWrite = "write"
)

// Error records a filesystem failure that aborted a run.
type Error struct {
	Op   string // OpRead or OpWrite
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("index %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }
