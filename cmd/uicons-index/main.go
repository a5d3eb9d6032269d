// Command uicons-index writes index.json manifests into every directory of a
// UICONS-style icon tree so clients can discover icons without listing
// directories.
//
// Usage:
//
//	uicons-index create [dir]   naturally sorted leaves (1.png, 2.png, 10.png)
//	uicons-index update [dir]   leaves in directory listing order
//
// dir defaults to the current directory. --check reports stale manifests
// without writing, --watch keeps re-indexing as files change.
package main

import (
	"context"
	"errors"
	"os"

	"github.com/charmbracelet/fang"
)

// Version is set via -ldflags.
var Version = "dev"

func main() {
	root := newRootCmd(newApp())
	if err := fang.Execute(
		context.Background(),
		root,
		fang.WithVersion(Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
