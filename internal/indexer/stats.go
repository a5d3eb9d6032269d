package indexer

import "sync/atomic"

// Stats summarizes one run.
type Stats struct {
	Dirs     int64 // directories visited
	Leaves   int64
	Branches int64
	Images   int64 // filenames across all leaf manifests
	Written  int64 // index.json files written
}

type counters struct {
	dirs, leaves, branches, images, written atomic.Int64
}

func (c *counters) reset() {
	c.dirs.Store(0)
	c.leaves.Store(0)
	c.branches.Store(0)
	c.images.Store(0)
	c.written.Store(0)
}

func (c *counters) snapshot() Stats {
	return Stats{
		Dirs:     c.dirs.Load(),
		Leaves:   c.leaves.Load(),
		Branches: c.branches.Load(),
		Images:   c.images.Load(),
		Written:  c.written.Load(),
	}
}
