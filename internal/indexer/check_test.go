package indexer

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestCheckUpToDate(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "gen1/1.png", "gen2/2.png")
	ix := New(Options{})
	if _, err := ix.Index(context.Background(), root); err != nil {
		t.Fatalf("Index: %v", err)
	}
	drifts, err := ix.Check(context.Background(), root)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(drifts) != 0 {
		t.Fatalf("expected no drift, got %+v", drifts)
	}
}

func TestCheckReportsStaleAndMissing(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "gen1/1.png", "gen2/2.png")
	ix := New(Options{})
	if _, err := ix.Index(context.Background(), root); err != nil {
		t.Fatalf("Index: %v", err)
	}

	mkTree(t, root, "gen1/3.png", "gen3/4.png")
	drifts, err := ix.Check(context.Background(), root)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}

	byDir := map[string]Drift{}
	for _, d := range drifts {
		rel, _ := filepath.Rel(root, filepath.Dir(filepath.FromSlash(d.Path)))
		byDir[filepath.ToSlash(rel)] = d
	}
	if len(byDir) != 3 {
		t.Fatalf("want drift for ., gen1 and gen3, got %+v", drifts)
	}
	if d := byDir["gen1"]; d.Missing || !strings.Contains(d.Diff, `+  "3.png"`) {
		t.Fatalf("gen1 drift should add 3.png:\n%s", d.Diff)
	}
	if d := byDir["gen3"]; !d.Missing {
		t.Fatalf("gen3 index.json should be missing: %+v", d)
	}
	if d := byDir["."]; d.Missing || !strings.Contains(d.Diff, `"gen3"`) {
		t.Fatalf("root drift should mention gen3:\n%s", d.Diff)
	}

	// check never writes
	if _, err := os.Stat(filepath.Join(root, "gen3", "index.json")); !os.IsNotExist(err) {
		t.Fatalf("Check wrote gen3/index.json")
	}
}

func TestCheckOversizeDiffIsPlaceholder(t *testing.T) {
	root := t.TempDir()
	mkTree(t, root, "1.png")
	if _, err := New(Options{}).Index(context.Background(), root); err != nil {
		t.Fatalf("Index: %v", err)
	}
	mkTree(t, root, "2.png")

	drifts, err := New(Options{MaxDiffBytes: 16}).Check(context.Background(), root)
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(drifts) != 1 {
		t.Fatalf("want 1 drift, got %+v", drifts)
	}
	d := drifts[0]
	if !d.Oversize || !strings.Contains(d.Diff, "omitted") || strings.Contains(d.Diff, "2.png") {
		t.Fatalf("expected placeholder diff, got %+v", d)
	}
}

func TestCheckPropagatesReadErrors(t *testing.T) {
	if _, err := New(Options{}).Check(context.Background(), filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatalf("expected error for missing root")
	}
}
