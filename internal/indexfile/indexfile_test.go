package indexfile

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"uicons-index/internal/manifest"
)

func TestWriteThenRead(t *testing.T) {
	dir := t.TempDir()
	m := manifest.Branch(map[string]manifest.Manifest{"gen1": manifest.Leaf("1.png", "2.png")})
	if err := Write(dir, m); err != nil {
		t.Fatalf("Write: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "index.json"))
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(raw) != `{"gen1":["1.png","2.png"]}` {
		t.Fatalf("unexpected file content %s", raw)
	}

	got, err := Read(dir)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !manifest.Equal(m, got) {
		t.Fatalf("Read mismatch: %s", raw)
	}
}

func TestWriteOverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(Path(dir), []byte("stale content that is longer"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Write(dir, manifest.Leaf()); err != nil {
		t.Fatalf("Write: %v", err)
	}
	raw, _ := os.ReadFile(Path(dir))
	if string(raw) != "[]" {
		t.Fatalf("got %q, want []", raw)
	}
	entries, _ := os.ReadDir(dir)
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), TempPrefix) {
			t.Fatalf("temporary file left behind: %s", e.Name())
		}
	}
	info, err := os.Stat(Path(dir))
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm()&0o044 == 0 {
		t.Fatalf("index.json not readable by others: %v", info.Mode())
	}
}

func TestWriteFailsWhenTargetIsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := os.Mkdir(Path(dir), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(Path(dir), "keep"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Write(dir, manifest.Leaf("a.png")); err == nil {
		t.Fatalf("expected error renaming over a directory")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Fatalf("temporary file not cleaned up: %v", entries)
	}
}

func TestReadMissing(t *testing.T) {
	_, err := Read(t.TempDir())
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}

func TestPretty(t *testing.T) {
	got := string(Pretty([]byte(`{"a":["1.png"]}`)))
	want := "{\n  \"a\": [\n    \"1.png\"\n  ]\n}\n"
	if got != want {
		t.Fatalf("Pretty = %q, want %q", got, want)
	}
	if string(Pretty([]byte("not json"))) != "not json" {
		t.Fatalf("invalid JSON should pass through")
	}
}
