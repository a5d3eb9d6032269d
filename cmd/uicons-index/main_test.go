package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func execute(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	t.Chdir(t.TempDir()) // keep stray config files out of the way
	var out, errOut bytes.Buffer
	cmd := newRootCmd(newApp())
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err = cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, filepath.FromSlash(f))
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(p, nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCreateWritesSortedIndexes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "gen1/10.png", "gen1/2.png", "gen1/1.png")

	if _, err := execute(t, "create", root); err != nil {
		t.Fatalf("create: %v", err)
	}
	raw, err := os.ReadFile(filepath.Join(root, "index.json"))
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"gen1":["1.png","2.png","10.png"]}` {
		t.Fatalf("root index.json = %s", raw)
	}
}

func TestUpdateWritesIndexes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "a.png", "b.png")
	if _, err := execute(t, "update", root, "--jobs", "2"); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "index.json")); err != nil {
		t.Fatalf("index.json not written: %v", err)
	}
}

func TestDryRunPrintsManifest(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "gen1/1.png")
	out, err := execute(t, "create", "--dry-run", root)
	if err != nil {
		t.Fatalf("create --dry-run: %v", err)
	}
	if !strings.Contains(out, `"gen1": [`) {
		t.Fatalf("unexpected output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(root, "index.json")); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote index.json")
	}
}

func TestCheckExitCodes(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "gen1/1.png")

	out, err := execute(t, "create", "--check", root)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 1 {
		t.Fatalf("want exit 1 before indexing, got %v", err)
	}
	if !strings.Contains(out, "missing: ") {
		t.Fatalf("check output:\n%s", out)
	}

	if _, err := execute(t, "create", root); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := execute(t, "create", "--check", root); err != nil {
		t.Fatalf("check after create: %v", err)
	}
}

func TestCheckConflictsWithWatch(t *testing.T) {
	_, err := execute(t, "create", "--check", "--watch", t.TempDir())
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("want exit 2, got %v", err)
	}
}

func TestDryRunConflictsWithWatch(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "gen1/1.png")
	_, err := execute(t, "create", "--dry-run", "--watch", root)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("want exit 2, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, "index.json")); !os.IsNotExist(err) {
		t.Fatalf("rejected invocation still indexed: %v", err)
	}
}

func TestMissingDirectoryFails(t *testing.T) {
	if _, err := execute(t, "create", filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatalf("expected error")
	}
}

func TestBadLogLevelIsUsageError(t *testing.T) {
	_, err := execute(t, "create", "--log-level", "loud", t.TempDir())
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("want exit 2, got %v", err)
	}
}

func TestTooManyArgs(t *testing.T) {
	if _, err := execute(t, "create", "a", "b"); err == nil {
		t.Fatalf("expected args error")
	}
}

func TestVerifyAfterCreate(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, "gen1/1.png", "gen2/2.png")
	if _, err := execute(t, "verify", root); err == nil {
		t.Fatalf("verify should fail before indexing")
	}
	if _, err := execute(t, "create", root); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := execute(t, "verify", root); err != nil {
		t.Fatalf("verify: %v", err)
	}
}
