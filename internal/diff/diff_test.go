package diff

import (
	"strings"
	"testing"
)

func TestUnifiedShowsChangedLines(t *testing.T) {
	old := []byte("[\n  \"1.png\",\n  \"2.png\"\n]\n")
	new := []byte("[\n  \"1.png\",\n  \"3.png\"\n]\n")
	body, oversize := Unified("a/index.json", "b/index.json", old, new, Options{})
	if oversize {
		t.Fatalf("unexpected oversize")
	}
	for _, want := range []string{"--- a/index.json", "+++ b/index.json", "-  \"2.png\"", "+  \"3.png\""} {
		if !strings.Contains(body, want) {
			t.Fatalf("diff missing %q:\n%s", want, body)
		}
	}
}

func TestUnifiedIdenticalIsEmpty(t *testing.T) {
	same := []byte("[]\n")
	if body, _ := Unified("a", "b", same, same, Options{}); body != "" {
		t.Fatalf("expected empty diff, got %q", body)
	}
}

func TestUnifiedOversize(t *testing.T) {
	body, oversize := Unified("a", "b", []byte("xxxx"), []byte("yyyy"), Options{MaxBytes: 4})
	if !oversize || !strings.Contains(body, "omitted") {
		t.Fatalf("expected oversize placeholder, got %q", body)
	}
}

func TestAdded(t *testing.T) {
	body, _ := Added("gen1/index.json", []byte("[]\n"), Options{})
	if !strings.Contains(body, "--- /dev/null") || !strings.Contains(body, "+[]") {
		t.Fatalf("unexpected added patch:\n%s", body)
	}
}
