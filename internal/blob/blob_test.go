package blob_test

import (
	"os"
	"path/filepath"
	"testing"

	"fdb/internal/blob"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestHash(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "hello.txt", "hello")

	size, hash, err := blob.Hash(path)
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if size != 5 {
		t.Errorf("expected size 5, got %d", size)
	}
	// sha1("hello")
	if hash != "aaf4c61ddcc5e8a2dabede0f3b482cd9aea9434d" {
		t.Errorf("unexpected hash %s", hash)
	}

	if _, _, err := blob.Hash(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected error hashing missing file")
	}
}

func TestCopyInShardsByPrefix(t *testing.T) {
	base := t.TempDir()
	store, err := blob.Open(base)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	src := writeTestFile(t, t.TempDir(), "src.jpg", "content")
	if err := store.CopyIn(src, "abcdef.jpg"); err != nil {
		t.Fatalf("CopyIn failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(base, "orig", "ab", "abcdef.jpg"))
	if err != nil {
		t.Fatalf("blob not at sharded path: %v", err)
	}
	if string(data) != "content" {
		t.Errorf("unexpected blob content %q", data)
	}

	if !store.HasOrig("abcdef.jpg") {
		t.Error("HasOrig false for existing blob")
	}
	if store.HasOrig("ffffff.jpg") {
		t.Error("HasOrig true for missing blob")
	}
}

func TestShortNameRejected(t *testing.T) {
	store, err := blob.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	if _, err := store.OrigPath("ab"); err == nil {
		t.Error("expected error for too-short blob name")
	}
}

func TestWriteThumbAndRemove(t *testing.T) {
	base := t.TempDir()
	store, err := blob.Open(base)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	src := writeTestFile(t, t.TempDir(), "src.jpg", "content")
	if err := store.CopyIn(src, "abcdef.jpg"); err != nil {
		t.Fatalf("CopyIn failed: %v", err)
	}
	if err := store.WriteThumb("abcdef.jpg", []byte{0xff, 0xd8}); err != nil {
		t.Fatalf("WriteThumb failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(base, "thumb", "ab", "abcdef.jpg")); err != nil {
		t.Fatalf("thumbnail not at sharded path: %v", err)
	}

	if err := store.Remove("abcdef.jpg", "abcdef.jpg"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if store.HasOrig("abcdef.jpg") {
		t.Error("blob still present after Remove")
	}

	// Removing again is not an error.
	if err := store.Remove("abcdef.jpg", "abcdef.jpg"); err != nil {
		t.Errorf("Remove of missing blob failed: %v", err)
	}
}
