package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()
	defer c.Close()

	// Get always returns miss
	data, hit, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if hit {
		t.Error("NullCache.Get should always return miss")
	}
	if data != nil {
		t.Error("NullCache.Get should return nil data")
	}

	// Set does nothing (no error)
	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	// Still a miss after Set
	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	// Delete does nothing (no error)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}

	if err := Clear(ctx, c); err != ErrNotClearable {
		t.Errorf("Clear(NullCache) = %v, want ErrNotClearable", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	defer c.Close()

	if _, hit, _ := c.Get(ctx, "missing"); hit {
		t.Error("Get on empty cache should miss")
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	data, hit, err := c.Get(ctx, "key")
	if err != nil || !hit || string(data) != "value" {
		t.Errorf("Get = (%q, %v, %v), want (value, true, nil)", data, hit, err)
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete of missing key should not fail: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	if err := c.Set(ctx, "key", []byte("value"), time.Nanosecond); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, hit, _ := c.Get(ctx, "key"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("key")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed from disk")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}

	path := c.path("key")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, hit, err := c.Get(ctx, "key"); hit || err != nil {
		t.Errorf("corrupt entry should be a silent miss, got hit=%v err=%v", hit, err)
	}
}

func TestFileCachePurge(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	c, err := NewFileCache(dir)
	if err != nil {
		t.Fatalf("NewFileCache error: %v", err)
	}
	if c.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", c.Dir(), dir)
	}

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	n, err := c.Purge()
	if err != nil {
		t.Fatalf("Purge error: %v", err)
	}
	if n != 3 {
		t.Errorf("Purge removed %d entries, want 3", n)
	}
	if _, hit, _ := c.Get(ctx, "a"); hit {
		t.Error("Get after Purge should miss")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Purge left %d entries in the cache dir", len(entries))
	}
}

func TestHash(t *testing.T) {
	// Test determinism
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	// Test different inputs produce different hashes
	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	// Test hash length (SHA-256 produces 64 hex chars)
	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestHashInput(t *testing.T) {
	lf := "[A]\n 1\n\nmove 1 from 1 to 1\n"
	crlf := "[A]\r\n 1\r\n\r\nmove 1 from 1 to 1\r\n"
	if HashInput([]byte(lf)) != HashInput([]byte(crlf)) {
		t.Error("HashInput should ignore CRLF line endings")
	}
	if HashInput([]byte(lf)) != Hash([]byte(lf)) {
		t.Error("HashInput should equal Hash for LF input")
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()
	input := Hash([]byte("input"))

	// ResultKey depends on mode and comment marker
	rk1 := k.ResultKey(input, ResultKeyOpts{Mode: "single", CommentMarker: "//"})
	rk2 := k.ResultKey(input, ResultKeyOpts{Mode: "block", CommentMarker: "//"})
	rk3 := k.ResultKey(input, ResultKeyOpts{Mode: "single", CommentMarker: "#"})
	if rk1 == rk2 || rk1 == rk3 {
		t.Error("Different ResultKeyOpts should produce different keys")
	}
	if rk1 != k.ResultKey(input, ResultKeyOpts{Mode: "single", CommentMarker: "//"}) {
		t.Error("ResultKey should be deterministic")
	}
	if !strings.HasPrefix(rk1, KeyTypeResult+":") {
		t.Errorf("ResultKey should start with %q: %s", KeyTypeResult, rk1)
	}

	// ParseKey is separate from ResultKey
	pk := k.ParseKey(input, "//")
	if pk == rk1 || !strings.HasPrefix(pk, KeyTypeParse+":") {
		t.Errorf("ParseKey unexpected: %s", pk)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "server:")

	// All keys should be prefixed
	opts := ResultKeyOpts{Mode: "block"}
	if got, want := scoped.ResultKey("h", opts), "server:"+inner.ResultKey("h", opts); got != want {
		t.Errorf("ScopedKeyer ResultKey = %s, want %s", got, want)
	}
	if got := scoped.ParseKey("h", "//"); !strings.HasPrefix(got, "server:parse:") {
		t.Errorf("ScopedKeyer ParseKey should be prefixed: %s", got)
	}
}

func TestScopedKeyerNilInner(t *testing.T) {
	// Should use DefaultKeyer when inner is nil
	scoped := NewScopedKeyer(nil, "prefix:")
	key := scoped.ParseKey("h", "//")
	if key != "prefix:"+NewDefaultKeyer().ParseKey("h", "//") {
		t.Errorf("Unexpected key with nil inner: %s", key)
	}
}
