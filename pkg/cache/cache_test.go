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

	if err := c.Set(ctx, "key", []byte("value"), time.Hour); err != nil {
		t.Errorf("Set error: %v", err)
	}

	_, hit, _ = c.Get(ctx, "key")
	if hit {
		t.Error("NullCache should not store data")
	}

	if err := c.Delete(ctx, "key"); err != nil {
		t.Errorf("Delete error: %v", err)
	}
}

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(filepath.Join(t.TempDir(), "nested", "cache"))
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}

	if _, hit, err := c.Get(ctx, "diagram:a"); hit || err != nil {
		t.Errorf("Get on empty cache = hit %v, err %v", hit, err)
	}

	if err := c.Set(ctx, "diagram:a", []byte("<svg/>"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, hit, err := c.Get(ctx, "diagram:a")
	if err != nil || !hit || string(data) != "<svg/>" {
		t.Errorf("Get = %q, %v, %v; want <svg/>, true, nil", data, hit, err)
	}

	if err := c.Delete(ctx, "diagram:a"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, hit, _ := c.Get(ctx, "diagram:a"); hit {
		t.Error("Get after Delete should miss")
	}
	if err := c.Delete(ctx, "diagram:a"); err != nil {
		t.Errorf("Delete of missing key: %v", err)
	}
}

func TestFileCacheExpiry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if err := c.Set(ctx, "k", []byte("v"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("expired entry should miss")
	}
	if _, err := os.Stat(c.path("k")); !os.IsNotExist(err) {
		t.Error("expired entry should be removed")
	}
}

func TestFileCacheCorruptEntry(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path := c.path("k")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Errorf("corrupt entry: hit %v, err %v; want miss", hit, err)
	}
}

func TestFileCacheClear(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Clear()
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	entries, _ := os.ReadDir(c.Dir())
	if len(entries) != 0 {
		t.Errorf("cache dir not empty after Clear: %d entries", len(entries))
	}
}

func TestHash(t *testing.T) {
	h1 := Hash([]byte("hello"))
	h2 := Hash([]byte("hello"))
	if h1 != h2 {
		t.Error("Hash should be deterministic")
	}

	h3 := Hash([]byte("world"))
	if h1 == h3 {
		t.Error("Different inputs should produce different hashes")
	}

	if len(h1) != 64 {
		t.Errorf("Hash length should be 64, got %d", len(h1))
	}
}

func TestDefaultKeyer(t *testing.T) {
	k := NewDefaultKeyer()

	k1 := k.DiagramKey("digraph { a }", DiagramKeyOpts{Format: "svg"})
	k2 := k.DiagramKey("digraph { a }", DiagramKeyOpts{Format: "svg"})
	if k1 != k2 {
		t.Error("DiagramKey should be deterministic")
	}
	if !strings.HasPrefix(k1, "diagram:") {
		t.Errorf("DiagramKey = %q, want diagram: prefix", k1)
	}
	if k1 == k.DiagramKey("digraph { b }", DiagramKeyOpts{Format: "svg"}) {
		t.Error("Different DOT should produce different keys")
	}
	if k1 == k.DiagramKey("digraph { a }", DiagramKeyOpts{Format: "dot"}) {
		t.Error("Different DiagramKeyOpts should produce different keys")
	}
	if want := "diagram:svg:" + Hash([]byte("digraph { a }")); k1 != want {
		t.Errorf("DiagramKey = %q, want %q", k1, want)
	}
	if got := k.DiagramKey("digraph { a }", DiagramKeyOpts{}); got != k1 {
		t.Errorf("empty format key = %q, want the svg key %q", got, k1)
	}
}

func TestScopedKeyer(t *testing.T) {
	inner := NewDefaultKeyer()
	scoped := NewScopedKeyer(inner, "v1.0.0:")

	got := scoped.DiagramKey("digraph {}", DiagramKeyOpts{})
	want := "v1.0.0:" + inner.DiagramKey("digraph {}", DiagramKeyOpts{})
	if got != want {
		t.Errorf("ScopedKeyer DiagramKey = %q, want %q", got, want)
	}

	nilInner := NewScopedKeyer(nil, "p:")
	if !strings.HasPrefix(nilInner.DiagramKey("x", DiagramKeyOpts{}), "p:diagram:") {
		t.Error("ScopedKeyer with nil inner should use DefaultKeyer")
	}
}
