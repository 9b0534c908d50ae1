package vtc

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vtcfg/vtc/internal/vtcerr"
)

func TestLoadAndGetString(t *testing.T) {
	rt := New()
	if err := rt.Load(`@a: $greeting := "hello"`); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	s, err := rt.GetString("a", "greeting")
	if err != nil {
		t.Fatalf("GetString failed: %v", err)
	}
	if s != "hello" {
		t.Errorf("got %q", s)
	}
}

func TestLoadFailureLeavesStoreUntouched(t *testing.T) {
	rt := New()
	if err := rt.Load(`@a: $x := 1`); err != nil {
		t.Fatalf("first Load failed: %v", err)
	}
	if err := rt.Load(`@a: $x := `); err == nil {
		t.Fatalf("expected the second, truncated Load to fail")
	}
	v, err := rt.GetInteger("a", "x")
	if err != nil {
		t.Fatalf("expected the first Load's binding to survive, got error: %v", err)
	}
	if v != 1 {
		t.Errorf("expected a.x to remain 1, got %d", v)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.vtc")
	if err := os.WriteFile(path, []byte(`@a: $x := 7`), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	rt := New()
	if err := rt.LoadFile(path); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	v, err := rt.GetInteger("a", "x")
	if err != nil || v != 7 {
		t.Errorf("got %d, %v", v, err)
	}
}

func TestLoadFileMissingIsIoError(t *testing.T) {
	rt := New()
	err := rt.LoadFile("/does/not/exist.vtc")
	if _, ok := err.(*vtcerr.IoError); !ok {
		t.Fatalf("expected *vtcerr.IoError for a missing file, got %T: %v", err, err)
	}
}

func TestWithIntrinsicRegistersHostHandler(t *testing.T) {
	rt := New(WithIntrinsic("host_double", func(args []Value) (Value, error) {
		n, _ := args[0].AsInteger()
		return Integer(n * 2), nil
	}))
	if err := rt.Load(`@a: $x := [host_double!!, 21]`); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	v, err := rt.GetInteger("a", "x")
	if err != nil {
		t.Fatalf("GetInteger failed: %v", err)
	}
	if v != 42 {
		t.Errorf("got %d", v)
	}
}

func TestWithNoStdlibRejectsStandardIntrinsics(t *testing.T) {
	rt := New(WithNoStdlib())
	if err := rt.Load(`@a: $x := [std_add_int!!, 1, 2]`); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	_, err := rt.GetInteger("a", "x")
	if _, ok := err.(*vtcerr.UnknownIntrinsic); !ok {
		t.Fatalf("expected *vtcerr.UnknownIntrinsic for a call with no registered handler, got %T: %v", err, err)
	}
}

func TestWithTraceFiresOnReferenceHops(t *testing.T) {
	var hops int
	rt := New(WithTrace(func(ns, variable string, depth int) { hops++ }))
	if err := rt.Load(`
@a:
	$x := %y
	$y := 1
`); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if _, err := rt.GetInteger("a", "x"); err != nil {
		t.Fatalf("GetInteger failed: %v", err)
	}
	if hops != 1 {
		t.Errorf("expected 1 trace hop, got %d", hops)
	}
}

func TestLoadFileCachedTracksChanges(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.vtc")
	dbPath := filepath.Join(dir, "cache.db")

	if err := os.WriteFile(path, []byte(`@a: $x := 1`), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	rt := New(WithSQLiteCache(dbPath))
	defer rt.Close()

	if err := rt.LoadFileCached(path); err != nil {
		t.Fatalf("first LoadFileCached failed: %v", err)
	}
	if err := rt.LoadFileCached(path); err != nil {
		t.Fatalf("second LoadFileCached (unchanged) failed: %v", err)
	}

	if err := os.WriteFile(path, []byte(`@a: $x := 2`), 0o644); err != nil {
		t.Fatalf("failed to rewrite test file: %v", err)
	}
	if err := rt.LoadFileCached(path); err != nil {
		t.Fatalf("third LoadFileCached (changed) failed: %v", err)
	}

	v, err := rt.GetInteger("a", "x")
	if err != nil || v != 2 {
		t.Errorf("expected the latest content to win, got %d, %v", v, err)
	}
}
