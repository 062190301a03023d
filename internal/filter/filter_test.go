package filter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/halvard/ffind/internal/walker"
)

// entryAt walks root and returns the entry with the given relative path.
func entryAt(t *testing.T, root, path string) *walker.Entry {
	t.Helper()
	w := walker.New(walker.WithHidden(true))
	require.NoError(t, w.Start(root))
	defer w.Close()
	for w.Next() {
		if w.Entry().Path == path {
			return w.Entry()
		}
	}
	t.Fatalf("entry %q not found", path)
	return nil
}

func TestEmptyFilterMatchesEverything(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "f"), nil, 0o644))

	f := New()
	require.True(t, f.Empty())
	require.True(t, f.Matches(entryAt(t, root, "f")))
}

func TestTypeFilter(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "file.txt"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))

	f := New()
	require.NoError(t, f.AddType("f"))
	require.True(t, f.Matches(entryAt(t, root, "file.txt")))
	require.False(t, f.Matches(entryAt(t, root, "dir")))

	// Letters are alternatives: f or d matches both.
	require.NoError(t, f.AddType("d"))
	require.True(t, f.Matches(entryAt(t, root, "dir")))
}

func TestExecutableType(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "script"), []byte("#!/bin/sh\n"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "plain"), []byte("x"), 0o644))

	f := New()
	require.NoError(t, f.AddType("x"))
	require.True(t, f.Matches(entryAt(t, root, "script")))
	require.False(t, f.Matches(entryAt(t, root, "plain")))
}

func TestEmptyType(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "empty"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "full"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "emptydir"), 0o755))

	f := New()
	require.NoError(t, f.AddType("e"))
	require.True(t, f.Matches(entryAt(t, root, "empty")))
	require.False(t, f.Matches(entryAt(t, root, "full")))
	require.True(t, f.Matches(entryAt(t, root, "emptydir")))
}

func TestSizeFilter(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "small"), make([]byte, 10), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "big"), make([]byte, 2000), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))

	f := New()
	require.NoError(t, f.AddSize("+1k"))
	require.False(t, f.Matches(entryAt(t, root, "small")))
	require.True(t, f.Matches(entryAt(t, root, "big")))
	// Size filters apply to regular files only; non-files never match.
	require.False(t, f.Matches(entryAt(t, root, "dir")))

	// Constraints are conjunctive.
	require.NoError(t, f.AddSize("-1500"))
	require.False(t, f.Matches(entryAt(t, root, "big")))
}

func TestTimeFilter(t *testing.T) {
	root := t.TempDir()
	old := filepath.Join(root, "old")
	fresh := filepath.Join(root, "fresh")
	require.NoError(t, os.WriteFile(old, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(fresh, []byte("x"), 0o644))
	stale := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(old, stale, stale))
	require.NoError(t, os.Mkdir(filepath.Join(root, "dir"), 0o755))

	within := New()
	require.NoError(t, within.SetChangedWithin("1d", time.Now()))
	require.True(t, within.Matches(entryAt(t, root, "fresh")))
	require.False(t, within.Matches(entryAt(t, root, "old")))
	require.False(t, within.Matches(entryAt(t, root, "dir")))

	before := New()
	require.NoError(t, before.SetChangedBefore("1d", time.Now()))
	require.False(t, before.Matches(entryAt(t, root, "fresh")))
	require.True(t, before.Matches(entryAt(t, root, "old")))
}

func TestMetadataFailureIsNoMatch(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "gone"), []byte("x"), 0o644))

	e := entryAt(t, root, "gone")
	require.NoError(t, os.Remove(filepath.Join(root, "gone")))

	f := New()
	require.NoError(t, f.AddSize("+0"))
	require.False(t, f.Matches(e))
}
