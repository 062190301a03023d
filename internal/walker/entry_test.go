package walker

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func findEntry(t *testing.T, root, path string, opts ...Option) *Entry {
	t.Helper()
	w := New(opts...)
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

func TestEntryStatCaches(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"f.txt": "hello"})

	e := findEntry(t, root, "f.txt")
	info, err := e.Stat()
	require.NoError(t, err)
	require.Equal(t, int64(5), info.Size())

	// Removing the file must not invalidate the cached metadata.
	require.NoError(t, os.Remove(filepath.Join(root, "f.txt")))
	again, err := e.Stat()
	require.NoError(t, err)
	require.Same(t, info, again)
}

func TestEntryStatFailure(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"gone.txt": ""})

	e := findEntry(t, root, "gone.txt")
	require.NoError(t, os.Remove(filepath.Join(root, "gone.txt")))
	_, err := e.Stat()
	require.Error(t, err)
	// The failure is cached too.
	_, err2 := e.Stat()
	require.Equal(t, err, err2)
}

func TestEntryIsEmpty(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"empty.txt": "",
		"full.txt":  "x",
		"emptydir/": "",
		"fulldir/f": "",
	})

	cases := []struct {
		path string
		want bool
	}{
		{"empty.txt", true},
		{"full.txt", false},
		{"emptydir", true},
		{"fulldir", false},
	}
	for _, tc := range cases {
		e := findEntry(t, root, tc.path)
		got, err := e.IsEmpty()
		require.NoError(t, err, tc.path)
		require.Equal(t, tc.want, got, tc.path)
	}
}

func TestEntryAbsPath(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"sub/f": ""})

	e := findEntry(t, root, "sub/f")
	resolved, err := filepath.EvalSymlinks(e.AbsPath())
	require.NoError(t, err)
	wantRoot, err := filepath.EvalSymlinks(root)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(wantRoot, "sub", "f"), resolved)
}

func TestEntryKinds(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"f": "", "d/": ""})

	require.Equal(t, KindFile, findEntry(t, root, "f").Kind)
	require.Equal(t, KindDir, findEntry(t, root, "d").Kind)
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{
		KindFile:        "f",
		KindDir:         "d",
		KindSymlink:     "l",
		KindSocket:      "s",
		KindPipe:        "p",
		KindBlockDevice: "b",
		KindCharDevice:  "c",
		KindOther:       "?",
	}
	for k, want := range cases {
		require.Equal(t, want, k.String())
	}
}
