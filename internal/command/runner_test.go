package command

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRunnerValidation(t *testing.T) {
	_, err := NewRunner(nil, 2, nil)
	require.Error(t, err)

	r, err := NewRunner([]string{"true"}, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 1, r.workers, "worker count must be clamped to at least 1")
}

func TestRunnerExecutesPerResult(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test shells out to touch")
	}
	dir := t.TempDir()

	// The placeholder receives each submitted path.
	r, err := NewRunner([]string{"touch", filepath.Join(dir, "{/}")}, 3, nil)
	require.NoError(t, err)
	r.Start(context.Background())
	for _, name := range []string{"a", "b", "c"} {
		r.Submit("some/dir/" + name)
	}
	require.NoError(t, r.Wait())

	for _, name := range []string{"a", "b", "c"} {
		_, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, "expected %s to have been touched", name)
	}
}

func TestRunnerAppendsPathWithoutPlaceholder(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test shells out to touch")
	}
	dir := t.TempDir()

	r, err := NewRunner([]string{"touch"}, 1, nil)
	require.NoError(t, err)
	r.Start(context.Background())
	r.Submit(filepath.Join(dir, "appended"))
	require.NoError(t, r.Wait())

	_, err = os.Stat(filepath.Join(dir, "appended"))
	require.NoError(t, err)
}

func TestRunnerReportsFailures(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("test shells out to false")
	}
	r, err := NewRunner([]string{"false"}, 2, nil)
	require.NoError(t, err)
	r.Start(context.Background())
	r.Submit("x")
	r.Submit("y")
	require.Error(t, r.Wait())
}
