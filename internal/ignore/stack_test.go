package ignore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTree creates files under root; a trailing '/' in the key makes a
// directory.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if name[len(name)-1] == '/' {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
}

func newTestStack(t *testing.T, opts ...Option) *Stack {
	t.Helper()
	// Keep the developer's real global ignore file out of tests.
	return NewStack(append([]Option{WithGlobalIgnore(false)}, opts...)...)
}

func TestPushPopLockstep(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"sub/": ""})

	s := newTestStack(t, WithRequireGit(false))
	require.Equal(t, 0, s.Depth())
	s.PushLevel(root, 0)
	s.PushLevel(filepath.Join(root, "sub"), len("sub"))
	require.Equal(t, 2, s.Depth())
	s.PopLevel()
	s.PopLevel()
	require.Equal(t, 0, s.Depth())
	s.PopLevel() // popping an empty stack is harmless
	require.Equal(t, 0, s.Depth())
}

func TestFdignoreOverridesRootGitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/":         "",
		".gitignore":    "build\n",
		"sub/.fdignore": "!build\n",
	})

	s := newTestStack(t)
	s.PushLevel(root, 0)
	require.True(t, s.IsIgnored("build", "build", true), "root gitignore should ignore build")

	s.PushLevel(filepath.Join(root, "sub"), len("sub"))
	require.False(t, s.IsIgnored("build", "sub/build", true),
		"deeper .fdignore negation must override the root gitignore")
}

func TestLeafGitignoreOverridesRootFdignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/":          "",
		".fdignore":      "!build\n",
		"sub/.gitignore": "build\n",
	})

	s := newTestStack(t)
	s.PushLevel(root, 0)
	s.PushLevel(filepath.Join(root, "sub"), len("sub"))
	require.True(t, s.IsIgnored("build", "sub/build", true),
		"deeper gitignore must override the root .fdignore negation")
}

func TestSourceOrderWithinOneLevel(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/":      "",
		".gitignore": "build\n",
		".fdignore":  "!build\n",
	})

	s := newTestStack(t)
	s.PushLevel(root, 0)
	require.False(t, s.IsIgnored("build", "build", true),
		".fdignore is consulted after .gitignore in the same directory")
}

func TestDotIgnoreBetweenGitignoreAndFdignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/":      "",
		".gitignore": "!out\n",
		".ignore":    "out\n",
	})

	s := newTestStack(t)
	s.PushLevel(root, 0)
	require.True(t, s.IsIgnored("out", "out", true),
		".ignore overrides .gitignore within a level")
}

func TestAnchoredPatternsUseLevelRelativePath(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"sub/.fdignore": "/gen\n",
		"sub/gen/":      "",
		"sub/deep/gen/": "",
	})

	s := newTestStack(t)
	s.PushLevel(root, 0)
	s.PushLevel(filepath.Join(root, "sub"), len("sub"))
	require.True(t, s.IsIgnored("gen", "sub/gen", true),
		"anchored rule matches its own directory's child")

	s.PushLevel(filepath.Join(root, "sub", "deep"), len("sub/deep"))
	require.False(t, s.IsIgnored("gen", "sub/deep/gen", true),
		"anchored rule must not match the same name deeper down")
}

func TestGlobalIgnoreIsFinal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/":      "",
		".gitignore": "build\n!node_modules\n",
	})
	globalPath := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(globalPath, []byte("!build\nnode_modules\n"), 0o644))

	s := NewStack(WithGlobalPath(globalPath))
	s.PushLevel(root, 0)

	require.False(t, s.IsIgnored("build", "build", true),
		"global negation must override the level verdict")
	require.True(t, s.IsIgnored("node_modules", "node_modules", true),
		"global ignore must override the level negation")
}

func TestRequireGit(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{".gitignore": "build\n"})

	s := newTestStack(t) // requireGit defaults to true
	s.PushLevel(root, 0)
	require.False(t, s.IsIgnored("build", "build", true),
		".gitignore outside a git repository must be inert")

	s = newTestStack(t, WithRequireGit(false))
	s.PushLevel(root, 0)
	require.True(t, s.IsIgnored("build", "build", true))
}

func TestGitFileCountsAsRepository(t *testing.T) {
	// Worktrees and submodules mark the repository with a .git file.
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git":       "gitdir: /elsewhere\n",
		".gitignore": "build\n",
	})

	s := newTestStack(t)
	s.PushLevel(root, 0)
	require.True(t, s.IsIgnored("build", "build", true))
}

func TestGitSubtreeReachesDescendants(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/":          "",
		"sub/.gitignore": "*.tmp\n",
	})

	s := newTestStack(t)
	s.PushLevel(root, 0)
	s.PushLevel(filepath.Join(root, "sub"), len("sub"))
	require.True(t, s.IsIgnored("x.tmp", "sub/x.tmp", false),
		"a .gitignore below the repository root must be honored")
}

func TestDisabledSources(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".git/":      "",
		".gitignore": "a\n",
		".ignore":    "b\n",
		".fdignore":  "c\n",
	})

	s := newTestStack(t, WithGitignore(false), WithDotIgnore(false), WithFdignore(false))
	s.PushLevel(root, 0)
	for _, name := range []string{"a", "b", "c"} {
		require.False(t, s.IsIgnored(name, name, false), "source for %q should be disabled", name)
	}
}

func TestIsExplicitlyIncluded(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".fdignore": "!.env\n",
	})

	s := newTestStack(t)
	s.PushLevel(root, 0)
	require.True(t, s.IsExplicitlyIncluded(".env", ".env", false),
		"negation anywhere in the stack must be visible")
	require.False(t, s.IsExplicitlyIncluded(".cache", ".cache", false))
	// Independent of the final IsIgnored verdict.
	require.False(t, s.IsIgnored(".env", ".env", false))
}

func TestIsExplicitlyIncludedFromGlobal(t *testing.T) {
	root := t.TempDir()
	globalPath := filepath.Join(t.TempDir(), "ignore")
	require.NoError(t, os.WriteFile(globalPath, []byte("!.config\n"), 0o644))

	s := NewStack(WithGlobalPath(globalPath))
	s.PushLevel(root, 0)
	require.True(t, s.IsExplicitlyIncluded(".config", ".config", true))
}

func TestMissingIgnoreFilesAreNoFile(t *testing.T) {
	root := t.TempDir()
	s := newTestStack(t, WithRequireGit(false))
	s.PushLevel(root, 0)
	require.False(t, s.IsIgnored("anything", "anything", false))
}
