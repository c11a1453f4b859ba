package dirstat

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (relative path -> content) below root.
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()

	for name, content := range files {
		fullPath := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(fullPath), 0o755))
		require.NoError(t, os.WriteFile(fullPath, []byte(content), 0o644))
	}
}

func run(t *testing.T, opt Options) *Stats {
	t.Helper()

	stats, err := Run(context.Background(), opt, nil)
	require.NoError(t, err)
	require.NotNil(t, stats)

	return stats
}

func sortedEntries(table *ExtensionTable) []ExtensionEntry {
	entries := table.Entries()
	slices.SortFunc(entries, func(a, b ExtensionEntry) int { return strings.Compare(a.Key, b.Key) })

	return entries
}

func TestRun_CountsFilesLinesAndExtensions(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.txt": "one\ntwo\nthree\n",
		"b.txt": "1\n2\n3\n4\n5\n",
		"c.md":  "",
	})

	stats := run(t, Options{Path: root})

	assert.Equal(t, int64(3), stats.Project.FileCount)
	assert.Equal(t, int64(1), stats.Project.DirCount)
	assert.Equal(t, int64(8), stats.Project.Totals.Lines)
	assert.Equal(t, int64(24), stats.Project.Totals.Bytes)
	assert.Equal(t, stats.Project.Totals.Bytes, stats.Project.Totals.Chars)
	assert.Equal(t, int64(2), stats.Extensions.Count("txt"))
	assert.Equal(t, int64(1), stats.Extensions.Count("md"))
	assert.Equal(t, 2, stats.Extensions.Len())

	ranked := Rank(stats.Extensions.Entries(), SortSpec{})
	assert.Equal(t, []string{"txt", "md"}, keys(ranked))
}

func TestRun_ExcludesDirectoriesEntirely(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"project/node_modules/pkg/index.js":     "module.exports = {}\n",
		"project/node_modules/pkg/lib/util.js":  "x\n",
		"project/src/main.js":                   "console.log(1)\n",
		"project/node_modules/.bin/README.md":   "",
		"project/node_modules/pkg/package.json": "{}",
	})

	stats := run(t, Options{Path: root, Excludes: []string{"node_modules"}})

	assert.Equal(t, int64(1), stats.Project.FileCount)
	assert.Equal(t, int64(1), stats.Extensions.Count("js"))
	// root, project and src
	assert.Equal(t, int64(3), stats.Project.DirCount)
}

func TestRun_ExcludesFiles(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"main.go":      "package main\n",
		"main_test.go": "package main\n",
		"go.sum":       "",
	})

	stats := run(t, Options{Path: root, Excludes: []string{"_test.go", ".sum"}})

	assert.Equal(t, int64(1), stats.Project.FileCount)
	assert.Equal(t, []ExtensionEntry{{Key: "go", Count: 1}}, stats.Extensions.Entries())
}

func TestRun_ExcludedRoot(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a\n"})

	stats := run(t, Options{Path: root, Excludes: []string{filepath.Base(root)}})

	assert.Zero(t, stats.Project)
	assert.Zero(t, stats.Extensions.Len())
}

func TestRun_MissingRoot(t *testing.T) {
	stats := run(t, Options{Path: filepath.Join(t.TempDir(), "does-not-exist")})

	assert.Zero(t, stats.Project)
	assert.Zero(t, stats.Extensions.Len())
	assert.Equal(t, int64(1), stats.ErrorCount)
}

func TestRun_RootIsFile(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"notes.txt": "a\nb\n"})

	stats := run(t, Options{Path: filepath.Join(root, "notes.txt")})

	assert.Equal(t, int64(1), stats.Project.FileCount)
	assert.Zero(t, stats.Project.DirCount)
	assert.Equal(t, int64(2), stats.Project.Totals.Lines)
	assert.Equal(t, int64(1), stats.Extensions.Count("txt"))
}

func TestRun_NestedDirectoriesAndNoExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Makefile":         "all:\n",
		".env":             "A=1\n",
		"a/b/c/deep.go":    "package c\n",
		"a/b/readme.":      "",
		"a/archive.tar.gz": "",
	})
	require.NoError(t, os.MkdirAll(filepath.Join(root, "empty"), 0o755))

	stats := run(t, Options{Path: root})

	assert.Equal(t, int64(5), stats.Project.FileCount)
	// root, a, a/b, a/b/c, empty
	assert.Equal(t, int64(5), stats.Project.DirCount)
	assert.Equal(t, []ExtensionEntry{
		{Key: "", Count: 1},
		{Key: "go", Count: 1},
		{Key: "gz", Count: 1},
		{Key: NoExtension, Count: 2},
	}, sortedEntries(stats.Extensions))
}

func TestRun_IgnoresSymlinks(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"src/a.go": "package a\n"})

	require.NoError(t, os.Symlink(filepath.Join(root, "src", "a.go"), filepath.Join(root, "link.go")))
	require.NoError(t, os.Symlink(root, filepath.Join(root, "src", "loop")))
	require.NoError(t, os.Symlink(filepath.Join(root, "missing"), filepath.Join(root, "dangling")))

	stats := run(t, Options{Path: root})

	assert.Equal(t, int64(1), stats.Project.FileCount)
	assert.Equal(t, int64(2), stats.Project.DirCount)
}

func TestRun_FileCountMatchesExtensionTotal(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a.go":        "",
		"b.go":        "",
		"c/d.rs":      "",
		"c/e/f":       "",
		"c/e/.hidden": "",
		"g.tar.gz":    "",
	})

	stats := run(t, Options{Path: root})

	assert.Equal(t, int64(6), stats.Project.FileCount)
	assert.Equal(t, stats.Project.FileCount, stats.Extensions.Total())
}

func TestRun_CountsUnreadableFiles(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced for root")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"open.go":   "package a\n",
		"locked.go": "package b\n",
	})

	require.NoError(t, os.Chmod(filepath.Join(root, "locked.go"), 0))

	stats := run(t, Options{Path: root})

	assert.Equal(t, int64(2), stats.Project.FileCount)
	assert.Equal(t, int64(2), stats.Extensions.Count("go"))
	assert.Equal(t, stats.Project.FileCount, stats.Extensions.Total())
	assert.Equal(t, int64(1), stats.ErrorCount)
	assert.Equal(t, int64(10), stats.Project.Totals.Bytes)
	assert.Equal(t, int64(1), stats.Project.Totals.Lines)
}

func TestRun_Idempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"x/1.c":   "int main(){}\n",
		"x/2.h":   "\n\n",
		"y/3.c":   "",
		"y/z/4.c": "abc",
	})

	first := run(t, Options{Path: root})
	second := run(t, Options{Path: root})

	assert.Equal(t, first.Project, second.Project)
	assert.Equal(t, sortedEntries(first.Extensions), sortedEntries(second.Extensions))
}

func TestRun_DefaultsToCurrentDirectory(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a\n"})

	t.Chdir(root)

	stats := run(t, Options{})

	assert.Equal(t, int64(1), stats.Project.FileCount)
	assert.Equal(t, ".", stats.Root)
}

func TestRun_RelativeRootIgnoresAncestors(t *testing.T) {
	base := t.TempDir()
	project := filepath.Join(base, "build", "proj")
	writeTree(t, project, map[string]string{
		"src/main.go":   "package main\n",
		"build/out.o":   "",
		"tmp/cache.bin": "",
	})

	t.Chdir(project)

	tests := []struct {
		path  string
		files int64
		dirs  int64
	}{
		{".", 1, 2},
		{"src", 1, 1},
		{"./src/", 1, 1},
	}

	for _, tt := range tests {
		stats := run(t, Options{Path: tt.path, Excludes: []string{"build", "tmp"}})

		assert.Equal(t, tt.files, stats.Project.FileCount, tt.path)
		assert.Equal(t, tt.dirs, stats.Project.DirCount, tt.path)
		assert.Equal(t, int64(1), stats.Extensions.Count("go"), tt.path)
		assert.False(t, filepath.IsAbs(stats.Root), tt.path)
	}
}

func TestRun_ReportsProgress(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a.txt": "a\n"})

	// The hook may or may not fire on such a small tree; it must not break the walk.
	stats, err := Run(context.Background(), Options{Path: root, ProgressInterval: 1}, func(int64, int64) {})
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.Project.FileCount)
}

func TestRun_Cancelled(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"a/b.txt": "b\n", "c.txt": "c\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{Path: root}, nil)
	assert.Error(t, err)
}

func TestScan(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    FileStats
	}{
		{"empty", "", FileStats{}},
		{"no trailing newline", "a\nb", FileStats{Bytes: 3, Lines: 1, Chars: 3}},
		{"only newlines", "\n\n\n", FileStats{Bytes: 3, Lines: 3, Chars: 3}},
		{"crlf", "a\r\nb\r\n", FileStats{Bytes: 6, Lines: 2, Chars: 6}},
		{"multibyte counted as bytes", "é\n", FileStats{Bytes: 3, Lines: 1, Chars: 3}},
		{"larger than buffer", strings.Repeat("x\n", scanBufferSize), FileStats{
			Bytes: 2 * scanBufferSize, Lines: scanBufferSize, Chars: 2 * scanBufferSize,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scan(strings.NewReader(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestScan_KeepsCountsOnError(t *testing.T) {
	errBoom := errors.New("boom")

	got, err := scan(io.MultiReader(strings.NewReader("ab\n"), iotest.ErrReader(errBoom)))

	require.ErrorIs(t, err, errBoom)
	assert.Equal(t, FileStats{Bytes: 3, Lines: 1, Chars: 3}, got)
}

func TestScanFile_Missing(t *testing.T) {
	_, err := ScanFile(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestFileStats_Add(t *testing.T) {
	s := FileStats{Bytes: 1, Lines: 2, Chars: 3}
	s.Add(FileStats{Bytes: 10, Lines: 20, Chars: 30})

	assert.Equal(t, FileStats{Bytes: 11, Lines: 22, Chars: 33}, s)
}
