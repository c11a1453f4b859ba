package dirstat

import (
	"log/slog"
	"sync"
	"time"
)

// FileStats holds content counts for one file, or a sum over many.
type FileStats struct {
	// Bytes is the number of bytes read.
	Bytes int64 `json:"bytes"`
	// Lines is the number of newline characters.
	Lines int64 `json:"lines"`
	// Chars is the number of characters. Bytes are not decoded, so it equals Bytes.
	Chars int64 `json:"chars"`
}

// Add folds other into s.
func (s *FileStats) Add(other FileStats) {
	s.Bytes += other.Bytes
	s.Lines += other.Lines
	s.Chars += other.Chars
}

// ProjectStats aggregates a whole traversal.
type ProjectStats struct {
	// FileCount is the number of regular files analyzed.
	FileCount int64 `json:"file_count"`
	// DirCount is the number of directories visited, the root included.
	DirCount int64 `json:"dir_count"`
	// Totals is the sum of all file stats.
	Totals FileStats `json:"totals"`
}

// Stats is the result of Run.
type Stats struct {
	// Root is the analyzed path.
	Root string `json:"root"`
	// Project holds the aggregate counts.
	Project ProjectStats `json:"project"`
	// Extensions counts files per extension key.
	Extensions *ExtensionTable `json:"-"`
	// ErrorCount is the number of entries that could not be read.
	ErrorCount int64 `json:"error_count"`
	// Elapsed is the total time taken for analysis.
	Elapsed time.Duration `json:"elapsed"`
}

// Options configures directory analysis and CLI behavior.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// Excludes contains literal substrings; matching paths are skipped.
	Excludes []string
	// Sort selects the ranking of extensions in the report.
	Sort SortSpec
	// NoColor disables all ANSI styling.
	NoColor bool
	// ASCII replaces block glyphs with '#' and '-'.
	ASCII bool
	// OnlyBarColor restricts styling to the filled part of the bar.
	OnlyBarColor bool
	// BarWidth is the number of cells in a percentage bar.
	BarWidth int
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
	// Version indicates whether to show version and exit.
	Version bool
	// Logger receives debug output. A nil Logger discards it.
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}

	return o.Logger
}

// collector aggregates statistics from walk callbacks. The mutex guards
// against the progress reporter reading while the walk writes.
type collector struct {
	mu         sync.Mutex
	project    ProjectStats
	table      *ExtensionTable
	errorCount int64
}

func newCollector() *collector {
	return &collector{table: NewExtensionTable()}
}

func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errorCount++
}

func (c *collector) addDir() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.project.DirCount++
}

// addFile records a regular file under its extension key.
func (c *collector) addFile(name string, stats FileStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.project.FileCount++
	c.project.Totals.Add(stats)
	c.table.Upsert(ExtensionKey(name))
}

// progress returns the running file count and byte total.
func (c *collector) progress() (int64, int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.project.FileCount, c.project.Totals.Bytes
}

func (c *collector) finalize(root string) *Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return &Stats{
		Root:       root,
		Project:    c.project,
		Extensions: c.table,
		ErrorCount: c.errorCount,
	}
}
