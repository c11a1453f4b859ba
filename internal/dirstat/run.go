package dirstat

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/charlievieth/fastwalk"
	"github.com/dustin/go-humanize"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(ctx context.Context, c *collector, hook func(int64, int64), interval time.Duration) {
	if hook == nil {
		return
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ticker := time.NewTicker(interval)

	go func() {
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Run walks the tree at opt.Path and returns file, directory, content and
// per-extension counts.
//
// Paths containing any of opt.Excludes are skipped; an excluded directory is
// not descended into. Entries that cannot be read are skipped and counted in
// Stats.ErrorCount. A missing or unreadable root yields empty stats, not an error.
//
// The root is walked as given, relative or not, and an empty path means ".".
// Only regular files and directories are counted. The root itself is resolved
// through symlinks, entries below it are not.
//
// The walk can be cancelled via ctx. Progress updates are sent to
// progressHook if provided.
func Run(ctx context.Context, opt Options, progressHook func(int64, int64)) (*Stats, error) {
	log := opt.logger()

	if opt.Path == "" {
		opt.Path = "."
	}

	// Exclusions match against the path as given, never its ancestors.
	root := filepath.Clean(opt.Path)

	filter, dropped := NewExcludeFilter(opt.Excludes)
	if len(dropped) > 0 {
		log.Warn("too many exclusion patterns, ignoring the rest",
			"limit", MaxExcludes, "ignored", dropped)
	}

	log.Debug("starting analysis", "root", root, "excludes", filter.Patterns())

	collector := newCollector()

	// Create child context to ensure progress reporter cleanup
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)

	start := time.Now()

	if err := walk(ctx, root, filter, collector, opt); err != nil {
		return nil, err
	}

	stats := collector.finalize(root)
	stats.Elapsed = time.Since(start)

	log.Debug("analysis finished",
		"files", stats.Project.FileCount,
		"dirs", stats.Project.DirCount,
		"size", humanize.IBytes(uint64(stats.Project.Totals.Bytes)), //nolint:gosec // Bytes is never negative
		"errors", stats.ErrorCount,
		"elapsed", stats.Elapsed)

	return stats, nil
}

// walk handles the root and hands directories to fastwalk.
func walk(ctx context.Context, root string, filter ExcludeFilter, c *collector, opt Options) error {
	log := opt.logger()

	if pattern, ok := filter.Match(root); ok {
		log.Debug("excluding root", "path", root, "pattern", pattern)

		return nil
	}

	info, err := os.Stat(root)
	if err != nil {
		log.Debug("error accessing root", "path", root, "error", err)
		c.addError()

		return nil
	}

	switch {
	case info.Mode().IsRegular():
		c.addFile(info.Name(), scanFile(root, c, opt))

		return nil
	case !info.IsDir():
		return nil
	}

	c.addDir()

	// A single worker keeps callbacks serialized.
	conf := &fastwalk.Config{
		Follow:     false,
		NumWorkers: 1,
	}

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := fastwalk.Walk(conf, root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("error accessing path", "path", path, "error", err)
			c.addError()

			return nil // Silently skip errors
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path == root {
			return nil
		}

		if pattern, ok := filter.Match(path); ok {
			if d.IsDir() {
				log.Debug("excluding directory", "path", filepath.ToSlash(path), "pattern", pattern)

				return filepath.SkipDir
			}

			log.Debug("excluding file", "path", filepath.ToSlash(path), "pattern", pattern)

			return nil
		}

		switch {
		case d.IsDir():
			c.addDir()
		case d.Type().IsRegular():
			c.addFile(d.Name(), scanFile(path, c, opt))
		}

		return nil
	})
	if walkErr != nil {
		return walkErr
	}

	return nil
}

// scanFile counts the file's contents. A file that cannot be read still
// counts as a file, with whatever was read before the failure.
func scanFile(path string, c *collector, opt Options) FileStats {
	stats, err := ScanFile(path)
	if err != nil {
		opt.logger().Debug("error reading file", "path", path, "error", err)
		c.addError()
	}

	return stats
}
