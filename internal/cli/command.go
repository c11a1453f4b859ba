package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/pflag"

	"github.com/idelchi/projstat/internal/dirstat"
	"github.com/idelchi/projstat/internal/render"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

func help(fs *pflag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, heredoc.Doc(`
		projstat reports file, folder, size, line and character counts for a
		directory tree, and how its files are distributed across extensions.

		Usage:

			projstat [flags] [path]

		Positional Arguments:
		  path                   Directory to analyze. Defaults to the current directory.

		Exclusions:
		  --exclude takes a plain substring, not a glob or regex. Any path containing
		  it is skipped, and an excluded directory is not descended into.
		  At most 100 patterns are honored.

		Unknown flags are ignored.

		Flags:
	`))
	fs.SetOutput(w)
	fs.PrintDefaults()
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute() error {
	return c.run(os.Args[1:], os.Stdout, os.Stderr)
}

func (c CLI) run(args []string, stdout, stderr io.Writer) error {
	var options dirstat.Options

	fs := pflag.NewFlagSet("projstat", pflag.ContinueOnError)

	fs.StringArrayVarP(&options.Excludes, "exclude", "e", nil, "Substring pattern to exclude (repeatable)")
	fs.BoolVar(&options.NoColor, "no-color", false, "Disable all colors")
	fs.BoolVar(&options.ASCII, "toggle-ascii", false, "Draw bars with '#' and '-' instead of block glyphs")
	fs.BoolVar(&options.OnlyBarColor, "only-bar-color", false, "Color only the filled part of the bars")
	registerSortFlags(fs, &options.Sort.Order)
	fs.BoolVar(&options.Sort.CaseSensitive, "case-sensitive", false, "Compare extension names case-sensitively")
	fs.IntVar(&options.BarWidth, "width", render.DefaultBarWidth, "Width of the percentage bars")
	fs.BoolVar(&options.Debug, "debug", false, "Enable debug output")
	fs.BoolVarP(&options.Version, "version", "v", false, "Show version and exit")
	fs.BoolP("help", "h", false, "Show this help and exit")

	fs.SortFlags = false
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	if wantsHelp(args) {
		help(fs, stdout)

		return nil
	}

	parseErr := fs.Parse(knownArgs(fs, args))

	options.Logger = newLogger(options.Debug, stderr)

	if parseErr != nil {
		options.Logger.Debug("ignoring malformed flags", "error", parseErr)
	}

	if options.Version {
		fmt.Fprintln(stdout, c.version)

		return nil
	}

	if os.Getenv("NO_COLOR") != "" {
		options.NoColor = true
	}

	if fs.NArg() == 0 {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}

		options.Path = wd
	} else {
		options.Path = fs.Arg(fs.NArg() - 1)
	}

	return logic(options, stdout, stderr)
}

// wantsHelp reports whether any argument before "--" asks for help,
// in any letter case.
func wantsHelp(args []string) bool {
	for _, arg := range args {
		if arg == "--" {
			return false
		}

		if strings.EqualFold(arg, "-h") || strings.EqualFold(arg, "--help") {
			return true
		}
	}

	return false
}

// knownArgs drops flags fs does not define, so that they are ignored instead
// of failing the parse. Values following an unknown flag are kept as arguments.
// The argument after a known flag that takes a value is always kept, even when
// it looks like a flag.
func knownArgs(fs *pflag.FlagSet, args []string) []string {
	out := make([]string, 0, len(args))
	value := false

	for i, arg := range args {
		if value {
			out = append(out, arg)
			value = false

			continue
		}

		if arg == "--" {
			return append(out, args[i:]...)
		}

		switch {
		case len(arg) < 2 || arg[0] != '-':
		case strings.HasPrefix(arg, "--"):
			name, _, inline := strings.Cut(arg[2:], "=")

			flag := fs.Lookup(name)
			if flag == nil {
				continue
			}

			value = !inline && flag.NoOptDefVal == ""
		default:
			if fs.ShorthandLookup(arg[1:2]) == nil {
				continue
			}

			value = shorthandWantsValue(fs, arg[1:])
		}

		out = append(out, arg)
	}

	return out
}

// shorthandWantsValue reports whether a group of shorthand flags such as "-ve"
// ends in a flag whose value is the next argument.
func shorthandWantsValue(fs *pflag.FlagSet, group string) bool {
	for i := range len(group) {
		flag := fs.ShorthandLookup(group[i : i+1])
		if flag == nil {
			return false
		}

		if flag.NoOptDefVal == "" {
			return i == len(group)-1
		}
	}

	return false
}
