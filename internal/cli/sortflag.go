package cli

import (
	"strconv"

	"github.com/spf13/pflag"

	"github.com/idelchi/projstat/internal/dirstat"
)

// sortFlag is a boolean flag that selects order into target when set to true.
// Several sortFlags share one target, so the last one given wins.
type sortFlag struct {
	target *dirstat.SortOrder
	order  dirstat.SortOrder
	set    bool
}

func (f *sortFlag) String() string {
	return strconv.FormatBool(f.set)
}

func (f *sortFlag) Set(s string) error {
	v, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}

	f.set = v
	if v {
		*f.target = f.order
	}

	return nil
}

func (f *sortFlag) Type() string {
	return "bool"
}

func (f *sortFlag) IsBoolFlag() bool {
	return true
}

// sortFlags lists the sort selectors in the order they appear in help output.
//
//nolint:gochecknoglobals // Config constant
var sortFlags = []struct {
	name  string
	order dirstat.SortOrder
	usage string
}{
	{"sort-descending", dirstat.SortCountDesc, "Sort by file count, highest first (default)"},
	{"sort-ascending", dirstat.SortCountAsc, "Sort by file count, lowest first"},
	{"sort-alpha-asc", dirstat.SortAlphaAsc, "Sort by extension name, A-Z"},
	{"sort-alpha-desc", dirstat.SortAlphaDesc, "Sort by extension name, Z-A (natural order)"},
	{"sort-num-asc", dirstat.SortNumericAsc, "Sort by file count, lowest first, ties by name"},
	{"sort-num-desc", dirstat.SortNumericDesc, "Sort by file count, highest first, ties by name reversed"},
	{"sort-natural-asc", dirstat.SortNaturalAsc, "Sort by extension name in natural order (2 before 10)"},
	{"sort-natural-desc", dirstat.SortNaturalDesc, "Sort by extension name in reverse natural order"},
}

func registerSortFlags(fs *pflag.FlagSet, target *dirstat.SortOrder) {
	for _, s := range sortFlags {
		fs.VarPF(&sortFlag{target: target, order: s.order}, s.name, "", s.usage).NoOptDefVal = "true"
	}
}
