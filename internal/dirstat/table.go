package dirstat

import "strings"

// NoExtension is the key used for files without an extension.
const NoExtension = "no_ext"

// ExtensionEntry is a single extension and the number of files carrying it.
type ExtensionEntry struct {
	// Key is the extension without the leading dot, or NoExtension.
	Key string `json:"key"`
	// Count is the number of files with this extension.
	Count int64 `json:"count"`
}

// ExtensionTable counts files per extension key.
// Entries are kept in insertion order and never removed.
type ExtensionTable struct {
	entries []ExtensionEntry
	index   map[string]int
}

// NewExtensionTable returns an empty table.
func NewExtensionTable() *ExtensionTable {
	return &ExtensionTable{
		entries: make([]ExtensionEntry, 0, 8),
		index:   make(map[string]int),
	}
}

// ExtensionKey derives the extension key of a file name.
// The key is whatever follows the last dot, unless that dot is the first
// character of the name (".env") or there is no dot at all.
func ExtensionKey(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot <= 0 {
		return NoExtension
	}

	return name[dot+1:]
}

// Upsert inserts key with a count of one, or increments its count.
func (t *ExtensionTable) Upsert(key string) {
	if i, ok := t.index[key]; ok {
		t.entries[i].Count++

		return
	}

	t.index[key] = len(t.entries)
	t.entries = append(t.entries, ExtensionEntry{Key: key, Count: 1})
}

// Count returns the count recorded for key, or zero.
func (t *ExtensionTable) Count(key string) int64 {
	if i, ok := t.index[key]; ok {
		return t.entries[i].Count
	}

	return 0
}

// Len returns the number of distinct keys.
func (t *ExtensionTable) Len() int {
	return len(t.entries)
}

// Total returns the sum of all counts.
func (t *ExtensionTable) Total() int64 {
	var total int64
	for _, e := range t.entries {
		total += e.Count
	}

	return total
}

// Entries returns a copy of the entries in insertion order.
func (t *ExtensionTable) Entries() []ExtensionEntry {
	out := make([]ExtensionEntry, len(t.entries))
	copy(out, t.entries)

	return out
}
