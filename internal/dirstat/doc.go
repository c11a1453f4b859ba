// Package dirstat provides directory statistics collection and ranking.
//
// It walks directory trees using fastwalk, counts files, directories,
// bytes, lines and characters, tallies files per extension and orders
// the extensions by count, name or natural order.
package dirstat
