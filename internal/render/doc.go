// Package render draws percentage bars colored along a fixed gradient.
package render
