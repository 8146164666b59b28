// Package sanitize provides Text filters backed by bluemonday policies, for
// use with goform.WithTextFilter.
//
//	form, err := goform.NewForm(root, goform.WithTextFilter(sanitize.Strict()))
package sanitize

import "github.com/microcosm-cc/bluemonday"

// Strict removes all markup and escapes what is left.
func Strict() func(string) string {
	return Policy(bluemonday.StrictPolicy())
}

// UGC keeps the formatting subset suitable for user generated content.
func UGC() func(string) string {
	return Policy(bluemonday.UGCPolicy())
}

// Policy adapts any bluemonday policy. Policies are safe for concurrent use
// once configured.
func Policy(p *bluemonday.Policy) func(string) string {
	return p.Sanitize
}
