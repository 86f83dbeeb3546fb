// Package probe runs webpinfo against a WebP source and parses its textual
// report. Only the lossless marker drives conversion policy; the remaining
// fields are informational.
package probe
