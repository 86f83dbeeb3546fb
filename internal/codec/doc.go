// Package codec wraps the external image tools: cjxl (encode to JPEG XL),
// dwebp (decode WebP to PNG), and webpinfo (lossless detection).
//
// Every call is synchronous. A conversion only counts as successful when the
// tool exits zero AND its expected output exists afterwards; exit status alone
// is not trusted. The gateway never deletes files.
//
// Split into builder.go (argument slices), executor.go (process execution),
// errors.go (failure kinds), and gateway.go (the three operations).
package codec
