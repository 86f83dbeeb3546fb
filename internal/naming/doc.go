// Package naming derives the paths a conversion writes (the .jxl target and
// the decoded .png intermediate) and resolves in-run conflicts between
// sources that would write the same path.
package naming
