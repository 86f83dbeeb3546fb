// Package planner classifies files by extension into a conversion plan
// (direct encode, two-stage decode+encode, already converted, unsupported)
// and holds the immutable per-run conversion options.
//
// It is pure: no filesystem access and no process execution.
package planner
