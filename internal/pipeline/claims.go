package pipeline

import (
	"path/filepath"

	"github.com/backmassage/jxlmigrate/internal/naming"
	"github.com/backmassage/jxlmigrate/internal/planner"
)

// claimOutputs assigns every path a conversion will write to exactly one
// source, in discovery order, before any worker starts. Every supported
// source reserves its own path first so no other file's output or
// intermediate can land on it. Files that lose a claim get a Failed outcome
// keyed by path; everything else is free to run concurrently.
func claimOutputs(files []SourceFile, opts planner.Options) map[string]Outcome {
	claims := naming.NewClaims()
	for _, f := range files {
		if planner.IsSupported(f.Ext) {
			claims.Reserve(f.Path)
		}
	}

	conflicts := make(map[string]Outcome)
	for _, f := range files {
		plan := planner.Classify(f.Path, opts)

		var owner string
		var ok bool
		switch plan.Action {
		case planner.ActionDirect:
			owner, ok = claims.Claim(f.Path, naming.TargetPath(f.Path))
		case planner.ActionTwoStage:
			owner, ok = claims.ClaimAll(f.Path, naming.TargetPath(f.Path), naming.DecodedPath(f.Path))
		default:
			continue
		}
		if !ok {
			conflicts[f.Path] = failed(f, plan.Action, "output path claimed by "+filepath.Base(owner), nil)
		}
	}
	return conflicts
}
