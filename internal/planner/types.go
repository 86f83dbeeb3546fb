package planner

// Action describes the per-file conversion decision.
type Action int

const (
	ActionUnsupported   Action = iota // Extension not handled; skipped.
	ActionAlreadyTarget               // Already a .jxl; skipped.
	ActionDirect                      // One cjxl pass straight from the source.
	ActionTwoStage                    // Probe, dwebp to an intermediate, then cjxl.
)

// String returns the log label for a.
func (a Action) String() string {
	switch a {
	case ActionDirect:
		return "direct"
	case ActionTwoStage:
		return "two-stage"
	case ActionAlreadyTarget:
		return "already-target"
	default:
		return "unsupported"
	}
}

// Converts reports whether files with this action go through the encoder and
// therefore count toward the before/after totals.
func (a Action) Converts() bool {
	return a == ActionDirect || a == ActionTwoStage
}

// Options is the immutable conversion policy for a run. It is built once from
// the parsed flags and passed by value into every pipeline invocation.
type Options struct {
	DeleteOriginals bool
	LossyJPEG       bool
	LossyWebP       bool
}

// Plan holds the classification of a single file.
type Plan struct {
	Action Action

	// Lossless is the encoder mode for ActionDirect. For ActionTwoStage it is
	// decided after probing; see [ReencodeLossless].
	Lossless bool

	SkipReason string
}
