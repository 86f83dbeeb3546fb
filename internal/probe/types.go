package probe

import "strconv"

// LosslessMarker is the substring of a webpinfo report that identifies a
// losslessly (VP8L) encoded WebP.
const LosslessMarker = "Format: Lossless"

// Report is the parsed text output of one webpinfo call.
type Report struct {
	Format   string // First "Format:" value, e.g. "Lossless (2)" or "Lossy (1)".
	Lossless bool   // Report contains LosslessMarker.
	Animated bool   // "Animation: 1" seen in the VP8X header.
	Width    int    // First "Width:" value, 0 when absent.
	Height   int    // First "Height:" value, 0 when absent.
}

// Kind returns "lossless" or "lossy" for log lines.
func (r *Report) Kind() string {
	if r.Lossless {
		return "lossless"
	}
	return "lossy"
}

// Resolution returns "WxH", or "unknown" when either dimension is missing.
func (r *Report) Resolution() string {
	if r.Width <= 0 || r.Height <= 0 {
		return "unknown"
	}
	return strconv.Itoa(r.Width) + "x" + strconv.Itoa(r.Height)
}
