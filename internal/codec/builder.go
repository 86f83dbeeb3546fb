package codec

// Encoder distance values: 0 is mathematically lossless, 1 is visually
// lossless lossy.
const (
	DistanceLossless = "0"
	DistanceLossy    = "1"
)

// EncodeArgs returns the cjxl argument slice (without the program name):
//
//	cjxl <in> <out> -d 0|1
func EncodeArgs(in, out string, lossless bool) []string {
	distance := DistanceLossy
	if lossless {
		distance = DistanceLossless
	}
	return []string{in, out, "-d", distance}
}

// DecodeArgs returns the dwebp argument slice (without the program name):
//
//	dwebp <in> -o <out>
func DecodeArgs(in, out string) []string {
	return []string{in, "-o", out}
}

// ProbeArgs returns the webpinfo argument slice (without the program name).
func ProbeArgs(in string) []string {
	return []string{in}
}
