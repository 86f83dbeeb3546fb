package naming

import (
	"path/filepath"
	"strings"
)

// DecodedExt is the extension of the intermediate raster written by the
// decoder in a two-stage conversion, without dot.
const DecodedExt = "png"

// TargetPath returns the encoder output path for in: the same directory and
// stem with the extension replaced by ".jxl".
//
//	/photos/a/photo.JPG → /photos/a/photo.jxl
func TargetPath(in string) string {
	return replaceExt(in, "jxl")
}

// DecodedPath returns the decoder output path for in: the same directory and
// stem with the extension replaced by ".png".
func DecodedPath(in string) string {
	return replaceExt(in, DecodedExt)
}

func replaceExt(in, ext string) string {
	return strings.TrimSuffix(in, filepath.Ext(in)) + "." + ext
}
