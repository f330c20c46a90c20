package util
import (
	"strings"
)

// PrepareFilename strips any directory components from a filename that
// came out of an untrusted payload, so it can never escape the
// destination directory.
func PrepareFilename( filename string ) string {
	parts := strings.Split( filename, "/" )
	part := parts[ len(parts) - 1 ]
	parts = strings.Split( part, "\\" )
	part = parts[ len(parts) - 1 ]
	if part == "" || part == "." || part == ".." {
		return GenFilename( "extracted", "bin" )
	}
	return part
}
