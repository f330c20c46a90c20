package img
import (
	"fmt"
	"bytes"
	"image"
	"image/draw"

	"stegimg/stego"
)

/*
 * package img binds the codec to concrete carrier formats. Hide and
 * Reveal sniff the format from magic bytes and dispatch; per-format
 * functions are exported for callers that already know what they hold.
 */

var (
	gifMagic = []byte{0x47, 0x49, 0x46}
	pngMagic = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
	bmpMagic = []byte{0x42, 0x4d}
)

func Hide( decoy, data []byte, cfg stego.Config ) ([]byte, error) {
	switch {
	case bytes.HasPrefix( decoy, gifMagic ):
		return HideInGif( decoy, data, cfg )
	case bytes.HasPrefix( decoy, pngMagic ):
		return HideInPNG( decoy, data, cfg )
	case bytes.HasPrefix( decoy, jpegMagic ):
		return HideInJpeg( decoy, data, cfg )
	case bytes.HasPrefix( decoy, bmpMagic ):
		return HideInBMP( decoy, data, cfg )
	}
	return nil, fmt.Errorf("%w: unknown magic bytes", stego.ErrUnsupportedFormat)
}

func Reveal( decoy []byte, cfg stego.Config ) ([]byte, error) {
	switch {
	case bytes.HasPrefix( decoy, gifMagic ):
		return RevealFromGif( decoy, cfg )
	case bytes.HasPrefix( decoy, pngMagic ):
		return RevealFromPNG( decoy, cfg )
	case bytes.HasPrefix( decoy, jpegMagic ):
		return RevealFromJpeg( decoy, cfg )
	case bytes.HasPrefix( decoy, bmpMagic ):
		return RevealFromBMP( decoy, cfg )
	}
	return nil, fmt.Errorf("%w: unknown magic bytes", stego.ErrUnsupportedFormat)
}

// Format names the carrier format of the given bytes, or "" when it is
// not one we support.
func Format( decoy []byte ) string {
	switch {
	case bytes.HasPrefix( decoy, gifMagic ):
		return "gif"
	case bytes.HasPrefix( decoy, pngMagic ):
		return "png"
	case bytes.HasPrefix( decoy, jpegMagic ):
		return "jpeg"
	case bytes.HasPrefix( decoy, bmpMagic ):
		return "bmp"
	}
	return ""
}

// toNRGBA redraws the decoded image into a fresh buffer. The source
// image is left untouched, which gives Hide its copy-on-write contract.
func toNRGBA( src image.Image ) *image.NRGBA {
	bounds := src.Bounds()
	dst := image.NewNRGBA( image.Rect( 0, 0, bounds.Dx(), bounds.Dy() ) )
	draw.Draw( dst, dst.Bounds(), src, bounds.Min, draw.Src )
	return dst
}
