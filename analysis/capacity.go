package analysis
import (
	"fmt"
	"bytes"
	"image"
	"image/gif"
	"image/jpeg"
	"math/bits"

	_ "image/png"
	_ "golang.org/x/image/bmp"

	"lukechampine.com/jsteg"

	"stegimg/stego"
	"stegimg/stego/img"
)

/*
 * package analysis answers questions about carriers without touching
 * them: how much fits, how much an embedding distorted, whether the
 * low bits look tampered with.
 */

type CapacityReport struct {
	Format		string	`json:"format"`
	Width		int	`json:"width"`
	Height		int	`json:"height"`
	ChannelValues	int	`json:"channel_values"`
	CapacityBits	int	`json:"capacity_bits"`
	CapacityBytes	int	`json:"capacity_bytes"`	// after framing overhead
}

// Capacity reports how many payload bytes the given carrier holds
// under the given config.
func Capacity( decoy []byte, cfg stego.Config ) (*CapacityReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	report := &CapacityReport{ Format: img.Format( decoy ) }
	switch report.Format {
	case "png", "bmp":
		im, _, err := image.Decode( bytes.NewReader( decoy ) )
		if err != nil {
			return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
		}
		bounds := im.Bounds()
		report.Width = bounds.Dx()
		report.Height = bounds.Dy()
		report.ChannelValues = report.Width * report.Height * bits.OnesCount8( cfg.Channels )

	case "gif":
		g, err := gif.DecodeAll( bytes.NewReader( decoy ) )
		if err != nil {
			return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
		}
		for _, frame := range g.Image {
			report.ChannelValues += len(frame.Pix)
		}
		report.Width = g.Config.Width
		report.Height = g.Config.Height

	case "jpeg":
		im, err := jpeg.Decode( bytes.NewReader( decoy ) )
		if err != nil {
			return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
		}
		bounds := im.Bounds()
		report.Width = bounds.Dx()
		report.Height = bounds.Dy()
		// jsteg reports bytes of one-bit-per-coefficient capacity
		capBytes := jsteg.Capacity( im, nil )
		report.ChannelValues = capBytes * 8
		report.CapacityBits = capBytes * 8
		report.CapacityBytes = capBytes - stego.LengthBits / 8
		if report.CapacityBytes < 0 {
			report.CapacityBytes = 0
		}
		return report, nil

	default:
		return nil, fmt.Errorf("%w: unknown magic bytes", stego.ErrUnsupportedFormat)
	}

	report.CapacityBits = stego.CapacityBits( report.ChannelValues, cfg.BitsPerChannel )
	report.CapacityBytes = stego.CapacityBytes( report.ChannelValues, cfg )
	return report, nil
}
