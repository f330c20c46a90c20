package analysis
import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"stegimg/stego"
	"stegimg/stego/img"
)

func makePNG( t *testing.T, width, height int ) []byte {
	t.Helper()
	im := image.NewNRGBA( image.Rect( 0, 0, width, height ) )
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			im.SetNRGBA( x, y, color.NRGBA{
				R: uint8( (x * 5) % 256 ),
				G: uint8( (y * 3) % 256 ),
				B: uint8( (x + y) % 256 ),
				A: 255,
			})
		}
	}
	buf := new(bytes.Buffer)
	if err := png.Encode( buf, im ); err != nil {
		t.Fatalf("Failed to generate png carrier: %v", err)
	}
	return buf.Bytes()
}

func TestCapacityReport( t *testing.T ) {
	carrier := makePNG( t, 10, 10 )
	report, err := Capacity( carrier, stego.DefaultConfig() )
	assert.NoError( t, err )
	assert.Equal( t, "png", report.Format )
	assert.Equal( t, 10, report.Width )
	assert.Equal( t, 10, report.Height )
	assert.Equal( t, 300, report.ChannelValues )
	assert.Equal( t, 300, report.CapacityBits )
	assert.Equal( t, 33, report.CapacityBytes )

	// doubling the density doubles the bit capacity
	cfg := stego.DefaultConfig()
	cfg.BitsPerChannel = 2
	report2, err := Capacity( carrier, cfg )
	assert.NoError( t, err )
	assert.Equal( t, 600, report2.CapacityBits )

	_, err = Capacity( []byte("not an image"), stego.DefaultConfig() )
	assert.Error( t, err )
}

func TestQualityIdentical( t *testing.T ) {
	carrier := makePNG( t, 64, 64 )
	report, err := Quality( carrier, carrier )
	assert.NoError( t, err )
	assert.Equal( t, 0.0, report.MSE )
	assert.True( t, math.IsInf( report.PSNR, 1 ) )
	assert.InDelta( t, 1.0, report.SSIM, 1e-9 )
	assert.Equal( t, "Excellent", report.Grade )
}

func TestQualityAfterEmbedding( t *testing.T ) {
	carrier := makePNG( t, 64, 64 )
	enc, err := img.Hide( carrier, bytes.Repeat( []byte("x"), 256 ), stego.DefaultConfig() )
	assert.NoError( t, err )

	report, err := Quality( carrier, enc )
	assert.NoError( t, err )
	// one-bit changes leave the image nearly untouched
	assert.Less( t, report.MSE, 1.0 )
	assert.Greater( t, report.PSNR, 40.0 )
	assert.Equal( t, "Excellent", report.Grade )
}

func TestQualityDimensionMismatch( t *testing.T ) {
	a := makePNG( t, 10, 10 )
	b := makePNG( t, 20, 20 )
	_, err := Quality( a, b )
	assert.Error( t, err )
}

func TestDetectLSB( t *testing.T ) {
	// a synthetic image with all-zero low bits is maximally biased
	im := image.NewNRGBA( image.Rect( 0, 0, 32, 32 ) )
	for i := range im.Pix {
		im.Pix[i] = 0x80
	}
	buf := new(bytes.Buffer)
	assert.NoError( t, png.Encode( buf, im ) )

	report, err := DetectLSB( buf.Bytes() )
	assert.NoError( t, err )
	assert.True( t, report.Suspicious )
	assert.InDelta( t, 0.5, report.LSBBias, 1e-9 )
	assert.Equal( t, 1.0, report.Confidence )
}
