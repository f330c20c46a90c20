package img
import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"

	"golang.org/x/image/bmp"

	"stegimg/stego"
)

// test carriers are generated instead of checked in as binary fixtures

func gradientImage( width, height int ) *image.NRGBA {
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
	return im
}

func makePNG( t *testing.T, width, height int ) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := png.Encode( buf, gradientImage( width, height ) ); err != nil {
		t.Fatalf("Failed to generate png carrier: %v", err)
	}
	return buf.Bytes()
}

func makeBMP( t *testing.T, width, height int ) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	if err := bmp.Encode( buf, gradientImage( width, height ) ); err != nil {
		t.Fatalf("Failed to generate bmp carrier: %v", err)
	}
	return buf.Bytes()
}

func makeGIF( t *testing.T, width, height int ) []byte {
	t.Helper()
	// full 256 color palette so flipped low index bits stay in range
	palette := make( color.Palette, 256 )
	for i := range palette {
		palette[i] = color.Gray{ Y: uint8(i) }
	}
	frame := image.NewPaletted( image.Rect( 0, 0, width, height ), palette )
	for i := range frame.Pix {
		frame.Pix[i] = uint8( (i * 11) % 256 )
	}
	buf := new(bytes.Buffer)
	err := gif.EncodeAll( buf, &gif.GIF{
		Image: []*image.Paletted{ frame },
		Delay: []int{ 0 },
	})
	if err != nil {
		t.Fatalf("Failed to generate gif carrier: %v", err)
	}
	return buf.Bytes()
}

func makeJPEG( t *testing.T, width, height int ) []byte {
	t.Helper()
	im := image.NewNRGBA( image.Rect( 0, 0, width, height ) )
	// high frequency content keeps plenty of nonzero DCT coefficients
	for i := range im.Pix {
		im.Pix[i] = uint8( (i * 37) % 256 )
	}
	buf := new(bytes.Buffer)
	if err := jpeg.Encode( buf, im, &jpeg.Options{ Quality: 90 } ); err != nil {
		t.Fatalf("Failed to generate jpeg carrier: %v", err)
	}
	return buf.Bytes()
}

func TestPNG( t *testing.T ) {
	payloads := [][]byte{
		nil,
		[]byte{},
		[]byte("Hello world!"),
		bytes.Repeat( []byte("a"), 2048 ),
	}
	configs := []stego.Config{
		stego.DefaultConfig(),
		{ BitsPerChannel: 1, Channels: stego.RMode, Framing: stego.LengthPrefix },
		{ BitsPerChannel: 1, Channels: stego.GMode | stego.BMode, Framing: stego.LengthPrefix },
		{ BitsPerChannel: 2, Channels: stego.RMode | stego.GMode | stego.BMode, Framing: stego.LengthPrefix },
		{ BitsPerChannel: 1, Channels: stego.RMode | stego.GMode | stego.BMode, Framing: stego.Terminator },
	}

	carrier := makePNG( t, 128, 128 )
	for _, data := range payloads {
		for _, cfg := range configs {
			enc, err := HideInPNG( carrier, data, cfg )
			if err != nil {
				t.Errorf("Failed to encode data with config %+v: %v", cfg, err)
				continue
			}
			dec, err := RevealFromPNG( enc, cfg )
			if err != nil {
				t.Errorf("Failed to extract data with config %+v: %v", cfg, err)
			} else if bytes.Equal( data, dec ) == false {
				t.Errorf("Steganography spoiled the data. %v != %v", data, dec)
			}
		}
	}
}

func TestBMP( t *testing.T ) {
	payloads := [][]byte{
		nil,
		[]byte("Hello world!"),
		bytes.Repeat( []byte("A"), 1000 ),
	}
	carrier := makeBMP( t, 100, 100 )
	cfg := stego.DefaultConfig()
	for _, data := range payloads {
		enc, err := HideInBMP( carrier, data, cfg )
		if err != nil {
			t.Errorf("Failed to encode data: %v", err)
			continue
		}
		dec, err := RevealFromBMP( enc, cfg )
		if err != nil {
			t.Errorf("Failed to extract data: %v", err)
		} else if bytes.Equal( data, dec ) == false {
			t.Errorf("Steganography spoiled the data. %v != %v", data, dec)
		}
	}
}

func TestGIF( t *testing.T ) {
	carrier := makeGIF( t, 64, 64 )
	cfg := stego.DefaultConfig()
	data := []byte("hidden in plain gif")

	enc, err := HideInGif( carrier, data, cfg )
	if err != nil {
		t.Fatalf("Failed to encode data: %v", err)
	}
	dec, err := RevealFromGif( enc, cfg )
	if err != nil {
		t.Fatalf("Failed to extract data: %v", err)
	}
	if bytes.Equal( data, dec ) == false {
		t.Errorf("Steganography spoiled the data. %v != %v", data, dec)
	}
}

func TestJPEG( t *testing.T ) {
	carrier := makeJPEG( t, 256, 256 )
	cfg := stego.DefaultConfig()
	data := []byte("dct domain secret")

	enc, err := HideInJpeg( carrier, data, cfg )
	if err != nil {
		t.Fatalf("Failed to encode data: %v", err)
	}
	dec, err := RevealFromJpeg( enc, cfg )
	if err != nil {
		t.Fatalf("Failed to extract data: %v", err)
	}
	if bytes.Equal( data, dec ) == false {
		t.Errorf("Steganography spoiled the data. %v != %v", data, dec)
	}

	// density, channel masks and terminator framing have no meaning
	// in the DCT domain, so anything but the default must be rejected
	badConfigs := []stego.Config{
		{ BitsPerChannel: 2, Channels: stego.RMode | stego.GMode | stego.BMode, Framing: stego.LengthPrefix },
		{ BitsPerChannel: 1, Channels: stego.BMode, Framing: stego.LengthPrefix },
		{ BitsPerChannel: 1, Channels: stego.RMode | stego.GMode | stego.BMode | stego.AMode, Framing: stego.LengthPrefix },
		{ BitsPerChannel: 1, Channels: stego.RMode | stego.GMode | stego.BMode, Framing: stego.Terminator },
	}
	for _, badCfg := range badConfigs {
		if _, err = HideInJpeg( carrier, data, badCfg ); errors.Is( err, stego.ErrUnsupportedFormat ) == false {
			t.Errorf("Expected ErrUnsupportedFormat hiding with %+v on jpeg, got %v", badCfg, err)
		}
		if _, err = RevealFromJpeg( enc, badCfg ); errors.Is( err, stego.ErrUnsupportedFormat ) == false {
			t.Errorf("Expected ErrUnsupportedFormat revealing with %+v on jpeg, got %v", badCfg, err)
		}
	}
}

func TestDispatch( t *testing.T ) {
	cfg := stego.DefaultConfig()
	data := []byte("dispatch me")
	carriers := [][]byte{
		makePNG( t, 64, 64 ),
		makeBMP( t, 64, 64 ),
		makeGIF( t, 64, 64 ),
		makeJPEG( t, 256, 256 ),
	}
	for _, carrier := range carriers {
		enc, err := Hide( carrier, data, cfg )
		if err != nil {
			t.Errorf("Failed to hide in %s carrier: %v", Format(carrier), err)
			continue
		}
		if Format( enc ) != Format( carrier ) {
			t.Errorf("Hide changed the carrier format from %s to %s", Format(carrier), Format(enc))
		}
		dec, err := Reveal( enc, cfg )
		if err != nil {
			t.Errorf("Failed to reveal from %s carrier: %v", Format(carrier), err)
		} else if bytes.Equal( data, dec ) == false {
			t.Errorf("Steganography spoiled the data. %v != %v", data, dec)
		}
	}

	if _, err := Hide( []byte("definitely not an image"), data, cfg ); errors.Is( err, stego.ErrUnsupportedFormat ) == false {
		t.Errorf("Expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestCarrierNotMutated( t *testing.T ) {
	carrier := makePNG( t, 64, 64 )
	before := append( []byte{}, carrier... )
	if _, err := HideInPNG( carrier, []byte("do not touch the original"), stego.DefaultConfig() ); err != nil {
		t.Fatalf("Failed to encode data: %v", err)
	}
	if bytes.Equal( carrier, before ) == false {
		t.Errorf("Hide mutated the carrier buffer")
	}
}

func TestCapacityExceeded( t *testing.T ) {
	carrier := makePNG( t, 10, 10 )
	// 10x10 RGB at one bit per channel holds 33 bytes after framing
	over := bytes.Repeat( []byte("x"), 34 )
	_, err := HideInPNG( carrier, over, stego.DefaultConfig() )
	if errors.Is( err, stego.ErrCapacityExceeded ) == false {
		t.Errorf("Expected ErrCapacityExceeded, got %v", err)
	}

	fits := bytes.Repeat( []byte("x"), 33 )
	enc, err := HideInPNG( carrier, fits, stego.DefaultConfig() )
	if err != nil {
		t.Fatalf("A payload at exact capacity must embed, got %v", err)
	}
	dec, err := RevealFromPNG( enc, stego.DefaultConfig() )
	if err != nil || bytes.Equal( dec, fits ) == false {
		t.Errorf("Failed to recover payload at exact capacity: %v", err)
	}
}
