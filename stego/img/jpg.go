package img
import (
	"fmt"
	"bytes"
	"image/jpeg"
	"encoding/binary"

	"lukechampine.com/jsteg"

	"stegimg/stego"
)

/*
 * JPEG carriers go through jsteg, which hides one bit per quantized
 * DCT coefficient. Density and channel selection are jsteg's business,
 * so only the default 1-bit RGB length-prefixed config is accepted
 * here rather than silently ignored.
 */

func checkJpegConfig( cfg stego.Config ) error {
	if cfg.BitsPerChannel != 1 || cfg.Framing != stego.LengthPrefix ||
		cfg.Channels != stego.RMode | stego.GMode | stego.BMode {
		return fmt.Errorf("%w: JPEG carriers support only the default config (1 bit, RGB, length prefix)",
			stego.ErrUnsupportedFormat)
	}
	return nil
}

func HideInJpeg( decoy, data []byte, cfg stego.Config ) ([]byte, error) {
	if err := checkJpegConfig( cfg ); err != nil {
		return nil, err
	}
	src, err := jpeg.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
	}

	capacity := jsteg.Capacity( src, nil )
	if capacity < len(data) + stego.LengthBits / 8 {
		return nil, fmt.Errorf("%w: have %d bytes, need %d",
			stego.ErrCapacityExceeded, capacity, len(data) + stego.LengthBits / 8 )
	}

	framed := make( []byte, len(data) + stego.LengthBits / 8 )
	binary.BigEndian.PutUint32( framed, uint32(len(data)) )
	copy( framed[ stego.LengthBits / 8 : ], data )

	outbuf := bytes.NewBuffer( []byte{} )
	if err = jsteg.Hide( outbuf, src, framed, nil ); err != nil {
		return nil, err
	}
	return outbuf.Bytes(), nil
}

func RevealFromJpeg( decoy []byte, cfg stego.Config ) ([]byte, error) {
	if err := checkJpegConfig( cfg ); err != nil {
		return nil, err
	}
	hidden, err := jsteg.Reveal( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrMalformedFrame, err)
	}
	if len(hidden) < stego.LengthBits / 8 {
		return nil, fmt.Errorf("%w: carrier too small for a length prefix", stego.ErrMalformedFrame)
	}

	size := binary.BigEndian.Uint32( hidden[ : stego.LengthBits / 8 ] )
	if uint64(len(hidden) - stego.LengthBits / 8) < uint64(size) {
		return nil, fmt.Errorf("%w: declared length %d exceeds revealed data", stego.ErrMalformedFrame, size)
	}
	return hidden[ stego.LengthBits / 8 : stego.LengthBits / 8 + size ], nil
}
