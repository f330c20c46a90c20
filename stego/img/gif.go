package img
import (
	"fmt"
	"bytes"
	"image/gif"

	"stegimg/stego"
)

/*
 * GIF frames are paletted, so the codec runs over color indicies
 * instead of channel values: every index byte of every frame
 * participates and the channel mask is ignored.
 */

func HideInGif( decoy, data []byte, cfg stego.Config ) ([]byte, error) {
	g, err := gif.DecodeAll( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
	}

	// flatten all frames so the codec sees one carrier
	flat := []byte{}
	for _, frame := range g.Image {
		flat = append( flat, frame.Pix... )
	}

	offsets := stego.AllOffsets( len(flat) )
	if err = stego.EmbedBytes( flat, offsets, data, cfg ); err != nil {
		return nil, err
	}

	pos := 0
	for _, frame := range g.Image {
		copy( frame.Pix, flat[ pos : pos + len(frame.Pix) ] )
		pos += len(frame.Pix)
	}

	outbuf := bytes.NewBuffer( []byte{} )
	if err = gif.EncodeAll( outbuf, g ); err != nil {
		return nil, err
	}
	return outbuf.Bytes(), nil
}

func RevealFromGif( decoy []byte, cfg stego.Config ) ([]byte, error) {
	g, err := gif.DecodeAll( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
	}

	flat := []byte{}
	for _, frame := range g.Image {
		flat = append( flat, frame.Pix... )
	}
	return stego.ExtractBytes( flat, stego.AllOffsets( len(flat) ), cfg )
}
