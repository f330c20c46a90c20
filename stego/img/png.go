package img
import (
	"fmt"
	"bytes"
	"image"
	"image/png"

	"stegimg/stego"
)

func HideInPNG( decoy, data []byte, cfg stego.Config ) ([]byte, error) {
	src, _, err := image.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
	}

	rgba := toNRGBA( src )
	offsets := stego.ChannelOffsets( len(rgba.Pix), cfg.Channels )
	if err = stego.EmbedBytes( rgba.Pix, offsets, data, cfg ); err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err = png.Encode( buf, rgba ); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func RevealFromPNG( decoy []byte, cfg stego.Config ) ([]byte, error) {
	src, _, err := image.Decode( bytes.NewReader( decoy ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
	}

	rgba := toNRGBA( src )
	offsets := stego.ChannelOffsets( len(rgba.Pix), cfg.Channels )
	return stego.ExtractBytes( rgba.Pix, offsets, cfg )
}
