package stego
import (
	"fmt"
)

// channel participation flags, combined as a bitmask
const (
	RMode uint8 = 1
	GMode uint8 = 2
	BMode uint8 = 4
	AMode uint8 = 8
)

type Framing uint8

const (
	// fixed-width big-endian byte count in front of the payload
	LengthPrefix Framing = iota
	// payload followed by TerminatorSeq
	Terminator
)

const (
	// width of the length prefix in bits
	LengthBits = 32

	MinBitsPerChannel = 1
	MaxBitsPerChannel = 4
)

// TerminatorSeq marks end-of-payload for terminator-delimited frames.
var TerminatorSeq = []byte{0, 0, 0, 0}

/*
 * Configuration of one codec operation. The decoder must be given the
 * same configuration the encoder used, there is no way to detect a
 * mismatch except by an implausible length field.
 */
type Config struct {
	BitsPerChannel	uint8	// low bits rewritten per channel value
	Channels	uint8	// RMode | GMode | BMode | AMode
	Framing		Framing
}

func DefaultConfig() Config {
	return Config{
		BitsPerChannel: 1,
		Channels: RMode | GMode | BMode,
		Framing: LengthPrefix,
	}
}

func( c Config ) Validate() error {
	if c.BitsPerChannel < MinBitsPerChannel || c.BitsPerChannel > MaxBitsPerChannel {
		return fmt.Errorf("bits per channel must be between %d and %d, got %d",
			MinBitsPerChannel, MaxBitsPerChannel, c.BitsPerChannel)
	}
	if c.Channels == 0 || c.Channels > RMode | GMode | BMode | AMode {
		return fmt.Errorf("invalid channel mask %#02x", c.Channels)
	}
	if c.Framing != LengthPrefix && c.Framing != Terminator {
		return fmt.Errorf("unknown framing strategy %d", c.Framing)
	}
	return nil
}

// ChannelOffsets lists the byte positions of participating channel values
// inside a packed RGBA pixel buffer, in row-major pixel order.
func ChannelOffsets( pixLen int, channels uint8 ) []int {
	offsets := make( []int, 0, pixLen )
	for i := 0; i + 3 < pixLen; i += 4 {
		if channels & RMode == RMode {
			offsets = append( offsets, i )
		}
		if channels & GMode == GMode {
			offsets = append( offsets, i + 1 )
		}
		if channels & BMode == BMode {
			offsets = append( offsets, i + 2 )
		}
		if channels & AMode == AMode {
			offsets = append( offsets, i + 3 )
		}
	}
	return offsets
}

// AllOffsets treats every byte as a channel value. Used for paletted
// images where a value is a color index, not a color channel.
func AllOffsets( n int ) []int {
	offsets := make( []int, n )
	for i := range offsets {
		offsets[i] = i
	}
	return offsets
}
