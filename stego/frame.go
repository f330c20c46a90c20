package stego
import (
	"fmt"
	"bytes"
	"math"
	"encoding/binary"
)

// BuildFrame serializes payload bytes into the flat bit sequence that
// gets written into the carrier.
func BuildFrame( data []byte, cfg Config ) ([]uint8, error) {
	switch cfg.Framing {
	case LengthPrefix:
		if uint64(len(data)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: payload of %d bytes does not fit the length prefix",
				ErrCapacityExceeded, len(data))
		}
		framed := make( []byte, LengthBits / 8, LengthBits / 8 + len(data) )
		binary.BigEndian.PutUint32( framed, uint32(len(data)) )
		framed = append( framed, data... )
		return ToBits( framed ), nil

	case Terminator:
		framed := make( []byte, 0, len(data) + len(TerminatorSeq) )
		framed = append( framed, data... )
		framed = append( framed, TerminatorSeq... )
		// the decoder stops at the first terminator it sees, so the
		// payload must not produce one before the real end of frame
		if bytes.Index( framed, TerminatorSeq ) != len(data) {
			return nil, fmt.Errorf("payload cannot be terminator-framed, it contains the terminator sequence")
		}
		return ToBits( framed ), nil
	}
	return nil, fmt.Errorf("unknown framing strategy %d", cfg.Framing)
}

// FrameOverheadBits is the framing overhead on top of the payload bits.
// Both strategies happen to spend 32 bits.
func FrameOverheadBits( cfg Config ) int {
	if cfg.Framing == Terminator {
		return len(TerminatorSeq) * 8
	}
	return LengthBits
}

// CapacityBits is the raw usable capacity of a carrier exposing the
// given number of channel values.
func CapacityBits( values int, bitsPerChannel uint8 ) int {
	return values * int(bitsPerChannel)
}

// CapacityBytes is the biggest payload that still fits after framing.
func CapacityBytes( values int, cfg Config ) int {
	bits := CapacityBits( values, cfg.BitsPerChannel ) - FrameOverheadBits( cfg )
	if bits < 0 {
		return 0
	}
	return bits / 8
}
