package stego
import (
	"fmt"
	"bytes"
	"encoding/binary"
)

/*
 * The codec itself: a pure, stateless pair of functions over a flat
 * buffer of channel values. The image layer decides which byte
 * positions participate and hands them over as offsets; the codec only
 * rewrites low bits at those positions.
 */

// EmbedBytes frames data and writes the frame into the low bits of
// pix at the participating offsets, in order. pix is mutated in place,
// so callers pass a copy of the carrier, never the carrier itself.
// Nothing is written when the frame does not fit.
func EmbedBytes( pix []byte, offsets []int, data []byte, cfg Config ) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	bits, err := BuildFrame( data, cfg )
	if err != nil {
		return err
	}
	k := int(cfg.BitsPerChannel)
	if len(bits) > CapacityBits( len(offsets), cfg.BitsPerChannel ) {
		return fmt.Errorf("%w: frame needs %d bits, carrier offers %d",
			ErrCapacityExceeded, len(bits), len(offsets) * k )
	}

	mask := byte(1 << uint(k)) - 1
	bitIdx := 0
	for _, off := range offsets {
		if bitIdx >= len(bits) {
			// channels past the frame stay untouched
			break
		}
		chunk := byte(0)
		for j := 0; j < k; j++ {
			chunk <<= 1
			if bitIdx < len(bits) {
				chunk |= bits[ bitIdx ]
				bitIdx++
			}
		}
		pix[off] = (pix[off] &^ mask) | chunk
	}
	return nil
}

// ExtractBytes walks the same offsets, collects low bits and
// reconstructs the payload according to the framing strategy. Channels
// past the end of the frame are never read.
func ExtractBytes( pix []byte, offsets []int, cfg Config ) ([]byte, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	r := lsbReader{
		pix: pix,
		offsets: offsets,
		k: int(cfg.BitsPerChannel),
	}

	switch cfg.Framing {
	case LengthPrefix:
		head, ok := r.readBytes( LengthBits / 8 )
		if !ok {
			return nil, fmt.Errorf("%w: carrier too small for a length prefix", ErrMalformedFrame)
		}
		length := binary.BigEndian.Uint32( head )
		if uint64(length) * 8 > uint64(r.remainingBits()) {
			return nil, fmt.Errorf("%w: declared length %d exceeds remaining capacity",
				ErrMalformedFrame, length)
		}
		data, ok := r.readBytes( int(length) )
		if !ok {
			return nil, fmt.Errorf("%w: frame truncated", ErrMalformedFrame)
		}
		return data, nil

	case Terminator:
		collected := []byte{}
		for {
			b, ok := r.readBytes( 1 )
			if !ok {
				return nil, fmt.Errorf("%w: terminator never found", ErrNoPayload)
			}
			collected = append( collected, b... )
			if len(collected) >= len(TerminatorSeq) &&
				bytes.Equal( collected[ len(collected) - len(TerminatorSeq): ], TerminatorSeq ) {
				return collected[ : len(collected) - len(TerminatorSeq) ], nil
			}
		}
	}
	return nil, fmt.Errorf("unknown framing strategy %d", cfg.Framing)
}

// lsbReader pulls the low k bits of successive channel values on demand.
type lsbReader struct {
	pix	[]byte
	offsets	[]int
	k	int
	pos	int	// next offset to visit
	pending	[]uint8	// bits read but not yet consumed
}

func( r *lsbReader ) readBits( n int ) ([]uint8, bool) {
	for len(r.pending) < n && r.pos < len(r.offsets) {
		v := r.pix[ r.offsets[ r.pos ] ]
		for j := r.k - 1; j >= 0; j-- {
			r.pending = append( r.pending, (v >> uint(j)) & 1 )
		}
		r.pos++
	}
	if len(r.pending) < n {
		return nil, false
	}
	out := r.pending[:n]
	r.pending = r.pending[n:]
	return out, true
}

func( r *lsbReader ) readBytes( n int ) ([]byte, bool) {
	bits, ok := r.readBits( n * 8 )
	if !ok {
		return nil, false
	}
	return FromBits( bits ), true
}

func( r *lsbReader ) remainingBits() int {
	return len(r.pending) + (len(r.offsets) - r.pos) * r.k
}
