package stego
import (
	"errors"
)

/*
 * Error taxonomy of the codec. Callers classify with errors.Is;
 * everything else the codec returns is a plain wrapped error.
 */
var (
	// the frame does not fit into the carrier at the configured density
	ErrCapacityExceeded = errors.New("payload exceeds carrier capacity")

	// the carrier bytes are not an image we can interpret uniformly
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// the decoded frame is inconsistent with the carrier, which means
	// the image holds no payload or was encoded with another config
	ErrMalformedFrame = errors.New("no valid payload frame found")
)

// ErrNoPayload is the friendlier name presentation layers show when an
// image is probed for a hidden message. Same condition as ErrMalformedFrame.
var ErrNoPayload = ErrMalformedFrame
