package payload
import (
	"fmt"

	"stegimg/stego"
	"stegimg/cryptography"
)

/*
 * package payload turns what the user wants to hide - a text message
 * or a file - into the flat byte sequence the codec embeds, and back.
 *
 * Packed layout:
 *	[flags byte]
 *	[filename length byte][filename]	when flagFilename is set
 *	[salt]					when flagEncrypted is set
 *	[body]
 * The body is compressed before it is encrypted.
 */

type Kind uint8

const (
	Text Kind = iota
	File
)

const (
	flagEncrypted	= 1
	flagCompressed	= 2
	flagFilename	= 4

	maxFilenameLen	= 255
)

type Payload struct {
	Kind		Kind
	Data		[]byte
	Filename	string	// only meaningful for File payloads
}

type Options struct {
	Compress	bool
	Passphrase	string
}

func NewText( message string ) *Payload {
	return &Payload{ Kind: Text, Data: []byte(message) }
}

func NewFile( filename string, data []byte ) *Payload {
	return &Payload{ Kind: File, Data: data, Filename: filename }
}

// Pack flattens the payload into codec input.
func Pack( p *Payload, opts Options ) ([]byte, error) {
	if p == nil {
		return nil, fmt.Errorf("Nothing to pack")
	}

	flags := byte(0)
	body := p.Data

	if opts.Compress && len(body) > 0 {
		status, compressed, err := Compress( body )
		if err != nil {
			return nil, err
		}
		if status == 1 {
			flags |= flagCompressed
			body = compressed
		}
	}

	if opts.Passphrase != "" {
		salt, err := cryptography.GenRandom( cryptography.SaltSize )
		if err != nil {
			return nil, err
		}
		key := cryptography.DeriveKey( []byte(opts.Passphrase), salt )
		ct, err := cryptography.Encrypt( body, key )
		if err != nil {
			return nil, err
		}
		flags |= flagEncrypted
		body = append( salt, ct... )
	}

	header := []byte{ flags }
	if p.Kind == File && p.Filename != "" {
		name := []byte( p.Filename )
		if len(name) > maxFilenameLen {
			return nil, fmt.Errorf("Filename is too long to embed (%d bytes)", len(name))
		}
		header[0] |= flagFilename
		header = append( header, byte(len(name)) )
		header = append( header, name... )
	}

	return append( header, body... ), nil
}

// Unpack reverses Pack. The passphrase is only consulted when the
// header says the body is encrypted.
func Unpack( raw []byte, passphrase string ) (*Payload, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("%w: missing payload header", stego.ErrMalformedFrame)
	}

	flags := raw[0]
	if flags &^ byte(flagEncrypted | flagCompressed | flagFilename) != 0 {
		return nil, fmt.Errorf("%w: unknown header flags %#02x", stego.ErrMalformedFrame, flags)
	}

	p := &Payload{ Kind: Text }
	rest := raw[1:]

	if flags & flagFilename == flagFilename {
		if len(rest) < 1 || len(rest) < 1 + int(rest[0]) {
			return nil, fmt.Errorf("%w: truncated filename block", stego.ErrMalformedFrame)
		}
		nameLen := int(rest[0])
		p.Kind = File
		p.Filename = string( rest[ 1 : 1 + nameLen ] )
		rest = rest[ 1 + nameLen : ]
	}

	body := rest
	if flags & flagEncrypted == flagEncrypted {
		if passphrase == "" {
			return nil, fmt.Errorf("payload is encrypted, a passphrase is required")
		}
		if len(body) < cryptography.SaltSize {
			return nil, fmt.Errorf("%w: encrypted body shorter than its salt", stego.ErrMalformedFrame)
		}
		key := cryptography.DeriveKey( []byte(passphrase), body[:cryptography.SaltSize] )
		pt, err := cryptography.Decrypt( body[cryptography.SaltSize:], key )
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt payload: %w", err)
		}
		body = pt
	}

	if flags & flagCompressed == flagCompressed {
		decompressed, err := Decompress( body )
		if err != nil {
			return nil, fmt.Errorf("%w: body does not decompress: %v", stego.ErrMalformedFrame, err)
		}
		body = decompressed
	}

	p.Data = body
	return p, nil
}
