package cryptography
import (
	"fmt"
	"strings"
	"runtime"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"encoding/base64"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/chacha20poly1305"
)

// chacha20poly1305 encryption+authentication, nonce prepended
func Encrypt( data, key []byte ) ([]byte, error) {

	if data == nil || len(data) == 0 {
		return nil, nil
	}
	if key == nil || len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}

	nonce := make( []byte, NonceSize )
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	if _, err := rand.Read( nonce ); err != nil {
		return nil, err
	}

	ct := aead.Seal( nil, nonce, data, nil )
	return append( nonce, ct... ), nil
}

func Decrypt( data, key []byte ) ([]byte, error) {

	if data == nil || len(data) == 0 {
		return nil, nil
	}
	if key == nil || len(key) != SymKeySize {
		return nil, fmt.Errorf("Invalid key")
	}
	if len(data) < NonceSize {
		return nil, fmt.Errorf("Invalid length of data")
	}

	nonce := data[:NonceSize]
	data = data[NonceSize:]
	aead, err := chacha20poly1305.New( key )
	if err != nil {
		return nil, err
	}
	return aead.Open( nil, nonce, data, nil )
}

// generate a random amount of bytes
func GenRandom( size uint ) ([]byte, error) {
	if size == 0 {
		return nil, fmt.Errorf("Invalid size of random data")
	}
	data := make( []byte, size )
	if _, err := rand.Read( data ); err != nil {
		return nil, err
	}
	return data, nil
}

// calculate the hash of data
func Hash( data []byte ) string {
	if data == nil {
		return ""
	}
	hash := sha512.Sum512( data )
	return hex.EncodeToString( hash[:] )
}

// format: <base64-encoded-salt>:<password>
func SplitWithSalt( password string ) ([]byte, []byte, error) {
	parts := strings.Split( password, ":" )
	if len(parts) < 2 {
		return nil, nil, fmt.Errorf("no salt supplied")
	} else if len(parts) > 2 {
		// consider the first ':' is a delimeter
		parts[1] = strings.Join( parts[1:], ":" )
	}
	saltBytes, err := base64.StdEncoding.DecodeString( parts[0] )
	if err != nil {
		return nil, nil, err
	}
	return []byte( parts[1] ), saltBytes, nil
}

// derive an encryption key from a passphrase
func DeriveKey( password, saltBytes []byte ) []byte {
	/*
	 * the draft RFC recommends time=3 and memory=32*1024 (32 MB) is a sensible number.
	 */
	threads := uint8(runtime.NumCPU())
	return argon2.Key( password, saltBytes, 3, 32 * 1024, threads, SymKeySize )
}
