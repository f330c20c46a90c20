package util
import (
	"strconv"
	"math/big"
	"crypto/rand"
)

func GenFilename( prefix string, ext string ) string {
	return prefix + strconv.Itoa( RandInt( 100000 ) ) + "." + ext
}

func RandInt( max int ) int {
	limit := big.NewInt( int64(max) )
	integer, err := rand.Int( rand.Reader, limit )
	if err != nil {
		return 0
	}
	return int(integer.Int64())
}
