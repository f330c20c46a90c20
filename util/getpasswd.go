package util
import (
	"fmt"
	"syscall"
	"golang.org/x/term"
)

// GetPasswd prompts for a passphrase and reads it from the terminal
// with echo disabled, so it never shows up on screen.
func GetPasswd( prompt string ) ([]byte, error) {
	fmt.Print( prompt )
	defer fmt.Println()
	return term.ReadPassword( int(syscall.Stdin) )
}
