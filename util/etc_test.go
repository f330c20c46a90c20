package util
import (
	"strings"
	"testing"
)

func TestPrepareFilename( t *testing.T ) {
	cases := map[string]string{
		"report.pdf":			"report.pdf",
		"dir/report.pdf":		"report.pdf",
		"../../etc/passwd":		"passwd",
		"C:\\Users\\x\\report.pdf":	"report.pdf",
		"mixed/path\\name.txt":		"name.txt",
	}
	for in, want := range cases {
		if got := PrepareFilename( in ); got != want {
			t.Errorf("PrepareFilename(%q) = %q, expected %q", in, got, want)
		}
	}

	// hostile names fall back to a generated one
	for _, in := range []string{ "", ".", "..", "dir/" } {
		got := PrepareFilename( in )
		if got == "" || got == "." || got == ".." || strings.ContainsAny( got, "/\\" ) {
			t.Errorf("PrepareFilename(%q) = %q is not a safe filename", in, got)
		}
	}
}
