package main
import (
	"os"
	"fmt"
	"flag"
	"path/filepath"

	"stegimg/analysis"
	"stegimg/config"
	"stegimg/local"
	"stegimg/payload"
	"stegimg/stego/img"
	"stegimg/util"
)

const (
	StegimgFolder = ".stegimg"
	ConfigFilename = "config.yaml"
	LogFilename = "log.log"
)

func main() {

	if len( os.Args ) < 2 || os.Args[1] == "-h" || os.Args[1] == "--help" {
		help()
		return
	}

	switch os.Args[1] {
	case "embed":
		cmdEmbed( os.Args[2:] )
	case "extract":
		cmdExtract( os.Args[2:] )
	case "capacity":
		cmdCapacity( os.Args[2:] )
	case "detect":
		cmdDetect( os.Args[2:] )
	case "quality":
		cmdQuality( os.Args[2:] )
	case "serve":
		cmdServe( os.Args[2:] )
	default:
		help()
	}
}

// codecFlags registers the flags every codec command shares.
func codecFlags( fs *flag.FlagSet ) (*int, *string, *string) {
	bits := fs.Int( "k", 1, "low bits rewritten per channel value (1-4)" )
	channels := fs.String( "channels", "rgb", "participating channels, e.g. rgb, b, rgba" )
	framing := fs.String( "framing", "length-prefix", "length-prefix or terminator" )
	return bits, channels, framing
}

func resolveCodec( bits int, channels, framing string ) config.CodecConfig {
	return config.CodecConfig{
		BitsPerChannel:	uint8(bits),
		Channels:	channels,
		Framing:	framing,
	}
}

func cmdEmbed( args []string ) {
	fs := flag.NewFlagSet( "embed", flag.ExitOnError )
	in := fs.String( "in", "", "carrier image" )
	out := fs.String( "out", "", "output image (defaults to <in>_stego.<format>)" )
	msg := fs.String( "msg", "", "text message to hide" )
	secretFile := fs.String( "file", "", "file to hide instead of a text message" )
	compress := fs.Bool( "compress", false, "gzip the payload when it helps" )
	encrypt := fs.Bool( "encrypt", false, "encrypt the payload with a passphrase" )
	passphrase := fs.String( "passphrase", "", "passphrase (prompted for when -encrypt is set and this is empty)" )
	bits, channels, framing := codecFlags( fs )
	fs.Parse( args )

	if *in == "" {
		fatal( "A carrier image is required (-in)" )
	}
	if *msg == "" && *secretFile == "" {
		fatal( "Nothing to hide: pass -msg or -file" )
	}

	cfg, err := resolveCodec( *bits, *channels, *framing ).ToStego()
	if err != nil {
		fatal( "Invalid codec parameters:", err )
	}

	carrier, err := os.ReadFile( *in )
	if err != nil {
		fatal( "Failed to read carrier image:", err )
	}

	var p *payload.Payload
	if *secretFile != "" {
		data, err := os.ReadFile( *secretFile )
		if err != nil {
			fatal( "Failed to read secret file:", err )
		}
		p = payload.NewFile( filepath.Base( *secretFile ), data )
	} else {
		p = payload.NewText( *msg )
	}

	pass := *passphrase
	if *encrypt && pass == "" {
		pwBytes, err := util.GetPasswd( "Passphrase: " )
		if err != nil {
			fatal( "Failed to read passphrase from stdin:", err )
		}
		pass = string(pwBytes)
	}

	packed, err := payload.Pack( p, payload.Options{
		Compress:	*compress,
		Passphrase:	pass,
	})
	if err != nil {
		fatal( "Failed to pack payload:", err )
	}

	encoded, err := img.Hide( carrier, packed, cfg )
	if err != nil {
		fatal( "Failed to embed payload:", err )
	}

	outName := *out
	if outName == "" {
		ext := filepath.Ext( *in )
		outName = (*in)[ : len(*in) - len(ext) ] + "_stego." + img.Format( encoded )
	}
	if err = os.WriteFile( outName, encoded, 0644 ); err != nil {
		fatal( "Failed to write output image:", err )
	}
	fmt.Println( "Wrote", outName )
}

func cmdExtract( args []string ) {
	fs := flag.NewFlagSet( "extract", flag.ExitOnError )
	in := fs.String( "in", "", "stego image" )
	dir := fs.String( "dir", ".", "directory for recovered file payloads" )
	encrypted := fs.Bool( "encrypted", false, "prompt for the passphrase" )
	passphrase := fs.String( "passphrase", "", "passphrase for encrypted payloads" )
	bits, channels, framing := codecFlags( fs )
	fs.Parse( args )

	if *in == "" {
		fatal( "A stego image is required (-in)" )
	}

	cfg, err := resolveCodec( *bits, *channels, *framing ).ToStego()
	if err != nil {
		fatal( "Invalid codec parameters:", err )
	}

	encoded, err := os.ReadFile( *in )
	if err != nil {
		fatal( "Failed to read stego image:", err )
	}

	packed, err := img.Reveal( encoded, cfg )
	if err != nil {
		fatal( "Failed to extract payload:", err )
	}

	pass := *passphrase
	if *encrypted && pass == "" {
		pwBytes, err := util.GetPasswd( "Passphrase: " )
		if err != nil {
			fatal( "Failed to read passphrase from stdin:", err )
		}
		pass = string(pwBytes)
	}

	p, err := payload.Unpack( packed, pass )
	if err != nil {
		fatal( "Failed to unpack payload:", err )
	}

	if p.Kind == payload.File {
		name := filepath.Join( *dir, util.PrepareFilename( p.Filename ) )
		if err = os.WriteFile( name, p.Data, 0644 ); err != nil {
			fatal( "Failed to save recovered file:", err )
		}
		fmt.Println( "Recovered", name )
		return
	}
	fmt.Println( string(p.Data) )
}

func cmdCapacity( args []string ) {
	fs := flag.NewFlagSet( "capacity", flag.ExitOnError )
	in := fs.String( "in", "", "carrier image" )
	bits, channels, framing := codecFlags( fs )
	fs.Parse( args )

	if *in == "" {
		fatal( "A carrier image is required (-in)" )
	}

	cfg, err := resolveCodec( *bits, *channels, *framing ).ToStego()
	if err != nil {
		fatal( "Invalid codec parameters:", err )
	}

	carrier, err := os.ReadFile( *in )
	if err != nil {
		fatal( "Failed to read carrier image:", err )
	}

	report, err := analysis.Capacity( carrier, cfg )
	if err != nil {
		fatal( "Failed to analyze capacity:", err )
	}

	fmt.Printf( "Format:         %s\n", report.Format )
	fmt.Printf( "Dimensions:     %dx%d\n", report.Width, report.Height )
	fmt.Printf( "Channel values: %d\n", report.ChannelValues )
	fmt.Printf( "Capacity:       %d bits (%d payload bytes after framing)\n",
		report.CapacityBits, report.CapacityBytes )
}

func cmdDetect( args []string ) {
	fs := flag.NewFlagSet( "detect", flag.ExitOnError )
	in := fs.String( "in", "", "image to inspect" )
	fs.Parse( args )

	if *in == "" {
		fatal( "An image is required (-in)" )
	}

	data, err := os.ReadFile( *in )
	if err != nil {
		fatal( "Failed to read image:", err )
	}

	report, err := analysis.DetectLSB( data )
	if err != nil {
		fatal( "Failed to analyze image:", err )
	}

	fmt.Printf( "LSB bias:   %.4f\n", report.LSBBias )
	fmt.Printf( "Suspicious: %v\n", report.Suspicious )
	if report.Suspicious {
		fmt.Printf( "Confidence: %.2f\n", report.Confidence )
	}
}

func cmdQuality( args []string ) {
	fs := flag.NewFlagSet( "quality", flag.ExitOnError )
	orig := fs.String( "orig", "", "original carrier image" )
	stegoIn := fs.String( "stego", "", "steganographic image" )
	fs.Parse( args )

	if *orig == "" || *stegoIn == "" {
		fatal( "Both images are required (-orig and -stego)" )
	}

	origBytes, err := os.ReadFile( *orig )
	if err != nil {
		fatal( "Failed to read original image:", err )
	}
	stegoBytes, err := os.ReadFile( *stegoIn )
	if err != nil {
		fatal( "Failed to read stego image:", err )
	}

	report, err := analysis.Quality( origBytes, stegoBytes )
	if err != nil {
		fatal( "Failed to compare images:", err )
	}

	fmt.Printf( "MSE:                   %.6f\n", report.MSE )
	fmt.Printf( "MAE:                   %.6f\n", report.MAE )
	fmt.Printf( "PSNR:                  %.2f dB\n", report.PSNR )
	fmt.Printf( "SSIM:                  %.6f\n", report.SSIM )
	fmt.Printf( "Histogram correlation: %.6f\n", report.HistCorrelation )
	fmt.Printf( "Grade:                 %s\n", report.Grade )
}

func cmdServe( args []string ) {
	fs := flag.NewFlagSet( "serve", flag.ExitOnError )
	configFile := fs.String( "config", "", "configuration file (defaults to ~/.stegimg/config.yaml)" )
	fs.Parse( args )

	path := *configFile
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fatal( "Failed to get home directory:", err )
		}
		folder := filepath.Join( home, StegimgFolder )
		if _, err := os.Stat( folder ); err != nil {
			if err = os.Mkdir( folder, 0700 ); err != nil {
				fatal( "Failed to create the stegimg directory:", err )
			}
		}
		path = filepath.Join( folder, ConfigFilename )
		// first run: write the defaults so they can be edited later
		if _, err := os.Stat( path ); err != nil {
			conf := config.DefaultConfig( filepath.Join( folder, LogFilename ) )
			if err = config.SaveConfig( path, conf ); err != nil {
				fatal( "Failed to save default configuration:", err )
			}
		}
	}

	util.DebugPrintf( "Reading configuration from %s\n", path )
	conf, err := config.LoadConfig( path )
	if err != nil {
		fatal( "Failed to load configuration:", err )
	}
	if _, err = conf.Codec.ToStego(); err != nil {
		fatal( "Invalid codec defaults in configuration:", err )
	}

	logger := util.NewLogger( &conf.Logger )
	if err = local.RunApiServer( conf, logger ); err != nil {
		fatal( "Failed to run API server:", err )
	}
}

func fatal( args ...any ) {
	fmt.Println( args... )
	os.Exit(-1)
}

func help() {
	line := `Usage: ./stegimg <command> [arguments]

The following commands are supported:
	embed		hide a message or a file inside a carrier image
	extract		recover a hidden payload from a stego image
	capacity	report how much a carrier image can hold
	detect		check an image for signs of LSB embedding
	quality		compare a stego image with its original
	serve		run the local REST API server

Run any command with -h to see its flags.
`

	fmt.Printf("%s", line)
}
