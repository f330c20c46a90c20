package local

import (
	"errors"
	"fmt"
	"io"
	"math"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"stegimg/analysis"
	"stegimg/config"
	"stegimg/cryptography"
	"stegimg/payload"
	"stegimg/stego"
	"stegimg/stego/img"
	"stegimg/util"
)

type StegoHandler struct {
	conf	*config.FullConfig
	logger	*util.Logger
}

func NewStegoHandler( conf *config.FullConfig, logger *util.Logger ) *StegoHandler {
	return &StegoHandler{
		conf: conf,
		logger: logger,
	}
}

func (h *StegoHandler) HealthCheck( c *gin.Context ) {
	c.JSON( http.StatusOK, gin.H{
		"status": "healthy",
		"message": "Steganography API is running",
	})
}

// codecConfig resolves a request's codec parameters, falling back to
// the configured defaults for anything the client left out.
func (h *StegoHandler) codecConfig( c *gin.Context ) (stego.Config, error) {
	cc := h.conf.Codec
	if v := c.PostForm( "bits_per_channel" ); v != "" {
		k, err := strconv.Atoi( v )
		if err != nil || k < stego.MinBitsPerChannel || k > stego.MaxBitsPerChannel {
			return stego.Config{}, fmt.Errorf("bits_per_channel must be between %d and %d",
				stego.MinBitsPerChannel, stego.MaxBitsPerChannel)
		}
		cc.BitsPerChannel = uint8(k)
	}
	if v := c.PostForm( "channels" ); v != "" {
		cc.Channels = v
	}
	if v := c.PostForm( "framing" ); v != "" {
		cc.Framing = v
	}
	return cc.ToStego()
}

func (h *StegoHandler) maxUpload() int64 {
	mb := h.conf.ServerConfig.MaxUploadMB
	if mb <= 0 {
		mb = 32
	}
	return mb << 20
}

func readFormFile( file multipart.File ) ([]byte, error) {
	defer file.Close()
	return io.ReadAll( file )
}

func fail( c *gin.Context, status int, format string, args ...any ) {
	c.JSON( status, ErrorResponse{
		Success: false,
		Message: fmt.Sprintf( format, args... ),
	})
}

// statusFor maps codec errors onto HTTP statuses: anything the client
// could have known is their fault, the rest is ours.
func statusFor( err error ) int {
	switch {
	case errors.Is( err, stego.ErrCapacityExceeded ),
		errors.Is( err, stego.ErrUnsupportedFormat ),
		errors.Is( err, stego.ErrMalformedFrame ):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (h *StegoHandler) Embed( c *gin.Context ) {
	if err := c.Request.ParseMultipartForm( h.maxUpload() ); err != nil {
		fail( c, http.StatusBadRequest, "Failed to parse form: %v", err )
		return
	}

	cfg, err := h.codecConfig( c )
	if err != nil {
		fail( c, http.StatusBadRequest, "Invalid codec parameters: %v", err )
		return
	}

	carrierFile, carrierHeader, err := c.Request.FormFile( "carrier_file" )
	if err != nil {
		fail( c, http.StatusBadRequest, "Carrier image is required" )
		return
	}
	carrier, err := readFormFile( carrierFile )
	if err != nil {
		fail( c, http.StatusInternalServerError, "Failed to read carrier image: %v", err )
		return
	}

	// the secret is either an uploaded file or a text message
	var p *payload.Payload
	secretFile, secretHeader, err := c.Request.FormFile( "secret_file" )
	if err == nil {
		secret, err := readFormFile( secretFile )
		if err != nil {
			fail( c, http.StatusInternalServerError, "Failed to read secret file: %v", err )
			return
		}
		p = payload.NewFile( filepath.Base( secretHeader.Filename ), secret )
	} else if message := c.PostForm( "message" ); message != "" {
		p = payload.NewText( message )
	} else {
		fail( c, http.StatusBadRequest, "Either a secret file or a message is required" )
		return
	}

	opts := payload.Options{
		Compress: c.PostForm( "compress" ) == "true",
		Passphrase: c.PostForm( "passphrase" ),
	}
	packed, err := payload.Pack( p, opts )
	if err != nil {
		fail( c, http.StatusBadRequest, "Failed to pack payload: %v", err )
		return
	}

	encoded, err := img.Hide( carrier, packed, cfg )
	if err != nil {
		h.logger.LogError( err )
		fail( c, statusFor( err ), "Failed to embed payload: %v", err )
		return
	}

	format := img.Format( encoded )
	base := strings.TrimSuffix( carrierHeader.Filename, filepath.Ext( carrierHeader.Filename ) )
	outName := fmt.Sprintf( "%s_stego.%s", filepath.Base( base ), format )

	c.Header( "Content-Disposition", fmt.Sprintf( "attachment; filename=%s", outName ) )
	c.Header( "X-Stego-Format", format )
	// lets the client verify the download arrived intact
	c.Header( "X-Stego-Checksum", cryptography.Hash( encoded ) )
	if report, err := analysis.Capacity( carrier, cfg ); err == nil {
		c.Header( "X-Stego-Capacity", strconv.Itoa( report.CapacityBytes ) )
	}
	c.Data( http.StatusOK, "image/" + format, encoded )
}

func (h *StegoHandler) Extract( c *gin.Context ) {
	if err := c.Request.ParseMultipartForm( h.maxUpload() ); err != nil {
		fail( c, http.StatusBadRequest, "Failed to parse form: %v", err )
		return
	}

	cfg, err := h.codecConfig( c )
	if err != nil {
		fail( c, http.StatusBadRequest, "Invalid codec parameters: %v", err )
		return
	}

	stegoFile, _, err := c.Request.FormFile( "stego_file" )
	if err != nil {
		fail( c, http.StatusBadRequest, "Stego image is required" )
		return
	}
	encoded, err := readFormFile( stegoFile )
	if err != nil {
		fail( c, http.StatusInternalServerError, "Failed to read stego image: %v", err )
		return
	}

	packed, err := img.Reveal( encoded, cfg )
	if err != nil {
		h.logger.LogError( err )
		fail( c, statusFor( err ), "Failed to extract payload: %v", err )
		return
	}

	p, err := payload.Unpack( packed, c.PostForm( "passphrase" ) )
	if err != nil {
		// a bad passphrase or a foreign frame is the client's problem
		fail( c, http.StatusBadRequest, "Failed to unpack payload: %v", err )
		return
	}

	if p.Kind == payload.File {
		name := util.PrepareFilename( p.Filename )
		c.Header( "Content-Disposition", fmt.Sprintf( "attachment; filename=%s", name ) )
		c.Data( http.StatusOK, "application/octet-stream", p.Data )
		return
	}

	c.JSON( http.StatusOK, ExtractResponse{
		Success: true,
		Kind: "text",
		Message: string(p.Data),
	})
}

func (h *StegoHandler) Capacity( c *gin.Context ) {
	if err := c.Request.ParseMultipartForm( h.maxUpload() ); err != nil {
		fail( c, http.StatusBadRequest, "Failed to parse form: %v", err )
		return
	}

	cfg, err := h.codecConfig( c )
	if err != nil {
		fail( c, http.StatusBadRequest, "Invalid codec parameters: %v", err )
		return
	}

	carrierFile, _, err := c.Request.FormFile( "carrier_file" )
	if err != nil {
		fail( c, http.StatusBadRequest, "Carrier image is required" )
		return
	}
	carrier, err := readFormFile( carrierFile )
	if err != nil {
		fail( c, http.StatusInternalServerError, "Failed to read carrier image: %v", err )
		return
	}

	report, err := analysis.Capacity( carrier, cfg )
	if err != nil {
		fail( c, statusFor( err ), "Failed to analyze capacity: %v", err )
		return
	}
	c.JSON( http.StatusOK, CapacityResponse{ Success: true, Report: report } )
}

func (h *StegoHandler) Detect( c *gin.Context ) {
	if err := c.Request.ParseMultipartForm( h.maxUpload() ); err != nil {
		fail( c, http.StatusBadRequest, "Failed to parse form: %v", err )
		return
	}

	imageFile, _, err := c.Request.FormFile( "image_file" )
	if err != nil {
		fail( c, http.StatusBadRequest, "Image is required" )
		return
	}
	imageBytes, err := readFormFile( imageFile )
	if err != nil {
		fail( c, http.StatusInternalServerError, "Failed to read image: %v", err )
		return
	}

	report, err := analysis.DetectLSB( imageBytes )
	if err != nil {
		fail( c, statusFor( err ), "Failed to analyze image: %v", err )
		return
	}
	c.JSON( http.StatusOK, DetectResponse{ Success: true, Report: report } )
}

func (h *StegoHandler) Quality( c *gin.Context ) {
	if err := c.Request.ParseMultipartForm( h.maxUpload() ); err != nil {
		fail( c, http.StatusBadRequest, "Failed to parse form: %v", err )
		return
	}

	originalFile, _, err := c.Request.FormFile( "original_file" )
	if err != nil {
		fail( c, http.StatusBadRequest, "Original image is required" )
		return
	}
	original, err := readFormFile( originalFile )
	if err != nil {
		fail( c, http.StatusInternalServerError, "Failed to read original image: %v", err )
		return
	}

	stegoF, _, err := c.Request.FormFile( "stego_file" )
	if err != nil {
		fail( c, http.StatusBadRequest, "Stego image is required" )
		return
	}
	encoded, err := readFormFile( stegoF )
	if err != nil {
		fail( c, http.StatusInternalServerError, "Failed to read stego image: %v", err )
		return
	}

	report, err := analysis.Quality( original, encoded )
	if err != nil {
		fail( c, statusFor( err ), "Failed to compare images: %v", err )
		return
	}
	// identical images report an infinite PSNR, which JSON cannot carry
	if math.IsInf( report.PSNR, 1 ) {
		report.PSNR = 120
	}
	c.JSON( http.StatusOK, QualityResponse{ Success: true, Report: report } )
}
