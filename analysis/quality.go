package analysis
import (
	"fmt"
	"math"
	"bytes"
	"image"
	"image/draw"

	"stegimg/stego"
)

type QualityReport struct {
	MSE		float64	`json:"mse"`
	MAE		float64	`json:"mae"`
	PSNR		float64	`json:"psnr"`
	SSIM		float64	`json:"ssim"`
	HistCorrelation	float64	`json:"histogram_correlation"`
	Grade		string	`json:"grade"`
}

// Quality compares a carrier with its steganographic counterpart over
// the RGB channels. Identical images report an infinite PSNR.
func Quality( original, modified []byte ) (*QualityReport, error) {
	orig, err := decodeNRGBA( original )
	if err != nil {
		return nil, err
	}
	steg, err := decodeNRGBA( modified )
	if err != nil {
		return nil, err
	}
	if orig.Bounds() != steg.Bounds() {
		return nil, fmt.Errorf("images must have the same dimensions")
	}

	report := &QualityReport{}

	var sumSq, sumAbs float64
	count := 0
	for i := 0; i + 3 < len(orig.Pix); i += 4 {
		for c := 0; c < 3; c++ {	// R, G, B
			d := float64(orig.Pix[i+c]) - float64(steg.Pix[i+c])
			sumSq += d * d
			sumAbs += math.Abs( d )
			count++
		}
	}
	if count == 0 {
		return nil, fmt.Errorf("empty image")
	}
	report.MSE = sumSq / float64(count)
	report.MAE = sumAbs / float64(count)

	if report.MSE == 0 {
		report.PSNR = math.Inf( 1 )
	} else {
		report.PSNR = 20 * math.Log10( 255.0 / math.Sqrt( report.MSE ) )
	}

	// global SSIM per channel, averaged
	ssimSum := 0.0
	corrSum := 0.0
	for c := 0; c < 3; c++ {
		a := channelValues( orig, c )
		b := channelValues( steg, c )
		ssimSum += ssim( a, b )
		corrSum += correlation( histogram( a ), histogram( b ) )
	}
	report.SSIM = ssimSum / 3
	report.HistCorrelation = corrSum / 3

	report.Grade = grade( report.PSNR, report.SSIM )
	return report, nil
}

func grade( psnr, ssim float64 ) string {
	switch {
	case psnr > 40 && ssim > 0.95:
		return "Excellent"
	case psnr > 30 && ssim > 0.90:
		return "Good"
	case psnr > 25 && ssim > 0.80:
		return "Fair"
	}
	return "Poor"
}

func decodeNRGBA( data []byte ) (*image.NRGBA, error) {
	src, _, err := image.Decode( bytes.NewReader( data ) )
	if err != nil {
		return nil, fmt.Errorf("%w: %v", stego.ErrUnsupportedFormat, err)
	}
	bounds := src.Bounds()
	dst := image.NewNRGBA( image.Rect( 0, 0, bounds.Dx(), bounds.Dy() ) )
	draw.Draw( dst, dst.Bounds(), src, bounds.Min, draw.Src )
	return dst, nil
}

func channelValues( im *image.NRGBA, channel int ) []float64 {
	values := make( []float64, 0, len(im.Pix) / 4 )
	for i := channel; i < len(im.Pix); i += 4 {
		values = append( values, float64(im.Pix[i]) )
	}
	return values
}

func ssim( x, y []float64 ) float64 {
	c1 := math.Pow( 0.01 * 255, 2 )
	c2 := math.Pow( 0.03 * 255, 2 )

	muX := mean( x )
	muY := mean( y )
	varX := variance( x, muX )
	varY := variance( y, muY )

	cov := 0.0
	for i := range x {
		cov += (x[i] - muX) * (y[i] - muY)
	}
	cov /= float64(len(x))

	numerator := (2 * muX * muY + c1) * (2 * cov + c2)
	denominator := (muX * muX + muY * muY + c1) * (varX + varY + c2)
	return numerator / denominator
}

func histogram( values []float64 ) []float64 {
	hist := make( []float64, 256 )
	for _, v := range values {
		hist[ int(v) ]++
	}
	return hist
}

// Pearson correlation of two equally sized series
func correlation( x, y []float64 ) float64 {
	muX := mean( x )
	muY := mean( y )

	var cov, varX, varY float64
	for i := range x {
		cov += (x[i] - muX) * (y[i] - muY)
		varX += (x[i] - muX) * (x[i] - muX)
		varY += (y[i] - muY) * (y[i] - muY)
	}
	if varX == 0 || varY == 0 {
		// flat histograms correlate perfectly with themselves
		if varX == varY {
			return 1
		}
		return 0
	}
	return cov / math.Sqrt( varX * varY )
}

func mean( values []float64 ) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func variance( values []float64, mu float64 ) float64 {
	sum := 0.0
	for _, v := range values {
		sum += (v - mu) * (v - mu)
	}
	return sum / float64(len(values))
}
