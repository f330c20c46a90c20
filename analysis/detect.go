package analysis
import (
	"math"
)

type DetectionReport struct {
	LSBBias		float64	`json:"lsb_bias"`	// |mean(LSB) - 0.5| averaged over channels
	Suspicious	bool	`json:"suspicious"`
	Confidence	float64	`json:"confidence"`
}

// bias above this looks unlike an untouched photograph
const suspicionThreshold = 0.1

// DetectLSB runs a simple statistical check on the low bits of the
// RGB channels. It cannot prove anything, it only flags images whose
// LSB distribution deviates from the near-uniform one photographs have.
func DetectLSB( decoy []byte ) (*DetectionReport, error) {
	im, err := decodeNRGBA( decoy )
	if err != nil {
		return nil, err
	}

	report := &DetectionReport{}
	biasSum := 0.0
	for c := 0; c < 3; c++ {
		count := 0
		ones := 0
		for i := c; i < len(im.Pix); i += 4 {
			ones += int(im.Pix[i] & 1)
			count++
		}
		if count == 0 {
			continue
		}
		biasSum += math.Abs( float64(ones) / float64(count) - 0.5 )
	}
	report.LSBBias = biasSum / 3

	if report.LSBBias > suspicionThreshold {
		report.Suspicious = true
		report.Confidence = math.Min( report.LSBBias * 2, 1.0 )
	}
	return report, nil
}
