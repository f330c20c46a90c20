package local

import (
	"stegimg/analysis"
)

// ErrorResponse is what every failed request returns.
type ErrorResponse struct {
	Success	bool	`json:"success"`
	Message	string	`json:"message"`
}

// ExtractResponse carries a recovered text message. File payloads are
// streamed back as attachments instead.
type ExtractResponse struct {
	Success	bool	`json:"success"`
	Kind	string	`json:"kind"`
	Message	string	`json:"message,omitempty"`
}

type CapacityResponse struct {
	Success	bool				`json:"success"`
	Report	*analysis.CapacityReport	`json:"report"`
}

type DetectResponse struct {
	Success	bool				`json:"success"`
	Report	*analysis.DetectionReport	`json:"report"`
}

type QualityResponse struct {
	Success	bool				`json:"success"`
	Report	*analysis.QualityReport		`json:"report"`
}
