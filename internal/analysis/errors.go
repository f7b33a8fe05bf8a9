package analysis

import "errors"

// ErrAnalysisInFlight is returned when the same draft already has an
// analysis outstanding.
var ErrAnalysisInFlight = errors.New("analysis already in progress for this draft")

// Failure reasons carried by AnalysisError.
const (
	ReasonInvalidImage = "invalid_image"
	ReasonProvider     = "provider_error"
	ReasonEmpty        = "empty_response"
	ReasonSchema       = "schema_mismatch"
)

// AnalysisError is returned for any failed analysis. Callers surface it as
// a recoverable notice; submission works without an analysis.
type AnalysisError struct {
	Reason  string
	Message string
	Err     error
}

func (e *AnalysisError) Error() string {
	if e.Err != nil {
		return "analysis failed: " + e.Message + ": " + e.Err.Error()
	}
	return "analysis failed: " + e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}
