package analysis

import "errors"

// Failure classes of evidence analysis. Callers branch on these with
// errors.Is; wrapped errors carry the transport detail.
var (
	ErrInvalidInput         = errors.New("invalid analysis input")
	ErrInvalidFormat        = errors.New("file format not accepted for this evidence type")
	ErrFileTooLarge         = errors.New("file exceeds the analyzer size limit")
	ErrNetworkFailure       = errors.New("analyzer unreachable")
	ErrServerFailure        = errors.New("analyzer failed to process the request")
	ErrClientRequest        = errors.New("analyzer rejected the request")
	ErrParseFailure         = errors.New("analyzer returned an unreadable response")
	ErrConfigurationMissing = errors.New("analyzer endpoint not configured")
)
