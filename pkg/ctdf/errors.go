package ctdf

import (
	"errors"
)

type ErrorKind string

const (
	// ErrorKindUpstreamFormat means the payload did not match any recognised shape
	ErrorKindUpstreamFormat ErrorKind = "UpstreamFormat"
	// ErrorKindUpstreamSemantic means the provider answered with one of its own "no result" messages
	ErrorKindUpstreamSemantic ErrorKind = "UpstreamSemantic"
	// ErrorKindMalformedRecord means records were present but none of them could be parsed
	ErrorKindMalformedRecord ErrorKind = "MalformedRecord"
	// ErrorKindTransport covers network errors, timeouts and bad HTTP statuses
	ErrorKindTransport ErrorKind = "Transport"
)

type UpstreamError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}

	return e.Message
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func NewTransportError(message string, err error) *UpstreamError {
	return &UpstreamError{Kind: ErrorKindTransport, Message: message, Err: err}
}

// IsKind reports whether any UpstreamError in err's chain has the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var upstreamError *UpstreamError
	if errors.As(err, &upstreamError) {
		return upstreamError.Kind == kind
	}

	return false
}
