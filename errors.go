package qrng

import (
	"errors"
	"fmt"
)

var (
	// When Open is called with an empty or unusable appliance address
	ErrInvalidAddress = errors.New("invalid appliance address")
	// When the HTTP transport cannot be set up at Open
	ErrTransportInit = errors.New("transport initialization failed")
	// When a GET fails or the appliance answers with a non-2xx status
	ErrTransport = errors.New("transport error")
	// When a rendered request URL exceeds MaxURLLength
	ErrURLTooLong = errors.New("request url too long")
	// When a value response is not a bracketed, comma-separated list
	ErrMalformedResponse = errors.New("malformed response")
	// When the appliance returns fewer values than requested
	ErrTokenCountMismatch = errors.New("token count mismatch")
	// When zero (or fewer) samples are requested
	ErrInvalidSampleCount = errors.New("samples must be at least 1")
	// When min > max in a ranged request
	ErrInvalidRange = errors.New("min cannot be greater than max")
	// When a buffered response grows past the configured maximum
	ErrResponseTooLarge = errors.New("response exceeds maximum size")
	// When a request is issued on a closed client
	ErrClosed = errors.New("client is closed")
)

// TransportError describes a failed exchange with the appliance.
// StatusCode is zero when no HTTP response was received.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("transport error: GET %s: unexpected status code: %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("transport error: GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// TokenCountMismatchError reports a value response that carried fewer
// tokens than the number of samples requested.
type TokenCountMismatchError struct {
	Want int
	Got  int
}

func (e *TokenCountMismatchError) Error() string {
	return fmt.Sprintf("token count mismatch: expected %d values, got %d", e.Want, e.Got)
}

func (e *TokenCountMismatchError) Is(target error) bool { return target == ErrTokenCountMismatch }
