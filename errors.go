package appstore

import (
	"errors"
	"fmt"
)

// Standard error definitions

var (
	// ErrInvalidTransactionID indicates an empty transaction identifier
	// was supplied. No network request is made.
	ErrInvalidTransactionID = errors.New("invalid transaction id")

	// ErrInvalidKey indicates the signing key material could not be
	// interpreted as an ECDSA P-256 private key.
	ErrInvalidKey = errors.New("invalid signing key")

	// ErrSigningFailed indicates the signing primitive rejected the input.
	ErrSigningFailed = errors.New("token signing failed")

	// ErrRequestFailed indicates a transport-level failure where no HTTP
	// response was obtained. Callers may retry per their own policy.
	ErrRequestFailed = errors.New("request failed")

	// ErrMalformedResponse indicates a success response whose body does
	// not match the expected shape.
	ErrMalformedResponse = errors.New("malformed response")
)

// APIError represents an explicit rejection from the App Store Server
// API. It carries the HTTP status code together with the API's own
// error code and message so callers can branch on Apple's error
// taxonomy (e.g. "transaction not found" vs "invalid credentials").
//
// APIError implements the error interface and is retrieved with
// errors.As:
//
//	var apiErr *appstore.APIError
//	if errors.As(err, &apiErr) {
//	    log.Printf("rejected [%d]: %d %s", apiErr.StatusCode, apiErr.ErrorCode, apiErr.ErrorMessage)
//	}
type APIError struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int

	// ErrorCode is the API's numeric error code (e.g. 4040010 for a
	// transaction id that was not found). Zero if the error body could
	// not be parsed.
	ErrorCode int64

	// ErrorMessage is the human-readable message from the error body,
	// or a generic placeholder if the body could not be parsed.
	ErrorMessage string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.ErrorCode != 0 {
		return fmt.Sprintf("app store api error [%d]: %d %s", e.StatusCode, e.ErrorCode, e.ErrorMessage)
	}
	return fmt.Sprintf("app store api error [%d]: %s", e.StatusCode, e.ErrorMessage)
}
