package appstore

import (
	"errors"
	"fmt"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *APIError
		want string
	}{
		{
			name: "with api error code",
			err: &APIError{
				StatusCode:   404,
				ErrorCode:    4040010,
				ErrorMessage: "Transaction id not found.",
			},
			want: "app store api error [404]: 4040010 Transaction id not found.",
		},
		{
			name: "without api error code",
			err: &APIError{
				StatusCode:   502,
				ErrorMessage: "unknown error",
			},
			want: "app store api error [502]: unknown error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAPIError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", &APIError{StatusCode: 404, ErrorCode: 4040010})

	var apiErr *APIError
	if !errors.As(wrapped, &apiErr) {
		t.Fatal("expected errors.As to unwrap *APIError")
	}
	if apiErr.StatusCode != 404 {
		t.Errorf("expected status code 404, got %d", apiErr.StatusCode)
	}
}

func TestSentinelErrorsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidTransactionID,
		ErrInvalidKey,
		ErrSigningFailed,
		ErrRequestFailed,
		ErrMalformedResponse,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("expected %v and %v to be distinct", a, b)
			}
		}
	}
}
