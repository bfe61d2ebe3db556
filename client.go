// Package appstore is a client for the App Store Server API transaction
// lookup endpoint. It mints a fresh signed bearer token per request and
// maps every failure to a distinct, typed error.
package appstore

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// transactionPath is the endpoint path template, completed with the
// escaped transaction identifier.
const transactionPath = "/inApps/v1/transactions/"

// tokenIssuer is an interface for bearer token minting, allowing tests
// to substitute a mock issuer.
type tokenIssuer interface {
	IssueToken() (string, error)
}

// Client calls the App Store Server API. Its credentials and
// environment are fixed at construction, so a Client is safe for
// concurrent use; each call mints its own token and issues its own
// request.
//
// Example usage:
//
//	client, err := appstore.NewClient(appstore.Credentials{
//	    SigningKey: privateKeyPEM,
//	    KeyID:      "2X9R4HXF34",
//	    IssuerID:   "57246542-96fe-1a63-e053-0824d011072a",
//	    BundleID:   "com.example.app",
//	}, appstore.EnvironmentSandbox)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	info, err := client.GetTransactionInfo(ctx, "1234567890")
type Client struct {
	baseURL    string
	httpClient *http.Client
	issuer     tokenIssuer
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// NewClient creates a client for the given credentials and environment.
// The signing key is parsed once here; invalid key material fails with
// an error wrapping ErrInvalidKey.
func NewClient(creds Credentials, env Environment, opts ...ClientOption) (*Client, error) {
	baseURL := env.BaseURL()
	if baseURL == "" {
		return nil, fmt.Errorf("unknown environment: %d", env)
	}

	issuer, err := NewTokenIssuer(creds)
	if err != nil {
		return nil, err
	}

	client := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		issuer: issuer,
	}

	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}

	return client, nil
}

// WithHTTPClient sets a custom underlying HTTP client. Per-call
// deadlines are driven through the context passed to each operation.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) error {
		if httpClient == nil {
			return fmt.Errorf("http client must not be nil")
		}
		c.httpClient = httpClient
		return nil
	}
}

// GetTransactionInfo fetches the signed transaction record for the
// given transaction identifier. Exactly one token is minted and one
// request issued per call; ctx carries cancellation and any deadline.
//
// Failures are typed:
//   - ErrInvalidTransactionID for an empty id, before any network activity
//   - an error wrapping ErrSigningFailed if the token cannot be minted
//   - *APIError when the API explicitly rejected the request
//   - an error wrapping ErrRequestFailed when no response was obtained
//   - an error wrapping ErrMalformedResponse when a success body lacks
//     the signedTransactionInfo field
func (c *Client) GetTransactionInfo(ctx context.Context, transactionID string) (*TransactionInfoResponse, error) {
	if transactionID == "" {
		return nil, ErrInvalidTransactionID
	}

	token, err := c.issuer.IssueToken()
	if err != nil {
		return nil, err
	}

	reqURL := c.baseURL + transactionPath + url.PathEscape(transactionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apiErrorFromResponse(resp.StatusCode, body)
	}

	var info TransactionInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if info.SignedTransactionInfo == "" {
		return nil, fmt.Errorf("%w: missing signedTransactionInfo", ErrMalformedResponse)
	}

	return &info, nil
}

// apiErrorFromResponse builds an APIError from a non-2xx response. A
// body that cannot be parsed never masks the HTTP failure: the status
// code is preserved and the error fields fall back to placeholders.
func apiErrorFromResponse(statusCode int, body []byte) *APIError {
	apiErr := &APIError{
		StatusCode:   statusCode,
		ErrorMessage: "unknown error",
	}

	var parsed errorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return apiErr
	}
	if parsed.ErrorCode == 0 && parsed.ErrorMessage == "" {
		return apiErr
	}

	apiErr.ErrorCode = parsed.ErrorCode
	apiErr.ErrorMessage = parsed.ErrorMessage
	return apiErr
}
