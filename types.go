package appstore

// Credentials holds the App Store Connect API credentials a Client
// authenticates with. All fields are required and immutable once the
// client is constructed.
type Credentials struct {
	// SigningKey is the PEM-encoded ECDSA P-256 private key downloaded
	// from App Store Connect (the contents of the .p8 file).
	SigningKey string

	// KeyID is the identifier of the signing key (e.g. "2X9R4HXF34").
	KeyID string

	// IssuerID is the issuer identifier of the App Store Connect team.
	IssuerID string

	// BundleID is the bundle identifier of the app (e.g. "com.example.app").
	BundleID string
}

// TransactionInfoResponse is the response body of the transaction
// lookup endpoint.
type TransactionInfoResponse struct {
	// SignedTransactionInfo is the transaction record, signed by the
	// App Store in JWS format. It is returned verbatim; decoding and
	// verification are left to the caller.
	SignedTransactionInfo string `json:"signedTransactionInfo"`
}

// errorResponse is the JSON body the API returns with non-2xx statuses.
type errorResponse struct {
	ErrorCode    int64  `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}
