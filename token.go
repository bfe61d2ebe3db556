package appstore

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"time"

	"gopkg.in/square/go-jose.v2"
	"gopkg.in/square/go-jose.v2/jwt"
)

const (
	// tokenAudience is the audience claim fixed by the App Store Server
	// API authentication contract.
	tokenAudience = "appstoreconnect-v1"

	// tokenTTL bounds the validity of a minted token. Tokens are never
	// reused across calls, so the window only limits the blast radius
	// of a leaked token.
	tokenTTL = 5 * time.Minute
)

// TokenIssuer mints the short-lived ES256 bearer tokens that
// authenticate requests to the App Store Server API.
//
// TokenIssuer is immutable after construction and safe for concurrent
// use. The private key is parsed once and cached; every call to
// IssueToken produces a fresh token.
type TokenIssuer struct {
	keyID    string
	issuerID string
	bundleID string

	// privateKey is the parsed signing key, cached to avoid repeated
	// PEM parsing.
	privateKey *ecdsa.PrivateKey
}

// tokenClaims is the claims set of a minted token. It extends the
// standard claims with the bundle identifier claim required by the API.
type tokenClaims struct {
	*jwt.Claims
	BundleID string `json:"bid"`
}

// NewTokenIssuer parses the PEM-encoded signing key and returns an
// issuer for the given credentials.
//
// The key must be an ECDSA P-256 private key in PKCS#8 form (App Store
// Connect ships .p8 files) or the legacy SEC1 form; anything else fails
// with an error wrapping ErrInvalidKey. The key is imported from the
// in-memory PEM text only, never loaded from disk.
func NewTokenIssuer(creds Credentials) (*TokenIssuer, error) {
	if creds.KeyID == "" {
		return nil, fmt.Errorf("keyID must not be empty")
	}
	if creds.IssuerID == "" {
		return nil, fmt.Errorf("issuerID must not be empty")
	}
	if creds.BundleID == "" {
		return nil, fmt.Errorf("bundleID must not be empty")
	}

	block, _ := pem.Decode([]byte(creds.SigningKey))
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}

	var key *ecdsa.PrivateKey
	if parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes); err == nil {
		ecKey, ok := parsed.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an ECDSA key", ErrInvalidKey)
		}
		key = ecKey
	} else {
		key, err = x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
	}

	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: ES256 requires a P-256 key, got %s", ErrInvalidKey, key.Curve.Params().Name)
	}

	return &TokenIssuer{
		keyID:      creds.KeyID,
		issuerID:   creds.IssuerID,
		bundleID:   creds.BundleID,
		privateKey: key,
	}, nil
}

// IssueToken mints a fresh signed bearer token scoped to the issuer's
// credentials. Each token authenticates exactly one request and must
// not be persisted or logged.
//
// The token is a compact ES256 JWT with a kid header identifying the
// signing key and the following claims:
//   - iss: issuer identifier
//   - iat: current time
//   - exp: current time + 5 minutes
//   - aud: "appstoreconnect-v1"
//   - bid: bundle identifier
func (t *TokenIssuer) IssueToken() (string, error) {
	sig, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.ES256, Key: t.privateKey},
		(&jose.SignerOptions{}).WithType("JWT").WithHeader("kid", t.keyID),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	now := time.Now()
	claims := &tokenClaims{
		Claims: &jwt.Claims{
			Issuer:   t.issuerID,
			IssuedAt: jwt.NewNumericDate(now),
			Expiry:   jwt.NewNumericDate(now.Add(tokenTTL)),
			Audience: jwt.Audience{tokenAudience},
		},
		BundleID: t.bundleID,
	}

	token, err := jwt.Signed(sig).Claims(claims).CompactSerialize()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigningFailed, err)
	}

	return token, nil
}
