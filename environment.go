package appstore

// Environment selects which App Store Server API deployment a Client
// talks to.
type Environment int

const (
	// EnvironmentSandbox targets the sandbox deployment used during
	// development and testing.
	EnvironmentSandbox Environment = iota
	// EnvironmentProduction targets the live App Store.
	EnvironmentProduction
)

// Base URLs are fixed by the App Store Server API and are not
// configurable beyond the environment choice.
const (
	sandboxBaseURL    = "https://api.storekit-sandbox.itunes.apple.com"
	productionBaseURL = "https://api.storekit.itunes.apple.com"
)

// String returns a human-readable representation of the Environment.
func (e Environment) String() string {
	switch e {
	case EnvironmentSandbox:
		return "Sandbox"
	case EnvironmentProduction:
		return "Production"
	default:
		return "Unknown"
	}
}

// BaseURL returns the API base URL for the environment, or an empty
// string for an unrecognized value.
func (e Environment) BaseURL() string {
	switch e {
	case EnvironmentSandbox:
		return sandboxBaseURL
	case EnvironmentProduction:
		return productionBaseURL
	default:
		return ""
	}
}
