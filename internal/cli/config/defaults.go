package config

// Default configuration values.
const (
	DefaultPort      = 8765
	DefaultBaseURL   = "http://localhost:8765"
	DefaultStateFile = ".querypad/shares.db"
	DefaultSharesDir = ".querypad/shares"
	DefaultProvider  = "url"

	// DefaultSessionSecret is only for local development; deployments
	// should set QUERYPAD_SESSION_SECRET.
	DefaultSessionSecret = "querypad-dev-secret-change-in-production" //nolint:gosec
)
