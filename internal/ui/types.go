package ui

// ShareResponse describes a freshly created share.
type ShareResponse struct {
	Provider string `json:"provider"`
	Value    string `json:"value"`
	URL      string `json:"url"`
}

// MetaResponse lists what the playground supports.
type MetaResponse struct {
	Dialects      []string `json:"dialects"`
	Providers     []string `json:"providers"`
	Versions      []string `json:"versions"`
	LatestVersion string   `json:"latestVersion"`
}

// RecentResponse lists share links recently touched by this browser session.
type RecentResponse struct {
	Shares []string `json:"shares"`
}

// ErrorResponse carries a user-facing error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
