package playground

import goversion "github.com/hashicorp/go-version"

// knownVersions lists the query-builder releases the playground ships type
// definitions for, oldest first. DefaultKyselyVersion must be the last entry.
var knownVersions = []string{
	"0.23.5",
	"0.24.2",
	"0.25.0",
	"0.26.3",
	"0.27.2",
}

// KnownVersions returns the supported library versions, oldest first.
func KnownVersions() []string {
	out := make([]string, len(knownVersions))
	copy(out, knownVersions)
	return out
}

// LatestVersion returns the newest supported library version.
func LatestVersion() string {
	return knownVersions[len(knownVersions)-1]
}

// ResolveVersion maps a requested version string onto a supported release.
// A known version resolves to itself. A parseable but unknown version
// resolves to the newest supported release that does not exceed it, so a
// session saved against 0.26.1 loads with the 0.26.x types rather than
// failing. Unparseable input resolves to the default.
func ResolveVersion(s string) string {
	req, err := goversion.NewVersion(s)
	if err != nil {
		return DefaultKyselyVersion
	}

	best := ""
	for _, known := range knownVersions {
		kv, err := goversion.NewVersion(known)
		if err != nil {
			continue
		}
		if kv.LessThanOrEqual(req) {
			best = known
		}
	}
	if best == "" {
		// Requested version predates everything we ship; use the oldest.
		return knownVersions[0]
	}
	return best
}
