package buildinfo

// Set at build time via -ldflags "-X github.com/ferg-cod3s/opencode-nexus/internal/buildinfo.Version=...".
var (
	Version = "1.0.0"
	Commit  = "none"
	BuiltAt = "unknown"
)
