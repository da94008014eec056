package version

// Build information set by ldflags
var (
	Version = "dev" // -X github.com/arthur-debert/mydot/internal/version.Version={{.Version}}
	Commit  = ""    // -X github.com/arthur-debert/mydot/internal/version.Commit={{.Commit}}
	Date    = ""    // -X github.com/arthur-debert/mydot/internal/version.Date={{.Date}}
)
