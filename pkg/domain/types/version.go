package types

// Version is overwritten at build time with -ldflags
var Version = "dev"

const (
	// ServiceName is reported by the health endpoint
	ServiceName = "commet"

	// MaxRepositories is the ceiling for a multi-project analysis
	MaxRepositories = 5

	// DefaultCommitsLimit is used when a request does not set commits_limit
	DefaultCommitsLimit = 10
)
