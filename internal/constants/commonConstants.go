package constants

type (
	RequestSource string
	APIStatus     string
	CachePrefix   string
)

const (
	RequestSourceAPI RequestSource = "API"
	RequestSourceCLI RequestSource = "CLI"

	APIStatusOk    APIStatus = "ok"
	APIStatusError APIStatus = "error"

	CachePrefixConflictSweep CachePrefix = "CONFLICTS_"
	CachePrefixLoadWarnings  CachePrefix = "LOAD_WARNINGS_"
)
