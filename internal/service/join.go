package service

// JoinMode controls how composite views treat dangling foreign keys. The
// lenient policy is load-bearing: composite views rely on stale references
// being dropped from the result instead of failing the whole read.
type JoinMode int

const (
	// JoinLenient silently omits branches whose referenced rows are missing.
	JoinLenient JoinMode = iota
	// JoinStrict surfaces a dangling reference as a not-found error.
	JoinStrict
)
