package identity

import "time"

type ResolveSource string

const (
	// SourceIdentity means the identifier already was a store id; no
	// storage was touched.
	SourceIdentity ResolveSource = "identity"
	SourceCache    ResolveSource = "cache"
	SourceDB       ResolveSource = "db"
	SourceCreated  ResolveSource = "created"
)

type ResolveStats struct {
	Source  ResolveSource
	CacheMs float64
	DBMs    float64
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
