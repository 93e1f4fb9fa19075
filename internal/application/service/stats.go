package service

import (
	"time"

	"github.com/ordermate/backend/internal/identity"
)

type SummaryStats struct {
	ComposeMs float64
	BuildMs   float64
}

// ProcessStats aggregates the timings of one full order pass. Resolve
// carries the identity lookup breakdown; DispatchMs is zero when the caller
// only asked for the summary.
type ProcessStats struct {
	Resolve    identity.ResolveStats
	Summary    SummaryStats
	DispatchMs float64
}

func convertToMs(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000.0
}
