// Package observability collects request metrics and exposes the
// Server-Timing helpers shared by the HTTP layer.
package observability

import (
	"fmt"
	"net/http"
)

// AppendServerTiming adds one Server-Timing entry. Zero or negative
// durations are omitted so idle stages don't clutter the header.
func AppendServerTiming(w http.ResponseWriter, name string, durMs float64, desc string) {
	switch {
	case durMs > 0 && desc != "":
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.2f;desc=%q", name, durMs, desc))
	case durMs > 0:
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;dur=%.2f", name, durMs))
	case desc != "":
		w.Header().Add("Server-Timing", fmt.Sprintf("%s;desc=%q", name, desc))
	}
}

// SetIfPos sets a timing header only when the measurement is positive.
func SetIfPos(w http.ResponseWriter, key string, ms float64) {
	if ms > 0 {
		w.Header().Set(key, fmt.Sprintf("%.2f", ms))
	}
}
