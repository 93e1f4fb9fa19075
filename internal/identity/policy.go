package identity

import (
	"strings"

	"github.com/ordermate/backend/internal/config"
)

// PlaceIDPolicy decides whether a string is syntactically acceptable as an
// external place id. It is pluggable: the prefix rule below matches the
// mapping provider we integrate with today and is business policy, not a
// provider guarantee.
type PlaceIDPolicy interface {
	Valid(placeID string) bool
}

type PrefixPolicy struct {
	Prefix string
	MinLen int
}

func NewPrefixPolicy(cfg config.PlaceID) PrefixPolicy {
	p := PrefixPolicy{Prefix: cfg.Prefix, MinLen: cfg.MinLen}
	if p.Prefix == "" {
		p.Prefix = "ChIJ"
	}
	if p.MinLen < len(p.Prefix) {
		p.MinLen = 10
	}
	return p
}

func (p PrefixPolicy) Valid(placeID string) bool {
	return len(placeID) >= p.MinLen && strings.HasPrefix(placeID, p.Prefix)
}
