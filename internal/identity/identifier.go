package identity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/ordermate/backend/internal/domain"
)

// Identifier is the canonical form of the three accepted identifier shapes:
// a numeric store id, a digit-only string carrying one, or an external
// place id. Exactly one of the two fields is meaningful.
type Identifier struct {
	StoreID int64
	PlaceID string
}

func (id Identifier) IsPlace() bool { return id.PlaceID != "" }

func (id Identifier) String() string {
	if id.IsPlace() {
		return id.PlaceID
	}
	return strconv.FormatInt(id.StoreID, 10)
}

// ParseIdentifier canonicalizes the shapes a decoded JSON payload can carry:
// numbers, digit-only strings and place-id strings. Positivity and place-id
// syntax are checked later by the resolver, not here.
func ParseIdentifier(v any) (Identifier, error) {
	switch t := v.(type) {
	case int:
		return Identifier{StoreID: int64(t)}, nil
	case int32:
		return Identifier{StoreID: int64(t)}, nil
	case int64:
		return Identifier{StoreID: t}, nil
	case float64:
		if t != math.Trunc(t) {
			return Identifier{}, fmt.Errorf("%w: %v", domain.ErrInvalidIdentifier, t)
		}
		return Identifier{StoreID: int64(t)}, nil
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return Identifier{}, fmt.Errorf("%w: empty identifier", domain.ErrInvalidIdentifier)
		}
		if isDigits(s) {
			n, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				return Identifier{}, fmt.Errorf("%w: %q", domain.ErrInvalidIdentifier, s)
			}
			return Identifier{StoreID: n}, nil
		}
		return Identifier{PlaceID: s}, nil
	default:
		return Identifier{}, fmt.Errorf("%w: unsupported identifier type %T", domain.ErrInvalidIdentifier, v)
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
