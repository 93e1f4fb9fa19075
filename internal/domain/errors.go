package domain

import "errors"

var (
	// ErrNotFound is returned by the repository when no store matches.
	ErrNotFound = errors.New("store not found")

	// ErrInvalidIdentifier marks identifiers that fail syntactic validation:
	// non-positive numbers, malformed or too-short place ids.
	ErrInvalidIdentifier = errors.New("invalid store identifier")

	// ErrDuplicatePlaceID is the repository's unique-constraint signal on
	// insert. The resolver handles it with a read-repair re-query; callers
	// outside the resolver should never see it.
	ErrDuplicatePlaceID = errors.New("place id already registered")

	// ErrStoreCreationFailed means the insert failed even after the
	// duplicate-driven re-query. Retryable; storage detail stays internal.
	ErrStoreCreationFailed = errors.New("store creation failed")

	// ErrMissingSummaryContent guards notification dispatch: a message with
	// both summaries empty must fail fast instead of going out blank.
	ErrMissingSummaryContent = errors.New("both order summaries are empty")

	// ErrNoItemName is raised by the composer when a raw order line carries
	// no extractable name under any of the legacy key spellings.
	ErrNoItemName = errors.New("order item has no name")
)
