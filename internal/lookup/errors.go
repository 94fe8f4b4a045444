package lookup

import "errors"

var (
	// ErrBadStatus is returned when the API answers with a non-200 status.
	ErrBadStatus = errors.New("lookup: unexpected status")

	// ErrNoQuery marks a response without a query block, which is how the API
	// reports a search with no matches.
	ErrNoQuery = errors.New("lookup: response has no query")
)
