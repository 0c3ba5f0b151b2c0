package domain

import "errors"

var (
	// ErrUnsupportedFacet signals a facet whose type is neither range nor terms.
	ErrUnsupportedFacet = errors.New("unsupported facet type")
	// ErrSearchEngine signals a search engine transport or response failure.
	ErrSearchEngine = errors.New("search engine error")
	// ErrInvalidRequest signals a malformed inbound request.
	ErrInvalidRequest = errors.New("invalid request")
)
