package solver

import "errors"

var (
	// ErrNoItemsRequested is returned when the request contains no items.
	ErrNoItemsRequested = errors.New("at least one item must be requested")
	// ErrNoCoveringSelection is returned when no selection of a vendor's bundles covers the requested items.
	ErrNoCoveringSelection = errors.New("no selection of bundles covers the requested items")
	// ErrNoVendor is returned when no vendor in the catalog can supply all requested items.
	ErrNoVendor = errors.New("no vendor can supply all requested items")
)
