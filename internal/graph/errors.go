package graph

import "errors"

var (
	// ErrInvalidParent indicates an add or move that would break the
	// Building → Controller → Equipment → Point adjacency rule.
	ErrInvalidParent = errors.New("invalid parent for object kind")
	// ErrObjectNotFound indicates a referenced object id does not exist.
	ErrObjectNotFound = errors.New("object not found")
)
