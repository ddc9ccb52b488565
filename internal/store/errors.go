package store

import "errors"

// ErrStoreNotFound indicates a similarity query against a database that has
// never had an analysis saved into it.
var ErrStoreNotFound = errors.New("no analysis store found")
