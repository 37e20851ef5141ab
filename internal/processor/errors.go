package processor

import "errors"

// ErrResultNotFound is returned by ResultStore.GetByID when no result is
// stored under the given id.
var ErrResultNotFound = errors.New("result store: result not found")
