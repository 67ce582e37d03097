package repo

import "errors"

// ErrNotFound is returned for any lookup, update or delete that matched no
// row. Handlers translate it to a 404; it is never surfaced as a panic.
var ErrNotFound = errors.New("record not found")
