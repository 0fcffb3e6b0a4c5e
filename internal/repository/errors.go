package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Callers
// check it with errors.Is; the wrapping message names the entity.
var ErrNotFound = errors.New("not found")
