package gateway

import "errors"

// ErrNotFound is returned when the metadata service reports no match or no
// such record.
var ErrNotFound = errors.New("not found")

// ErrBadRequest is returned when the metadata service rejects the request.
var ErrBadRequest = errors.New("bad request")
