// Package repository contains data access logic separated from HTTP
// handlers.  This file defines sentinel errors reused across repositories
// so higher layers can distinguish failure scenarios with errors.Is.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// reservation they neither own nor created.  Handlers should translate
// this into an HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a write cannot proceed because of existing
// state, such as booking a desk that already has an active reservation for
// the requested date.  Handlers should translate this into an HTTP 409.
var ErrConflict = errors.New("conflict")
