// Package repository contains data access logic separated from HTTP
// handlers. Sentinel errors defined here let handlers map failures onto
// HTTP statuses without inspecting driver-specific error strings.
package repository

import "errors"

// ErrNotFound is returned when a referenced entity does not exist (or, for
// owner-scoped lookups, is not visible to the caller). Handlers translate
// it into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned when registering a user with an email that is
// already taken. Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")

// ErrNameExists is returned when creating a category whose name is already
// taken. Handlers translate it into HTTP 409.
var ErrNameExists = errors.New("name already exists")
