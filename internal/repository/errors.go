// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios without
// inspecting driver-specific errors. For example, ErrEmailExists
// signals that a sign-up collided with an existing account, so the
// auth handler can send the visitor to the login page instead of back
// to the form.
package repository

import "errors"

// ErrEmailExists is returned when a user insert violates the unique
// index on user_info.email.
var ErrEmailExists = errors.New("email already exists")

// ErrCarNotFound is returned when a referenced car id does not exist.
// Handlers should translate this into an HTTP 404 response.
var ErrCarNotFound = errors.New("car not found")
