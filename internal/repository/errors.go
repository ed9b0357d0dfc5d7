// Package repository implements the data access layer on top of
// database/sql.  Sentinel errors let handlers translate store failures
// into HTTP statuses without inspecting driver errors: ErrNotFound covers
// both missing rows and rows owned by another user, which the API treats
// identically.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a row does not exist or belongs to a
// different user. Handlers translate this into HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrEmailExists is returned on unique-key violations for email columns.
// Handlers translate this into HTTP 409 (users) or 400 (user_emails).
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
