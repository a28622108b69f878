// Package repository defines the persistence error taxonomy shared by the
// store implementations and their callers. Handlers branch on these
// sentinels to pick a response class; anything not wrapped in one of them is
// a store failure and maps to an internal error.
package repository

import "errors"

var (
	// ErrDuplicateEmail is returned when a contact insert hits the unique
	// constraint on email. The comparison is exact: no case folding.
	ErrDuplicateEmail = errors.New("a contact with that email already exists")

	// ErrDuplicateName is returned when a program insert hits the unique
	// constraint on name.
	ErrDuplicateName = errors.New("a program with that name already exists")

	// ErrContactNotFound is returned by contact lookups that miss.
	ErrContactNotFound = errors.New("contact not found")

	// ErrProgramNotFound is returned by program lookups that miss.
	ErrProgramNotFound = errors.New("program not found")
)
