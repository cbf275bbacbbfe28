package repository

import "errors"

var (
	// ErrNotInstalled indicates the install directory contains no git
	// repository. Update-style operations must fail with this before any
	// network contact is attempted.
	ErrNotInstalled = errors.New("skills are not installed")

	// ErrAlreadyInstalled indicates the install directory already contains
	// the expected repository. Install treats this as a no-op.
	ErrAlreadyInstalled = errors.New("skills are already installed")
)
