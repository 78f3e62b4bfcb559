package repository

import "errors"

// Storage-level sentinels. Implementations map driver errors onto these so
// services never inspect driver details.
var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("unique constraint violation")
)
