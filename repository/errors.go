package repository

import "errors"

var (
	// ErrAuthenticationFailed is returned when the username is unknown or the password does not match.
	ErrAuthenticationFailed = errors.New("authentication failed")
	// ErrUsernameTaken is returned when registering a username that already exists.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrPositionOutOfRange is returned when a delete targets a position outside the ledger.
	ErrPositionOutOfRange = errors.New("position out of range")
	// ErrNoDataToClear is returned when clearing a ledger that has no persisted storage.
	ErrNoDataToClear = errors.New("no data to clear")
	// ErrStorageUnavailable wraps unreadable or corrupt backing storage.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrStaleDeposit is returned when the record at a position no longer matches what the caller saw.
	ErrStaleDeposit = errors.New("deposit at position changed")
)
