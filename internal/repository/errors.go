package repository

import "errors"

// Common repository errors
var (
	// ErrNotificationNotFound is returned when a status update matches no row
	ErrNotificationNotFound = errors.New("notification not found")

	// ErrInviteAlreadyResolved is returned when a pending-only transition
	// targets an invite that already reached a terminal state
	ErrInviteAlreadyResolved = errors.New("invite already resolved")
)
