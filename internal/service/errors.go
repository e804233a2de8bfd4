package service

import "errors"

// Service-level errors. Handlers map these onto HTTP statuses; messages
// are shown inline in the UI forms.
var (
	ErrNoIdentity            = errors.New("no authenticated identity")
	ErrBoardNotFound         = errors.New("board not found")
	ErrUserNotFound          = errors.New("no account exists for that email")
	ErrSelfShare             = errors.New("cannot share a board with yourself")
	ErrAlreadyShared         = errors.New("board is already shared with that user")
	ErrInvalidRole           = errors.New("invalid collaborator role")
	ErrCannotRemoveOwner     = errors.New("cannot remove the board owner")
	ErrCannotChangeOwnerRole = errors.New("cannot change the board owner's role")
	ErrTaskNotFound          = errors.New("task not found")
	ErrNotificationNotFound  = errors.New("notification not found")
	ErrNotRecipient          = errors.New("notification belongs to another user")
	ErrNotInvite             = errors.New("notification is not an invite")
	ErrInviteResolved        = errors.New("invite already resolved")
	ErrPendingInvite         = errors.New("pending invites must be accepted or rejected")
)
