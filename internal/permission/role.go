package permission

import (
	"taskboard/internal/model"

	"github.com/google/uuid"
)

// Role is the effective capability level of a user on one board.
type Role string

const (
	RoleNone   Role = ""
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleEditor Role = "editor"
	RoleViewer Role = "viewer"
)

// ParseRole maps a stored role string to a Role. A malformed role on an
// existing share degrades to viewer rather than granting nothing.
func ParseRole(s string) Role {
	switch s {
	case "owner":
		return RoleOwner
	case "admin":
		return RoleAdmin
	case "editor":
		return RoleEditor
	case "viewer":
		return RoleViewer
	default:
		return RoleViewer
	}
}

// ValidCollaboratorRole reports whether s is a role that may be granted
// to a collaborator.
// Owner is implicit from board ownership and is never granted.
func ValidCollaboratorRole(s string) bool {
	switch s {
	case "admin", "editor", "viewer":
		return true
	}
	return false
}

// Resolve computes the user's role on a board from already-loaded state.
// Ownership wins; otherwise an active SharedBoardRef for the board decides.
// Pending and rejected refs grant nothing: the row exists from share time,
// but access only materializes once the invite is accepted.
func Resolve(userID uuid.UUID, board *model.Board, refs []model.SharedBoardRef) Role {
	if board == nil {
		return RoleNone
	}
	if board.OwnerID == userID {
		return RoleOwner
	}
	for i := range refs {
		ref := &refs[i]
		if ref.UserID == userID && ref.BoardID == board.ID && ref.Status == model.ShareActive {
			return ParseRole(ref.Role)
		}
	}
	return RoleNone
}

// ResolveRef is the shared-board variant of Resolve, for callers holding
// only the invitee-side projection.
func ResolveRef(ref *model.SharedBoardRef) Role {
	if ref == nil || ref.Status != model.ShareActive {
		return RoleNone
	}
	return ParseRole(ref.Role)
}
