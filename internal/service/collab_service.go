package service

import (
	"context"

	"taskboard/internal/feed"
	"taskboard/internal/model"
	"taskboard/internal/permission"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// CollabService owns boards, the sharing relation, and role lookups.
type CollabService struct {
	boards        BoardStore
	shares        ShareStore
	notifications NotificationStore
	users         UserDirectory
	pub           Publisher
	log           *logrus.Logger
}

func NewCollabService(
	boards BoardStore,
	shares ShareStore,
	notifications NotificationStore,
	users UserDirectory,
	pub Publisher,
	log *logrus.Logger,
) *CollabService {
	return &CollabService{
		boards:        boards,
		shares:        shares,
		notifications: notifications,
		users:         users,
		pub:           pub,
		log:           log,
	}
}

// ShareResult reports which phases of the non-atomic share sequence
// landed, so a caller-side retry can resume instead of redoing both.
type ShareResult struct {
	RefCreated          bool                  `json:"ref_created"`
	NotificationCreated bool                  `json:"notification_created"`
	Ref                 *model.SharedBoardRef `json:"ref,omitempty"`
}

// Collaborator is one row of a board's collaborator listing. The owner is
// synthesized from board.OwnerID; only non-owner roles are stored.
type Collaborator struct {
	UserID  uuid.UUID `json:"user_id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Role    string    `json:"role"`
	Status  string    `json:"status,omitempty"`
	IsOwner bool      `json:"is_owner"`
}

func (s *CollabService) CreateBoard(ctx context.Context, ownerID uuid.UUID, name, color string) (*model.Board, error) {
	if ownerID == uuid.Nil {
		return nil, ErrNoIdentity
	}
	board := &model.Board{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Name:    name,
		Color:   color,
	}
	if err := s.boards.Create(ctx, board); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, feed.BoardsTopic(ownerID))
	return board, nil
}

func (s *CollabService) UpdateBoard(ctx context.Context, boardID uuid.UUID, name, color string) (*model.Board, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}
	patch := map[string]interface{}{}
	if name != "" {
		patch["name"] = name
	}
	if color != "" {
		patch["color"] = color
	}
	if len(patch) > 0 {
		if err := s.boards.Update(ctx, boardID, patch); err != nil {
			return nil, err
		}
	}
	// SharedBoardRef projections are not refreshed here; collaborators keep
	// the name/color from share time until re-shared.
	s.pub.Publish(ctx, feed.BoardsTopic(board.OwnerID))
	return s.boards.GetByID(ctx, boardID)
}

// DeleteBoard removes the owner's board row only. Sharing refs and tasks
// are not cascaded.
func (s *CollabService) DeleteBoard(ctx context.Context, boardID uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return ErrBoardNotFound
	}
	if err := s.boards.Delete(ctx, boardID); err != nil {
		return err
	}
	s.pub.Publish(ctx, feed.BoardsTopic(board.OwnerID))
	return nil
}

func (s *CollabService) OwnBoards(ctx context.Context, userID uuid.UUID) ([]model.Board, error) {
	return s.boards.GetOwned(ctx, userID)
}

func (s *CollabService) SharedBoards(ctx context.Context, userID uuid.UUID) ([]model.SharedBoardRef, error) {
	return s.shares.GetForUser(ctx, userID)
}

// ShareBoard runs the share pipeline: board lookup, directory lookup,
// self/duplicate checks, then the two-phase write (ref into the invitee's
// namespace, invite notification). The two writes are not atomic; the
// returned ShareResult says how far the sequence got.
//
// The duplicate check races with a concurrent share of the same pair; the
// window is accepted rather than closed with a serializing transaction.
func (s *CollabService) ShareBoard(ctx context.Context, actorID, boardID uuid.UUID, inviteeEmail, role string) (ShareResult, error) {
	var res ShareResult

	if !permission.ValidCollaboratorRole(role) {
		return res, ErrInvalidRole
	}

	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return res, err
	}
	if board == nil {
		return res, ErrBoardNotFound
	}

	invitee, err := s.users.FindByEmail(ctx, inviteeEmail)
	if err != nil {
		return res, err
	}
	if invitee == nil {
		return res, ErrUserNotFound
	}

	if invitee.ID == board.OwnerID || invitee.ID == actorID {
		return res, ErrSelfShare
	}

	existing, err := s.shares.GetByUserAndBoard(ctx, invitee.ID, boardID)
	if err != nil {
		return res, err
	}
	if existing != nil {
		return res, ErrAlreadyShared
	}

	owner, err := s.users.GetByID(ctx, board.OwnerID)
	if err != nil {
		return res, err
	}
	if owner == nil {
		return res, ErrUserNotFound
	}

	ref := &model.SharedBoardRef{
		ID:         uuid.New(),
		UserID:     invitee.ID,
		BoardID:    board.ID,
		OwnerID:    board.OwnerID,
		OwnerName:  owner.Name,
		OwnerEmail: owner.Email,
		BoardName:  board.Name,
		BoardColor: board.Color,
		Role:       role,
		Status:     model.SharePending,
	}
	if err := s.shares.Create(ctx, ref); err != nil {
		return res, err
	}
	res.RefCreated = true
	res.Ref = ref

	boardIDCopy := board.ID
	ownerIDCopy := board.OwnerID
	invite := &model.Notification{
		ID:           uuid.New(),
		UserID:       invitee.ID,
		Type:         model.NotificationInvite,
		Title:        "Board invitation",
		Message:      owner.Name + " invited you to \"" + board.Name + "\"",
		BoardID:      &boardIDCopy,
		BoardName:    board.Name,
		BoardColor:   board.Color,
		FromUserID:   &ownerIDCopy,
		FromUserName: owner.Name,
		Role:         role,
		Status:       model.InvitePending,
	}
	if err := s.notifications.Create(ctx, invite); err != nil {
		// Phase two failed: a dangling ref without its notification. The
		// caller decides whether to retry that phase.
		s.log.WithError(err).WithFields(logrus.Fields{
			"board": boardID, "invitee": invitee.ID,
		}).Error("share notification write failed after ref write")
		return res, err
	}
	res.NotificationCreated = true

	s.pub.Publish(ctx, feed.SharedBoardsTopic(invitee.ID))
	s.pub.Publish(ctx, feed.NotificationsTopic(invitee.ID))
	return res, nil
}

// Collaborators lists the implicit owner row followed by the stored refs.
func (s *CollabService) Collaborators(ctx context.Context, boardID uuid.UUID) ([]Collaborator, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return nil, err
	}
	if board == nil {
		return nil, ErrBoardNotFound
	}

	out := make([]Collaborator, 0, 4)

	owner, err := s.users.GetByID(ctx, board.OwnerID)
	if err != nil {
		return nil, err
	}
	row := Collaborator{UserID: board.OwnerID, Role: string(permission.RoleOwner), IsOwner: true}
	if owner != nil {
		row.Name = owner.Name
		row.Email = owner.Email
	}
	out = append(out, row)

	refs, err := s.shares.GetByBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}
	for i := range refs {
		ref := &refs[i]
		c := Collaborator{
			UserID: ref.UserID,
			Role:   ref.Role,
			Status: ref.Status,
		}
		if u, err := s.users.GetByID(ctx, ref.UserID); err == nil && u != nil {
			c.Name = u.Name
			c.Email = u.Email
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *CollabService) RemoveCollaborator(ctx context.Context, boardID, collaboratorID uuid.UUID) error {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return ErrBoardNotFound
	}
	if collaboratorID == board.OwnerID {
		return ErrCannotRemoveOwner
	}
	if err := s.shares.Delete(ctx, boardID, collaboratorID); err != nil {
		return err
	}
	s.pub.Publish(ctx, feed.SharedBoardsTopic(collaboratorID))
	return nil
}

func (s *CollabService) ChangeCollaboratorRole(ctx context.Context, boardID, collaboratorID uuid.UUID, role string) error {
	if !permission.ValidCollaboratorRole(role) {
		return ErrInvalidRole
	}
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return err
	}
	if board == nil {
		return ErrBoardNotFound
	}
	if collaboratorID == board.OwnerID {
		return ErrCannotChangeOwnerRole
	}
	if err := s.shares.UpdateRole(ctx, boardID, collaboratorID, role); err != nil {
		return err
	}
	s.pub.Publish(ctx, feed.SharedBoardsTopic(collaboratorID))
	return nil
}

// NextBoardSelection re-applies the selection stickiness rule to the
// caller's current board lists, so the client lands on a valid board after
// a feed update.
func (s *CollabService) NextBoardSelection(ctx context.Context, userID uuid.UUID, current *BoardSelection) (*BoardSelection, error) {
	own, err := s.boards.GetOwned(ctx, userID)
	if err != nil {
		return nil, err
	}
	shared, err := s.shares.GetForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return NextSelection(current, own, shared), nil
}

// RoleForBoard is the one-off async role check against the store, for
// callers that do not already hold the board and ref state.
func (s *CollabService) RoleForBoard(ctx context.Context, userID, boardID uuid.UUID) (permission.Role, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return permission.RoleNone, err
	}
	if board == nil {
		return permission.RoleNone, nil
	}
	if board.OwnerID == userID {
		return permission.RoleOwner, nil
	}
	ref, err := s.shares.GetByUserAndBoard(ctx, userID, boardID)
	if err != nil {
		return permission.RoleNone, err
	}
	return permission.ResolveRef(ref), nil
}
