package service

import (
	"taskboard/internal/model"

	"github.com/google/uuid"
)

// BoardSelection identifies the board the client is currently viewing.
type BoardSelection struct {
	BoardID uuid.UUID `json:"board_id"`
	Shared  bool      `json:"shared"`
}

// NextSelection applies the selection stickiness rule after a feed update.
//
// A selected shared board stays selected through any change to the own
// list; it is only dropped when the share itself disappeared. An own
// selection that no longer exists falls back to the first own board
// (own is ordered createdAt ascending by the store).
func NextSelection(current *BoardSelection, own []model.Board, shared []model.SharedBoardRef) *BoardSelection {
	if current != nil {
		if current.Shared {
			for i := range shared {
				if shared[i].BoardID == current.BoardID {
					return current
				}
			}
		} else {
			for i := range own {
				if own[i].ID == current.BoardID {
					return current
				}
			}
		}
	}
	if len(own) > 0 {
		return &BoardSelection{BoardID: own[0].ID}
	}
	return nil
}
