package handler

import (
	"net/http"

	"taskboard/internal/permission"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct {
	collab CollabAPI
}

func NewBoardHandler(collab CollabAPI) *BoardHandler {
	return &BoardHandler{collab: collab}
}

type BoardRequest struct {
	Name  string `json:"name" binding:"required"`
	Color string `json:"color"`
}

func (h *BoardHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.collab.CreateBoard(c.Request.Context(), userID, req.Name, req.Color)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, board)
}

// GetAll returns the caller's own boards, oldest first.
func (h *BoardHandler) GetAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	boards, err := h.collab.OwnBoards(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve boards"})
		return
	}

	c.JSON(http.StatusOK, boards)
}

type SelectionRequest struct {
	BoardID *uuid.UUID `json:"board_id"`
	Shared  bool       `json:"shared"`
}

// Selection recomputes which board the client should display after its
// board lists changed. A selected shared board sticks unless the share
// itself disappeared; a vanished own selection falls back to the first
// own board.
func (h *BoardHandler) Selection(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	var current *service.BoardSelection
	if req.BoardID != nil {
		current = &service.BoardSelection{BoardID: *req.BoardID, Shared: req.Shared}
	}

	next, err := h.collab.NextBoardSelection(c.Request.Context(), userID, current)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"selection": next})
}

// Update patches a board's name/color. Only the owner may do this.
func (h *BoardHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.collab.RoleForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if role != permission.RoleOwner {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the board owner can update the board"})
		return
	}

	var req BoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	board, err := h.collab.UpdateBoard(c.Request.Context(), boardID, req.Name, req.Color)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, board)
}

// Delete removes a board; the policy reserves this to the owner.
func (h *BoardHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, err := h.collab.RoleForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !permission.CanDeleteBoard(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the board owner can delete the board"})
		return
	}

	if err := h.collab.DeleteBoard(c.Request.Context(), boardID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board deleted"})
}
