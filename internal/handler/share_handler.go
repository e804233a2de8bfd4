package handler

import (
	"net/http"

	"taskboard/internal/permission"

	"github.com/gin-gonic/gin"
)

type ShareHandler struct {
	collab CollabAPI
}

func NewShareHandler(collab CollabAPI) *ShareHandler {
	return &ShareHandler{collab: collab}
}

type ShareBoardRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required,oneof=admin editor viewer"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=admin editor viewer"`
}

// Share invites a registered user to a board by email. Owners and admins
// only.
func (h *ShareHandler) Share(c *gin.Context) {
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
	if !permission.CanShareBoard(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot share this board"})
		return
	}

	var req ShareBoardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.collab.ShareBoard(c.Request.Context(), userID, boardID, req.Email, req.Role)
	if err != nil {
		// A partially-landed share still reports which phase succeeded.
		if result.RefCreated {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":  "Share partially completed",
				"result": result,
			})
			return
		}
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Board shared successfully", "result": result})
}

// Collaborators lists the implicit owner and the invited users.
func (h *ShareHandler) Collaborators(c *gin.Context) {
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
	if role == permission.RoleNone {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this board"})
		return
	}

	collaborators, err := h.collab.Collaborators(c.Request.Context(), boardID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, collaborators)
}

func (h *ShareHandler) RemoveCollaborator(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	role, err := h.collab.RoleForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !permission.CanManageCollaborators(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot manage collaborators on this board"})
		return
	}

	if err := h.collab.RemoveCollaborator(c.Request.Context(), boardID, targetID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator removed"})
}

func (h *ShareHandler) ChangeRole(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	var req ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	role, err := h.collab.RoleForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return
	}
	if !permission.CanChangeRole(role, false) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot change roles on this board"})
		return
	}

	if err := h.collab.ChangeCollaboratorRole(c.Request.Context(), boardID, targetID, req.Role); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}

// SharedBoards returns the caller's shared-board projections, most recent
// share first.
func (h *ShareHandler) SharedBoards(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	refs, err := h.collab.SharedBoards(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve shared boards"})
		return
	}

	c.JSON(http.StatusOK, refs)
}
