package handler_test

import (
	"net/http"
	"testing"

	"taskboard/internal/handler"
	"taskboard/internal/model"
	"taskboard/internal/permission"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func setupShareRouter(collab *MockCollabAPI, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handler.NewShareHandler(collab)

	router := gin.New()
	authed := router.Group("/", authAs(userID))
	authed.POST("/boards/:id/share", h.Share)
	authed.GET("/boards/:id/collaborators", h.Collaborators)
	authed.DELETE("/boards/:id/collaborators/:user_id", h.RemoveCollaborator)
	authed.PUT("/boards/:id/collaborators/:user_id", h.ChangeRole)
	return router
}

func TestShare_OwnerAllowed(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	collab := new(MockCollabAPI)
	collab.On("RoleForBoard", mock.Anything, userID, boardID).Return(permission.RoleOwner, nil)
	collab.On("ShareBoard", mock.Anything, userID, boardID, "invitee@example.com", "editor").
		Return(service.ShareResult{RefCreated: true, NotificationCreated: true}, nil)
	router := setupShareRouter(collab, userID)

	w := doJSON(router, "POST", "/boards/"+boardID.String()+"/share", gin.H{
		"email": "invitee@example.com",
		"role":  "editor",
	})

	assert.Equal(t, http.StatusOK, w.Code)
	collab.AssertExpectations(t)
}

func TestShare_EditorDenied(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	collab := new(MockCollabAPI)
	collab.On("RoleForBoard", mock.Anything, userID, boardID).Return(permission.RoleEditor, nil)
	router := setupShareRouter(collab, userID)

	w := doJSON(router, "POST", "/boards/"+boardID.String()+"/share", gin.H{
		"email": "invitee@example.com",
		"role":  "viewer",
	})

	assert.Equal(t, http.StatusForbidden, w.Code)
	collab.AssertNotCalled(t, "ShareBoard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShare_InvalidRoleRejectedAtBinding(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	collab := new(MockCollabAPI)
	collab.On("RoleForBoard", mock.Anything, userID, boardID).Return(permission.RoleOwner, nil)
	router := setupShareRouter(collab, userID)

	// "owner" is not a grantable role
	w := doJSON(router, "POST", "/boards/"+boardID.String()+"/share", gin.H{
		"email": "invitee@example.com",
		"role":  "owner",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	collab.AssertNotCalled(t, "ShareBoard", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestShare_PartialFailureReportsPhase(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	collab := new(MockCollabAPI)
	collab.On("RoleForBoard", mock.Anything, userID, boardID).Return(permission.RoleOwner, nil)
	// Phase one landed, phase two did not.
	collab.On("ShareBoard", mock.Anything, userID, boardID, "invitee@example.com", "viewer").
		Return(service.ShareResult{RefCreated: true}, assert.AnError)
	router := setupShareRouter(collab, userID)

	w := doJSON(router, "POST", "/boards/"+boardID.String()+"/share", gin.H{
		"email": "invitee@example.com",
		"role":  "viewer",
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Share partially completed")
	assert.Contains(t, w.Body.String(), `"ref_created":true`)
	assert.Contains(t, w.Body.String(), `"notification_created":false`)
}

func TestShare_AlreadySharedConflict(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	collab := new(MockCollabAPI)
	collab.On("RoleForBoard", mock.Anything, userID, boardID).Return(permission.RoleAdmin, nil)
	collab.On("ShareBoard", mock.Anything, userID, boardID, "invitee@example.com", "viewer").
		Return(service.ShareResult{}, service.ErrAlreadyShared)
	router := setupShareRouter(collab, userID)

	w := doJSON(router, "POST", "/boards/"+boardID.String()+"/share", gin.H{
		"email": "invitee@example.com",
		"role":  "viewer",
	})

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCollaborators_ViewerAllowed(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	ownerID := uuid.New()
	collab := new(MockCollabAPI)
	collab.On("RoleForBoard", mock.Anything, userID, boardID).Return(permission.RoleViewer, nil)
	collab.On("Collaborators", mock.Anything, boardID).Return([]service.Collaborator{
		{UserID: ownerID, Role: "owner", IsOwner: true},
		{UserID: userID, Role: "viewer", Status: model.ShareActive},
	}, nil)
	router := setupShareRouter(collab, userID)

	w := doJSON(router, "GET", "/boards/"+boardID.String()+"/collaborators", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_owner":true`)
}

func TestRemoveCollaborator_EditorDenied(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	targetID := uuid.New()
	collab := new(MockCollabAPI)
	collab.On("RoleForBoard", mock.Anything, userID, boardID).Return(permission.RoleEditor, nil)
	router := setupShareRouter(collab, userID)

	w := doJSON(router, "DELETE", "/boards/"+boardID.String()+"/collaborators/"+targetID.String(), nil)

	assert.Equal(t, http.StatusForbidden, w.Code)
	collab.AssertNotCalled(t, "RemoveCollaborator", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeRole_AdminAllowed(t *testing.T) {
	userID := uuid.New()
	boardID := uuid.New()
	targetID := uuid.New()
	collab := new(MockCollabAPI)
	collab.On("RoleForBoard", mock.Anything, userID, boardID).Return(permission.RoleAdmin, nil)
	collab.On("ChangeCollaboratorRole", mock.Anything, boardID, targetID, "viewer").Return(nil)
	router := setupShareRouter(collab, userID)

	w := doJSON(router, "PUT", "/boards/"+boardID.String()+"/collaborators/"+targetID.String(), gin.H{"role": "viewer"})

	assert.Equal(t, http.StatusOK, w.Code)
	collab.AssertExpectations(t)
}
