package handler

import (
	"net/http"
	"time"

	"taskboard/internal/model"
	"taskboard/internal/permission"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TaskHandler gates every task mutation on the caller's resolved role
// before the task store is touched. A denied check answers 403 and the
// store receives zero calls.
type TaskHandler struct {
	tasks  TaskAPI
	collab CollabAPI
}

func NewTaskHandler(tasks TaskAPI, collab CollabAPI) *TaskHandler {
	return &TaskHandler{tasks: tasks, collab: collab}
}

type TaskRequest struct {
	Title       string          `json:"title" binding:"required"`
	Description string          `json:"description"`
	Priority    string          `json:"priority" binding:"omitempty,oneof=low medium high urgent"`
	Status      string          `json:"status" binding:"omitempty,oneof=todo in-progress review done"`
	DueDate     *time.Time      `json:"due_date"`
	Tags        []string        `json:"tags"`
	Subtasks    []model.Subtask `json:"subtasks"`
}

type TaskMoveRequest struct {
	Status string `json:"status" binding:"required,oneof=todo in-progress review done"`
}

func (h *TaskHandler) roleFor(c *gin.Context, userID, boardID uuid.UUID) (permission.Role, bool) {
	role, err := h.collab.RoleForBoard(c.Request.Context(), userID, boardID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check access"})
		return permission.RoleNone, false
	}
	return role, true
}

// loadGated fetches a task and checks the caller may edit it.
func (h *TaskHandler) loadGated(c *gin.Context, userID uuid.UUID) (*model.Task, bool) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return nil, false
	}

	task, err := h.tasks.Get(c.Request.Context(), taskID)
	if err != nil {
		writeServiceError(c, err)
		return nil, false
	}

	role, ok := h.roleFor(c, userID, task.BoardID)
	if !ok {
		return nil, false
	}
	if !permission.CanEditTask(role, task, userID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot modify this task"})
		return nil, false
	}
	return task, true
}

func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, ok := h.roleFor(c, userID, boardID)
	if !ok {
		return
	}
	if !permission.CanCreateTasks(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot create tasks on this board"})
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, boardID, service.TaskInput{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		Status:      req.Status,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
		Subtasks:    req.Subtasks,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	boardID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	role, ok := h.roleFor(c, userID, boardID)
	if !ok {
		return
	}
	if role == permission.RoleNone {
		c.JSON(http.StatusForbidden, gin.H{"error": "You don't have access to this board"})
		return
	}

	includeArchived := c.Query("archived") == "true"
	tasks, err := h.tasks.List(c.Request.Context(), boardID, includeArchived)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tasks)
}

func (h *TaskHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	task, ok := h.loadGated(c, userID)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	patch := map[string]interface{}{
		"title":       req.Title,
		"description": req.Description,
	}
	if req.Priority != "" {
		patch["priority"] = req.Priority
	}
	if req.Status != "" {
		patch["status"] = req.Status
	}
	if req.DueDate != nil {
		patch["due_date"] = req.DueDate
	}

	updated, err := h.tasks.Update(c.Request.Context(), task.ID, patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Move handles the drag-and-drop lane change.
func (h *TaskHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	task, ok := h.loadGated(c, userID)
	if !ok {
		return
	}

	var req TaskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	updated, err := h.tasks.Move(c.Request.Context(), task.ID, req.Status)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// Assign sets the task assignee and has the service notify them. Owners
// and admins only.
func (h *TaskHandler) Assign(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), taskID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	role, ok := h.roleFor(c, userID, task.BoardID)
	if !ok {
		return
	}
	if !permission.CanAssignTasks(role) {
		c.JSON(http.StatusForbidden, gin.H{"error": "You cannot assign tasks on this board"})
		return
	}

	var req struct {
		UserID string `json:"user_id" binding:"required,uuid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	assigneeID, _ := uuid.Parse(req.UserID)

	updated, err := h.tasks.Assign(c.Request.Context(), userID, taskID, assigneeID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	task, ok := h.loadGated(c, userID)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), task.ID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (h *TaskHandler) Archive(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	task, ok := h.loadGated(c, userID)
	if !ok {
		return
	}

	if err := h.tasks.Archive(c.Request.Context(), task.ID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task archived"})
}

func (h *TaskHandler) Restore(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	task, ok := h.loadGated(c, userID)
	if !ok {
		return
	}

	if err := h.tasks.Restore(c.Request.Context(), task.ID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task restored"})
}
