package service

import (
	"context"
	"time"

	"taskboard/internal/feed"
	"taskboard/internal/model"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TaskService routes task reads and writes to the correct namespace.
//
// The routing invariant: tasks of a board always live under the board
// owner's namespace, no matter which collaborator acts. A collaborator
// writing into their own namespace would silently fork the board.
type TaskService struct {
	tasks  TaskStore
	boards BoardStore
	users  UserDirectory
	notify Notifier
	pub    Publisher
	log    *logrus.Logger
}

func NewTaskService(tasks TaskStore, boards BoardStore, users UserDirectory, notify Notifier, pub Publisher, log *logrus.Logger) *TaskService {
	return &TaskService{tasks: tasks, boards: boards, users: users, notify: notify, pub: pub, log: log}
}

// TaskInput carries the caller-settable task fields.
type TaskInput struct {
	Title       string
	Description string
	Priority    string
	Status      string
	DueDate     *time.Time
	Tags        []string
	Subtasks    []model.Subtask
}

func (s *TaskService) namespaceFor(ctx context.Context, boardID uuid.UUID) (uuid.UUID, error) {
	board, err := s.boards.GetByID(ctx, boardID)
	if err != nil {
		return uuid.Nil, err
	}
	if board == nil {
		return uuid.Nil, ErrBoardNotFound
	}
	return board.OwnerID, nil
}

// Namespace exposes the routing decision for feed topics.
func (s *TaskService) Namespace(ctx context.Context, boardID uuid.UUID) (uuid.UUID, error) {
	return s.namespaceFor(ctx, boardID)
}

// Create writes the task into the board owner's namespace. This holds for
// collaborators too; creation is routed exactly like every other mutation.
func (s *TaskService) Create(ctx context.Context, actorID, boardID uuid.UUID, in TaskInput) (*model.Task, error) {
	ns, err := s.namespaceFor(ctx, boardID)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:          uuid.New(),
		NamespaceID: ns,
		BoardID:     boardID,
		Title:       in.Title,
		Description: in.Description,
		Priority:    in.Priority,
		Status:      in.Status,
		DueDate:     in.DueDate,
		Tags:        in.Tags,
		Subtasks:    in.Subtasks,
		CreatedBy:   actorID,
	}
	if task.Priority == "" {
		task.Priority = model.PriorityMedium
	}
	if task.Status == "" {
		task.Status = model.StatusTodo
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, feed.TasksTopic(ns, boardID))
	return task, nil
}

func (s *TaskService) List(ctx context.Context, boardID uuid.UUID, includeArchived bool) ([]model.Task, error) {
	ns, err := s.namespaceFor(ctx, boardID)
	if err != nil {
		return nil, err
	}
	return s.tasks.ListByBoard(ctx, ns, boardID, includeArchived)
}

func (s *TaskService) Get(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	task, err := s.tasks.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, ErrTaskNotFound
	}
	return task, nil
}

func (s *TaskService) Update(ctx context.Context, taskID uuid.UUID, patch map[string]interface{}) (*model.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	patch["updated_at"] = time.Now()
	if err := s.tasks.Update(ctx, task.NamespaceID, taskID, patch); err != nil {
		return nil, err
	}
	s.pub.Publish(ctx, feed.TasksTopic(task.NamespaceID, task.BoardID))
	return s.tasks.GetByID(ctx, taskID)
}

// Move is the drag-and-drop status change.
func (s *TaskService) Move(ctx context.Context, taskID uuid.UUID, status string) (*model.Task, error) {
	return s.Update(ctx, taskID, map[string]interface{}{"status": status})
}

// Assign sets the task assignee and notifies them. The notification is a
// fire-and-forget side effect: the assignment stands even when it cannot
// be delivered.
func (s *TaskService) Assign(ctx context.Context, actorID, taskID, assigneeID uuid.UUID) (*model.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	updated, err := s.Update(ctx, taskID, map[string]interface{}{"assigned_to": assigneeID})
	if err != nil {
		return nil, err
	}
	if assigneeID != uuid.Nil && assigneeID != actorID {
		s.notifyAssignment(ctx, task, actorID, assigneeID)
	}
	return updated, nil
}

func (s *TaskService) notifyAssignment(ctx context.Context, task *model.Task, actorID, assigneeID uuid.UUID) {
	board, err := s.boards.GetByID(ctx, task.BoardID)
	if err != nil {
		s.log.WithError(err).WithField("board", task.BoardID).Warn("board lookup failed for assignment notification")
	}
	actor, err := s.users.GetByID(ctx, actorID)
	if err != nil {
		s.log.WithError(err).WithField("actor", actorID).Warn("actor lookup failed for assignment notification")
	}

	message := "You were assigned \"" + task.Title + "\""
	if actor != nil {
		message = actor.Name + " assigned you \"" + task.Title + "\""
	}
	s.notify.Notify(ctx, assigneeID, model.NotificationAssignment, "Task assigned", message, board, actor)
}

func (s *TaskService) Delete(ctx context.Context, taskID uuid.UUID) error {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, task.NamespaceID, taskID); err != nil {
		return err
	}
	s.pub.Publish(ctx, feed.TasksTopic(task.NamespaceID, task.BoardID))
	return nil
}

func (s *TaskService) Archive(ctx context.Context, taskID uuid.UUID) error {
	return s.setArchived(ctx, taskID, true)
}

func (s *TaskService) Restore(ctx context.Context, taskID uuid.UUID) error {
	return s.setArchived(ctx, taskID, false)
}

func (s *TaskService) setArchived(ctx context.Context, taskID uuid.UUID, archived bool) error {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return err
	}
	if err := s.tasks.SetArchived(ctx, task.NamespaceID, taskID, archived); err != nil {
		return err
	}
	s.pub.Publish(ctx, feed.TasksTopic(task.NamespaceID, task.BoardID))
	return nil
}
