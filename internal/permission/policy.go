package permission

import (
	"taskboard/internal/model"

	"github.com/google/uuid"
)

// Capability flags per role. One table instead of string comparisons
// scattered across call sites.
type capabilities struct {
	createTasks         bool
	editAnyTask         bool
	editOwnTasks        bool
	assignTasks         bool
	comment             bool
	shareBoard          bool
	deleteBoard         bool
	manageCollaborators bool
}

var policy = map[Role]capabilities{
	RoleOwner: {
		createTasks:         true,
		editAnyTask:         true,
		editOwnTasks:        true,
		assignTasks:         true,
		comment:             true,
		shareBoard:          true,
		deleteBoard:         true,
		manageCollaborators: true,
	},
	RoleAdmin: {
		createTasks:         true,
		editAnyTask:         true,
		editOwnTasks:        true,
		assignTasks:         true,
		comment:             true,
		shareBoard:          true,
		manageCollaborators: true,
	},
	RoleEditor: {
		createTasks:  true,
		editOwnTasks: true,
		comment:      true,
	},
	RoleViewer: {},
}

func CanCreateTasks(r Role) bool { return policy[r].createTasks }

func CanEditAnyTask(r Role) bool { return policy[r].editAnyTask }

func CanAssignTasks(r Role) bool { return policy[r].assignTasks }

func CanComment(r Role) bool { return policy[r].comment }

func CanShareBoard(r Role) bool { return policy[r].shareBoard }

func CanDeleteBoard(r Role) bool { return policy[r].deleteBoard }

func CanManageCollaborators(r Role) bool { return policy[r].manageCollaborators }

// CanEditTask answers the per-task question: owners and admins may edit
// any task, editors only tasks they created or are assigned to.
func CanEditTask(r Role, task *model.Task, userID uuid.UUID) bool {
	c := policy[r]
	if c.editAnyTask {
		return true
	}
	if !c.editOwnTasks || task == nil {
		return false
	}
	if task.CreatedBy == userID {
		return true
	}
	return task.AssignedTo != nil && *task.AssignedTo == userID
}

// CanChangeRole guards collaborator role changes. The implicit owner slot
// is never a valid target, and only owners and admins may change roles.
func CanChangeRole(actor Role, targetIsOwner bool) bool {
	if targetIsOwner {
		return false
	}
	return policy[actor].manageCollaborators
}
