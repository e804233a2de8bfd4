package docs

import "github.com/swaggo/swag"

// @title           Taskboard API
// @version         1.0
// @description     API for collaborative task boards: board sharing, role-based permissions, invite lifecycle, notifications, and live feeds

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token

// @tag.name Users
// @tag.description Registration, login, current identity

// @tag.name Boards
// @tag.description Board management operations

// @tag.name Sharing
// @tag.description Collaborators, roles, and invitations

// @tag.name Tasks
// @tag.description Task CRUD, lanes, archive

// @tag.name Notifications
// @tag.description Notification feed and invite resolution

const docTemplate = `{
    "schemes": ["http"],
    "swagger": "2.0",
    "info": {
        "title": "Taskboard API",
        "version": "1.0"
    },
    "host": "localhost:8080",
    "basePath": "/"
}`

var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "Taskboard API",
	Description:      "API for collaborative task boards",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
