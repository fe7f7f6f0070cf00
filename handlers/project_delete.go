package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectDelete deletes a project. Its time entries and materials go
// with it through the cascading relations.
func HandleProjectDelete(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "project_delete", err)
		}

		project, err := findOwnedProject(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "project_delete", err)
		}

		if err := app.Delete(project); err != nil {
			return respondError(e, "project_delete", err)
		}

		app.Logger().Info("project_delete: deleted project", "project", project.Id, "owner", user.Id)
		return e.NoContent(http.StatusNoContent)
	}
}
