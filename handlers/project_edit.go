package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"
)

// HandleProjectUpdate replaces the project with the submitted state. Fields
// missing from the body are cleared.
func HandleProjectUpdate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "project_update", err)
		}

		project, err := findOwnedProject(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "project_update", err)
		}

		in, err := readProjectInput(e)
		if err != nil {
			return respondError(e, "project_update", err)
		}

		applyProjectInput(project, in)
		if err := app.Save(project); err != nil {
			return respondError(e, "project_update", err)
		}

		costs, err := projectCosts(app, project.Id, user.Id)
		if err != nil {
			return respondError(e, "project_update", err)
		}

		return e.JSON(http.StatusOK, projectView(project, costs.Totals))
	}
}
