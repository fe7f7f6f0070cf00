package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"contractorpm/services"
)

// HandleProjectView returns one project with its priced time entries and
// materials in display order, the per-worker-type summary and the totals.
func HandleProjectView(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "project_view", err)
		}

		project, err := findOwnedProject(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "project_view", err)
		}

		costs, err := projectCosts(app, project.Id, user.Id)
		if err != nil {
			return respondError(e, "project_view", err)
		}

		return e.JSON(http.StatusOK, projectDetailView(project, costs))
	}
}

// projectCosts prices the project's lines against the owner's current rates.
func projectCosts(app core.App, projectID, ownerID string) (services.CostSummary, error) {
	rates, _, err := loadRateTable(app, ownerID)
	if err != nil {
		return services.CostSummary{}, err
	}
	entries, materials, err := loadProjectLines(app, projectID)
	if err != nil {
		return services.CostSummary{}, err
	}
	return services.CalculateCosts(entries, materials, rates), nil
}
