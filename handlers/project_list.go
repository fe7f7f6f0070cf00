package handlers

import (
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
	"contractorpm/services"
)

// HandleProjectList returns the user's projects, newest first, each with
// its derived totals. ?status= narrows the list.
func HandleProjectList(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "project_list", err)
		}

		filter := "owner = {:owner}"
		params := dbx.Params{"owner": user.Id}

		status := strings.TrimSpace(e.Request.URL.Query().Get("status"))
		if status != "" {
			if !slices.Contains(services.ProjectStatuses, status) {
				return respondError(e, "project_list",
					services.FieldError("status", "must be one of draft, active, completed"))
			}
			filter += " && status = {:status}"
			params["status"] = status
		}

		projects, err := app.FindRecordsByFilter(collections.Projects, filter, "-created", 0, 0, params)
		if err != nil {
			return respondError(e, "project_list", fmt.Errorf("load projects: %w", err))
		}

		totals, err := ownerProjectTotals(app, user.Id)
		if err != nil {
			return respondError(e, "project_list", err)
		}

		out := make([]ProjectView, 0, len(projects))
		for _, p := range projects {
			out = append(out, projectView(p, totals[p.Id]))
		}
		return e.JSON(http.StatusOK, out)
	}
}

// ownerProjectTotals computes the totals of every project of the owner.
// Projects without lines are absent from the map.
func ownerProjectTotals(app core.App, ownerID string) (map[string]services.Totals, error) {
	rates, _, err := loadRateTable(app, ownerID)
	if err != nil {
		return nil, err
	}

	params := dbx.Params{"owner": ownerID}
	entryRecords, err := app.FindRecordsByFilter(collections.TimeEntries,
		"project.owner = {:owner}", "", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("load time entries: %w", err)
	}
	materialRecords, err := app.FindRecordsByFilter(collections.Materials,
		"project.owner = {:owner}", "", 0, 0, params)
	if err != nil {
		return nil, fmt.Errorf("load materials: %w", err)
	}

	entries := make(map[string][]services.TimeEntryLine)
	for _, r := range entryRecords {
		pid := r.GetString("project")
		entries[pid] = append(entries[pid], timeEntryLine(r))
	}
	materials := make(map[string][]services.MaterialLine)
	for _, r := range materialRecords {
		pid := r.GetString("project")
		materials[pid] = append(materials[pid], materialLine(r))
	}

	totals := make(map[string]services.Totals, len(entries)+len(materials))
	for pid := range entries {
		totals[pid] = services.CalculateTotals(entries[pid], materials[pid], rates)
	}
	for pid := range materials {
		if _, done := totals[pid]; !done {
			totals[pid] = services.CalculateTotals(nil, materials[pid], rates)
		}
	}
	return totals, nil
}

// HandleDashboard returns project counts per status.
func HandleDashboard(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "dashboard", err)
		}

		counts := map[string]int64{}
		total, err := app.CountRecords(collections.Projects, dbx.HashExp{"owner": user.Id})
		if err != nil {
			return respondError(e, "dashboard", fmt.Errorf("count projects: %w", err))
		}
		counts["total_projects"] = total

		for _, status := range services.ProjectStatuses {
			n, err := app.CountRecords(collections.Projects, dbx.HashExp{"owner": user.Id, "status": status})
			if err != nil {
				return respondError(e, "dashboard", fmt.Errorf("count %s projects: %w", status, err))
			}
			counts[status+"_projects"] = n
		}

		return e.JSON(http.StatusOK, counts)
	}
}
