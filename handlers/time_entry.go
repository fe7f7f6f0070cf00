package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
	"contractorpm/services"
)

// readTimeEntryInput binds and validates a time entry body and resolves its
// worker type, which must belong to ownerID.
func readTimeEntryInput(app core.App, e *core.RequestEvent, ownerID string) (services.TimeEntryInput, time.Time, error) {
	var in services.TimeEntryInput
	if err := bindJSON(e, &in); err != nil {
		return in, time.Time{}, err
	}
	in.Normalize(time.Now())
	if err := in.Validate(); err != nil {
		return in, time.Time{}, err
	}

	date, err := in.ParsedDate()
	if err != nil {
		return in, time.Time{}, services.FieldError("date", "must be a valid date")
	}

	if _, err := findOwnedWorkerType(app, in.WorkerTypeID, ownerID); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			return in, time.Time{}, services.FieldError("worker_type_id", "Invalid worker type")
		}
		return in, time.Time{}, err
	}
	return in, date, nil
}

func applyTimeEntryInput(r *core.Record, in services.TimeEntryInput, date time.Time) {
	r.Set("worker_type", in.WorkerTypeID)
	r.Set("hours", *in.Hours)
	r.Set("date", date)
	r.Set("description", in.Description)
}

// HandleTimeEntryList returns the project's priced time entries ordered by
// date.
func HandleTimeEntryList(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "time_entry_list", err)
		}

		project, err := findOwnedProject(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "time_entry_list", err)
		}

		costs, err := projectCosts(app, project.Id, user.Id)
		if err != nil {
			return respondError(e, "time_entry_list", err)
		}

		out := make([]TimeEntryView, 0, len(costs.Labor))
		for _, l := range costs.Labor {
			out = append(out, laborView(project.Id, l))
		}
		return e.JSON(http.StatusOK, out)
	}
}

func HandleTimeEntryCreate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "time_entry_create", err)
		}

		project, err := findOwnedProject(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "time_entry_create", err)
		}

		in, date, err := readTimeEntryInput(app, e, user.Id)
		if err != nil {
			return respondError(e, "time_entry_create", err)
		}

		col, err := app.FindCollectionByNameOrId(collections.TimeEntries)
		if err != nil {
			return respondError(e, "time_entry_create", fmt.Errorf("find time_entries collection: %w", err))
		}

		record := core.NewRecord(col)
		record.Set("project", project.Id)
		applyTimeEntryInput(record, in, date)
		if err := app.Save(record); err != nil {
			return respondError(e, "time_entry_create", err)
		}

		return respondTimeEntry(app, e, "time_entry_create", http.StatusCreated, record, user.Id)
	}
}

func HandleTimeEntryUpdate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "time_entry_update", err)
		}

		record, err := findOwnedTimeEntry(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "time_entry_update", err)
		}

		in, date, err := readTimeEntryInput(app, e, user.Id)
		if err != nil {
			return respondError(e, "time_entry_update", err)
		}

		applyTimeEntryInput(record, in, date)
		if err := app.Save(record); err != nil {
			return respondError(e, "time_entry_update", err)
		}

		return respondTimeEntry(app, e, "time_entry_update", http.StatusOK, record, user.Id)
	}
}

// HandleTimeEntryDelete deletes exactly one time entry.
func HandleTimeEntryDelete(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "time_entry_delete", err)
		}

		record, err := findOwnedTimeEntry(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "time_entry_delete", err)
		}

		if err := app.Delete(record); err != nil {
			return respondError(e, "time_entry_delete", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}

func respondTimeEntry(app core.App, e *core.RequestEvent, op string, status int, record *core.Record, ownerID string) error {
	rates, _, err := loadRateTable(app, ownerID)
	if err != nil {
		return respondError(e, op, err)
	}
	return e.JSON(status, timeEntryView(record, rates))
}
