package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
	"contractorpm/services"
)

func readWorkerTypeInput(e *core.RequestEvent) (services.WorkerTypeInput, error) {
	var in services.WorkerTypeInput
	if err := bindJSON(e, &in); err != nil {
		return in, err
	}
	in.Normalize()
	return in, in.Validate()
}

// HandleWorkerTypeList returns the user's worker types ordered by name.
func HandleWorkerTypeList(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "worker_type_list", err)
		}

		_, records, err := loadRateTable(app, user.Id)
		if err != nil {
			return respondError(e, "worker_type_list", err)
		}

		out := make([]WorkerTypeView, 0, len(records))
		for _, r := range records {
			out = append(out, workerTypeView(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

func HandleWorkerTypeCreate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "worker_type_create", err)
		}

		in, err := readWorkerTypeInput(e)
		if err != nil {
			return respondError(e, "worker_type_create", err)
		}

		col, err := app.FindCollectionByNameOrId(collections.WorkerTypes)
		if err != nil {
			return respondError(e, "worker_type_create", fmt.Errorf("find worker_types collection: %w", err))
		}

		record := core.NewRecord(col)
		record.Set("owner", user.Id)
		record.Set("name", in.Name)
		record.Set("hourly_rate", *in.HourlyRate)

		if err := app.Save(record); err != nil {
			return respondError(e, "worker_type_create", err)
		}
		return e.JSON(http.StatusCreated, workerTypeView(record))
	}
}

// HandleWorkerTypeUpdate replaces name and rate. Reports priced afterwards
// use the new rate for every existing entry of this worker type.
func HandleWorkerTypeUpdate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "worker_type_update", err)
		}

		record, err := findOwnedWorkerType(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "worker_type_update", err)
		}

		in, err := readWorkerTypeInput(e)
		if err != nil {
			return respondError(e, "worker_type_update", err)
		}

		record.Set("name", in.Name)
		record.Set("hourly_rate", *in.HourlyRate)
		if err := app.Save(record); err != nil {
			return respondError(e, "worker_type_update", err)
		}
		return e.JSON(http.StatusOK, workerTypeView(record))
	}
}

// HandleWorkerTypeDelete deletes a worker type that no time entry uses.
func HandleWorkerTypeDelete(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "worker_type_delete", err)
		}

		record, err := findOwnedWorkerType(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "worker_type_delete", err)
		}

		used, err := app.CountRecords(collections.TimeEntries, dbx.HashExp{"worker_type": record.Id})
		if err != nil {
			return respondError(e, "worker_type_delete", fmt.Errorf("count time entries: %w", err))
		}
		if used > 0 {
			return respondError(e, "worker_type_delete", &services.WorkerTypeInUseError{Entries: used})
		}

		if err := app.Delete(record); err != nil {
			return respondError(e, "worker_type_delete", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}
