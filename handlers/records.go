package handlers

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
	"contractorpm/services"
)

// findOwned returns the single record of collection matching filter, or a
// NotFound error naming entity. Foreign records look exactly like missing ones.
func findOwned(app core.App, collection, entity, filter string, params dbx.Params) (*core.Record, error) {
	rec, err := app.FindFirstRecordByFilter(collection, filter, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.NotFound(entity)
		}
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	return rec, nil
}

func findOwnedProject(app core.App, id, ownerID string) (*core.Record, error) {
	return findOwned(app, collections.Projects, "Project",
		"id = {:id} && owner = {:owner}", dbx.Params{"id": id, "owner": ownerID})
}

func findOwnedWorkerType(app core.App, id, ownerID string) (*core.Record, error) {
	return findOwned(app, collections.WorkerTypes, "Worker type",
		"id = {:id} && owner = {:owner}", dbx.Params{"id": id, "owner": ownerID})
}

func findOwnedTimeEntry(app core.App, id, ownerID string) (*core.Record, error) {
	return findOwned(app, collections.TimeEntries, "Time entry",
		"id = {:id} && project.owner = {:owner}", dbx.Params{"id": id, "owner": ownerID})
}

func findOwnedMaterial(app core.App, id, ownerID string) (*core.Record, error) {
	return findOwned(app, collections.Materials, "Material",
		"id = {:id} && project.owner = {:owner}", dbx.Params{"id": id, "owner": ownerID})
}

// loadRateTable builds the rate table from the owner's current worker types.
func loadRateTable(app core.App, ownerID string) (services.RateTable, []*core.Record, error) {
	records, err := app.FindRecordsByFilter(collections.WorkerTypes,
		"owner = {:owner}", "name", 0, 0, dbx.Params{"owner": ownerID})
	if err != nil {
		return services.RateTable{}, nil, fmt.Errorf("load worker types: %w", err)
	}

	rows := make([]services.WorkerRate, 0, len(records))
	for _, r := range records {
		rows = append(rows, services.WorkerRate{
			ID:         r.Id,
			Name:       r.GetString("name"),
			HourlyRate: services.Dec(r.GetFloat("hourly_rate")),
		})
	}
	return services.NewRateTable(rows), records, nil
}

// loadProjectLines reads the time entries and materials of one project in
// display order.
func loadProjectLines(app core.App, projectID string) ([]services.TimeEntryLine, []services.MaterialLine, error) {
	entries, err := app.FindRecordsByFilter(collections.TimeEntries,
		"project = {:project}", "date,created", 0, 0, dbx.Params{"project": projectID})
	if err != nil {
		return nil, nil, fmt.Errorf("load time entries: %w", err)
	}
	materials, err := app.FindRecordsByFilter(collections.Materials,
		"project = {:project}", "created", 0, 0, dbx.Params{"project": projectID})
	if err != nil {
		return nil, nil, fmt.Errorf("load materials: %w", err)
	}
	return timeEntryLines(entries), materialLines(materials), nil
}

func timeEntryLine(r *core.Record) services.TimeEntryLine {
	return services.TimeEntryLine{
		ID:           r.Id,
		WorkerTypeID: r.GetString("worker_type"),
		Hours:        services.Dec(r.GetFloat("hours")),
		Date:         entryDate(r),
		Description:  r.GetString("description"),
	}
}

func timeEntryLines(records []*core.Record) []services.TimeEntryLine {
	lines := make([]services.TimeEntryLine, len(records))
	for i, r := range records {
		lines[i] = timeEntryLine(r)
	}
	return lines
}

func materialLine(r *core.Record) services.MaterialLine {
	return services.MaterialLine{
		ID:        r.Id,
		Name:      r.GetString("name"),
		Quantity:  services.Dec(r.GetFloat("quantity")),
		Unit:      r.GetString("unit"),
		UnitPrice: services.Dec(r.GetFloat("unit_price")),
		Supplier:  r.GetString("supplier"),
	}
}

func materialLines(records []*core.Record) []services.MaterialLine {
	lines := make([]services.MaterialLine, len(records))
	for i, r := range records {
		lines[i] = materialLine(r)
	}
	return lines
}

func entryDate(r *core.Record) string {
	dt := r.GetDateTime("date")
	if dt.IsZero() {
		return ""
	}
	return dt.Time().Format(services.DateLayout)
}

func offerProject(r *core.Record) services.OfferProject {
	return services.OfferProject{
		ID:              r.Id,
		Name:            r.GetString("name"),
		Description:     r.GetString("description"),
		Status:          r.GetString("status"),
		CustomerName:    r.GetString("customer_name"),
		CustomerEmail:   r.GetString("customer_email"),
		CustomerAddress: r.GetString("customer_address"),
		OfferTerms:      r.GetString("offer_terms"),
	}
}
