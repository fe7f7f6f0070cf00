package collections

import (
	"fmt"
	"log"
	"time"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"contractorpm/services"
)

type workerTypeDef struct {
	name       string
	hourlyRate float64
}

type timeEntryDef struct {
	workerType  string
	hours       float64
	daysAgo     int
	description string
}

type materialDef struct {
	name      string
	quantity  float64
	unit      string
	unitPrice float64
	supplier  string
}

var demoWorkerTypes = []workerTypeDef{
	{"Electrician", 45},
	{"Plumber", 50},
	{"Tiler", 38},
	{"Helper", 22.5},
}

var demoTimeEntries = []timeEntryDef{
	{"Electrician", 6, 5, "Rewire kitchen circuits"},
	{"Electrician", 2.5, 4, "Install under-cabinet lighting"},
	{"Plumber", 4, 4, "Move sink supply and drain"},
	{"Tiler", 8, 2, "Wall tiles behind worktop"},
	{"Helper", 8, 2, "Site cleanup and material handling"},
}

var demoMaterials = []materialDef{
	{"Copper cable 2.5mm²", 50, "m", 1.2, "ElektroGroß"},
	{"Wall tiles 20x20", 12, "m2", 24.9, "Fliesen Center"},
	{"Tile adhesive 25kg", 3, "box", 18.5, "Fliesen Center"},
	{"Sink siphon", 1, "pcs", 14.99, ""},
}

// SeedDemo creates a sample project with worker types, time entries and
// materials for owner. It returns early if the owner already has projects.
func SeedDemo(app core.App, owner *core.Record) error {
	existing, err := app.CountRecords(Projects, dbx.HashExp{"owner": owner.Id})
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if existing > 0 {
		return nil // already seeded
	}

	workerTypesCol, err := app.FindCollectionByNameOrId(WorkerTypes)
	if err != nil {
		return fmt.Errorf("seed: could not find worker_types collection: %w", err)
	}
	projectsCol, err := app.FindCollectionByNameOrId(Projects)
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	timeEntriesCol, err := app.FindCollectionByNameOrId(TimeEntries)
	if err != nil {
		return fmt.Errorf("seed: could not find time_entries collection: %w", err)
	}
	materialsCol, err := app.FindCollectionByNameOrId(Materials)
	if err != nil {
		return fmt.Errorf("seed: could not find materials collection: %w", err)
	}

	return app.RunInTransaction(func(txApp core.App) error {
		typeIDs := make(map[string]string, len(demoWorkerTypes))
		for _, d := range demoWorkerTypes {
			r := core.NewRecord(workerTypesCol)
			r.Set("owner", owner.Id)
			r.Set("name", d.name)
			r.Set("hourly_rate", d.hourlyRate)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("seed: save worker type %q: %w", d.name, err)
			}
			typeIDs[d.name] = r.Id
		}

		project := core.NewRecord(projectsCol)
		project.Set("owner", owner.Id)
		project.Set("name", "Kitchen Renovation")
		project.Set("description", "Full kitchen refit: electrics, plumbing and wall tiles.")
		project.Set("customer_name", "Jane Doe")
		project.Set("customer_email", "jane.doe@example.com")
		project.Set("customer_address", "12 Garden Lane\n10115 Berlin")
		project.Set("status", services.StatusActive)
		project.Set("offer_terms", "50% payment on order.\nBalance due on completion.")
		if err := txApp.Save(project); err != nil {
			return fmt.Errorf("seed: save project: %w", err)
		}

		today := time.Now().UTC().Truncate(24 * time.Hour)
		for _, d := range demoTimeEntries {
			r := core.NewRecord(timeEntriesCol)
			r.Set("project", project.Id)
			r.Set("worker_type", typeIDs[d.workerType])
			r.Set("hours", d.hours)
			r.Set("date", today.AddDate(0, 0, -d.daysAgo))
			r.Set("description", d.description)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("seed: save time entry %q: %w", d.description, err)
			}
		}

		for _, d := range demoMaterials {
			r := core.NewRecord(materialsCol)
			r.Set("project", project.Id)
			r.Set("name", d.name)
			r.Set("quantity", d.quantity)
			r.Set("unit", d.unit)
			r.Set("unit_price", d.unitPrice)
			r.Set("supplier", d.supplier)
			if err := txApp.Save(r); err != nil {
				return fmt.Errorf("seed: save material %q: %w", d.name, err)
			}
		}

		log.Printf("Seeded demo project %q for %s\n", project.GetString("name"), owner.Email())
		return nil
	})
}
