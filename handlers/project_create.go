package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
	"contractorpm/services"
)

// applyProjectInput replaces every editable field of the project record.
func applyProjectInput(r *core.Record, in services.ProjectInput) {
	r.Set("name", in.Name)
	r.Set("description", in.Description)
	r.Set("customer_name", in.CustomerName)
	r.Set("customer_email", in.CustomerEmail)
	r.Set("customer_address", in.CustomerAddress)
	r.Set("status", in.Status)
	r.Set("offer_terms", in.OfferTerms)
}

// readProjectInput binds, normalizes and validates a project body.
func readProjectInput(e *core.RequestEvent) (services.ProjectInput, error) {
	var in services.ProjectInput
	if err := bindJSON(e, &in); err != nil {
		return in, err
	}
	in.Normalize()
	return in, in.Validate()
}

func HandleProjectCreate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "project_create", err)
		}

		in, err := readProjectInput(e)
		if err != nil {
			return respondError(e, "project_create", err)
		}

		col, err := app.FindCollectionByNameOrId(collections.Projects)
		if err != nil {
			return respondError(e, "project_create", fmt.Errorf("find projects collection: %w", err))
		}

		record := core.NewRecord(col)
		record.Set("owner", user.Id)
		applyProjectInput(record, in)

		if err := app.Save(record); err != nil {
			return respondError(e, "project_create", err)
		}

		app.Logger().Info("project_create: created project", "project", record.Id, "owner", user.Id)
		return e.JSON(http.StatusCreated, projectView(record, services.Totals{}))
	}
}
