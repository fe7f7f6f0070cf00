package handlers

import (
	"fmt"
	"net/http"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
	"contractorpm/services"
)

func readMaterialInput(e *core.RequestEvent) (services.MaterialInput, error) {
	var in services.MaterialInput
	if err := bindJSON(e, &in); err != nil {
		return in, err
	}
	in.Normalize()
	return in, in.Validate()
}

func applyMaterialInput(r *core.Record, in services.MaterialInput) {
	r.Set("name", in.Name)
	r.Set("quantity", *in.Quantity)
	r.Set("unit", in.Unit)
	r.Set("unit_price", *in.UnitPrice)
	r.Set("supplier", in.Supplier)
}

// HandleMaterialList returns the project's priced materials in insertion
// order.
func HandleMaterialList(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "material_list", err)
		}

		project, err := findOwnedProject(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "material_list", err)
		}

		records, err := app.FindRecordsByFilter(collections.Materials,
			"project = {:project}", "created", 0, 0, dbx.Params{"project": project.Id})
		if err != nil {
			return respondError(e, "material_list", fmt.Errorf("load materials: %w", err))
		}

		out := make([]MaterialView, 0, len(records))
		for _, r := range records {
			out = append(out, materialView(r))
		}
		return e.JSON(http.StatusOK, out)
	}
}

func HandleMaterialCreate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "material_create", err)
		}

		project, err := findOwnedProject(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "material_create", err)
		}

		in, err := readMaterialInput(e)
		if err != nil {
			return respondError(e, "material_create", err)
		}

		col, err := app.FindCollectionByNameOrId(collections.Materials)
		if err != nil {
			return respondError(e, "material_create", fmt.Errorf("find materials collection: %w", err))
		}

		record := core.NewRecord(col)
		record.Set("project", project.Id)
		applyMaterialInput(record, in)
		if err := app.Save(record); err != nil {
			return respondError(e, "material_create", err)
		}
		return e.JSON(http.StatusCreated, materialView(record))
	}
}

func HandleMaterialUpdate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "material_update", err)
		}

		record, err := findOwnedMaterial(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "material_update", err)
		}

		in, err := readMaterialInput(e)
		if err != nil {
			return respondError(e, "material_update", err)
		}

		applyMaterialInput(record, in)
		if err := app.Save(record); err != nil {
			return respondError(e, "material_update", err)
		}
		return e.JSON(http.StatusOK, materialView(record))
	}
}

// HandleMaterialDelete deletes exactly one material.
func HandleMaterialDelete(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "material_delete", err)
		}

		record, err := findOwnedMaterial(app, e.Request.PathValue("id"), user.Id)
		if err != nil {
			return respondError(e, "material_delete", err)
		}

		if err := app.Delete(record); err != nil {
			return respondError(e, "material_delete", err)
		}
		return e.NoContent(http.StatusNoContent)
	}
}
