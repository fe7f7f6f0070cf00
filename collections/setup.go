package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"

	"contractorpm/services"
)

// Collection names.
const (
	Users       = "users"
	Projects    = "projects"
	WorkerTypes = "worker_types"
	TimeEntries = "time_entries"
	Materials   = "materials"
)

// Setup creates or upgrades every collection the app needs. It is safe to
// run on each start.
func Setup(app core.App) error {
	users, err := ensureUsers(app)
	if err != nil {
		return err
	}

	ownerRule := types.Pointer("owner = @request.auth.id")
	projectOwnerRule := types.Pointer("project.owner = @request.auth.id")

	projects, err := ensureCollection(app, Projects, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "owner",
			Required:      true,
			CollectionId:  users.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 200})
		c.Fields.Add(&core.TextField{Name: "description"})
		c.Fields.Add(&core.TextField{Name: "customer_name", Max: 200})
		c.Fields.Add(&core.EmailField{Name: "customer_email"})
		c.Fields.Add(&core.TextField{Name: "customer_address"})
		c.Fields.Add(&core.SelectField{
			Name:      "status",
			Required:  true,
			Values:    services.ProjectStatuses,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.TextField{Name: "offer_terms"})
		addTimestamps(c)
		c.AddIndex("idx_projects_owner_status", false, "owner, status", "")
		setRules(c, ownerRule)
	})
	if err != nil {
		return err
	}

	workerTypes, err := ensureCollection(app, WorkerTypes, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "owner",
			Required:      true,
			CollectionId:  users.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 100})
		c.Fields.Add(&core.NumberField{Name: "hourly_rate", Min: types.Pointer(0.0)})
		addTimestamps(c)
		c.AddIndex("idx_worker_types_owner", false, "owner", "")
		setRules(c, ownerRule)
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, TimeEntries, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		// Not cascaded: worker types in use cannot be deleted.
		c.Fields.Add(&core.RelationField{
			Name:         "worker_type",
			Required:     true,
			CollectionId: workerTypes.Id,
			MaxSelect:    1,
		})
		c.Fields.Add(&core.NumberField{Name: "hours", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.DateField{Name: "date", Required: true})
		c.Fields.Add(&core.TextField{Name: "description"})
		addTimestamps(c)
		c.AddIndex("idx_time_entries_project", false, "project", "")
		c.AddIndex("idx_time_entries_worker_type", false, "worker_type", "")
		setRules(c, projectOwnerRule)
	})
	if err != nil {
		return err
	}

	_, err = ensureCollection(app, Materials, func(c *core.Collection) {
		c.Fields.Add(&core.RelationField{
			Name:          "project",
			Required:      true,
			CollectionId:  projects.Id,
			CascadeDelete: true,
			MaxSelect:     1,
		})
		c.Fields.Add(&core.TextField{Name: "name", Required: true, Max: 200})
		c.Fields.Add(&core.NumberField{Name: "quantity", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.SelectField{
			Name:      "unit",
			Required:  true,
			Values:    services.MaterialUnits,
			MaxSelect: 1,
		})
		c.Fields.Add(&core.NumberField{Name: "unit_price", Min: types.Pointer(0.0)})
		c.Fields.Add(&core.TextField{Name: "supplier"})
		addTimestamps(c)
		c.AddIndex("idx_materials_project", false, "project", "")
		setRules(c, projectOwnerRule)
	})
	return err
}

// ensureUsers adds the branding fields to the users auth collection,
// creating the collection when the framework has not.
func ensureUsers(app core.App) (*core.Collection, error) {
	users, err := app.FindCollectionByNameOrId(Users)
	if err != nil {
		users = core.NewAuthCollection(Users)
		users.CreateRule = types.Pointer("")
		users.ViewRule = types.Pointer("id = @request.auth.id")
		users.UpdateRule = types.Pointer("id = @request.auth.id")
	}

	changed := users.IsNew()
	addMissing := func(f core.Field) {
		if users.Fields.GetByName(f.GetName()) == nil {
			users.Fields.Add(f)
			changed = true
		}
	}
	addMissing(&core.TextField{Name: "company_name", Max: 200})
	addMissing(&core.TextField{Name: "vat_id", Max: 50})
	addMissing(&core.FileField{
		Name:      "logo",
		MaxSelect: 1,
		MaxSize:   services.MaxLogoBytes,
		MimeTypes: services.LogoMimeTypes(),
	})

	if !changed {
		return users, nil
	}
	if err := app.Save(users); err != nil {
		return nil, fmt.Errorf("save %q collection: %w", Users, err)
	}
	log.Printf("Ensured branding fields on collection %q.\n", Users)
	return users, nil
}

// ensureCollection returns the named collection, creating it with the
// fields added by addFields when it does not exist yet.
func ensureCollection(app core.App, name string, addFields func(*core.Collection)) (*core.Collection, error) {
	existing, err := app.FindCollectionByNameOrId(name)
	if err == nil && existing != nil {
		return existing, nil
	}

	collection := core.NewBaseCollection(name)
	addFields(collection)

	if err := app.Save(collection); err != nil {
		return nil, fmt.Errorf("create collection %q: %w", name, err)
	}

	log.Printf("Created collection %q (id=%s)\n", name, collection.Id)
	return collection, nil
}

func addTimestamps(c *core.Collection) {
	c.Fields.Add(&core.AutodateField{Name: "created", OnCreate: true})
	c.Fields.Add(&core.AutodateField{Name: "updated", OnCreate: true, OnUpdate: true})
}

func setRules(c *core.Collection, rule *string) {
	c.ListRule = rule
	c.ViewRule = rule
	c.CreateRule = rule
	c.UpdateRule = rule
	c.DeleteRule = rule
}
