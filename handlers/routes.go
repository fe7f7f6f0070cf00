package handlers

import (
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"contractorpm/collections"
	"contractorpm/config"
)

// RegisterRoutes mounts the REST API under /api. Every route requires a
// users auth token; registration and login stay on the framework's
// /api/collections/users endpoints.
func RegisterRoutes(se *core.ServeEvent, cfg config.Config) {
	app := se.App
	opts := cfg.OfferOptions()

	if cfg.Metrics.Enabled {
		se.Router.BindFunc(MetricsMiddleware())
		se.Router.GET(cfg.Metrics.Path, apis.WrapStdHandler(promhttp.Handler()))
	}

	api := se.Router.Group("/api")
	api.Bind(apis.RequireAuth(collections.Users))

	// ── Profile ─────────────────────────────────────────────
	api.GET("/auth/me", HandleMe(app))
	api.PUT("/auth/profile", HandleProfileUpdate(app))
	api.POST("/auth/logo", HandleLogoUpload(app))
	api.DELETE("/auth/logo", HandleLogoDelete(app))

	api.GET("/dashboard", HandleDashboard(app))

	// ── Projects ────────────────────────────────────────────
	api.GET("/projects", HandleProjectList(app))
	api.POST("/projects", HandleProjectCreate(app))
	api.GET("/projects/{id}", HandleProjectView(app))
	api.PUT("/projects/{id}", HandleProjectUpdate(app))
	api.DELETE("/projects/{id}", HandleProjectDelete(app))

	// ── Offers ──────────────────────────────────────────────
	api.GET("/projects/{id}/report", HandleProjectReport(app, opts))
	api.POST("/projects/{id}/send-email", HandleSendOffer(app, opts, app.NewMailClient))

	// ── Worker types ────────────────────────────────────────
	api.GET("/worker-types", HandleWorkerTypeList(app))
	api.POST("/worker-types", HandleWorkerTypeCreate(app))
	api.PUT("/worker-types/{id}", HandleWorkerTypeUpdate(app))
	api.DELETE("/worker-types/{id}", HandleWorkerTypeDelete(app))

	// ── Time entries ────────────────────────────────────────
	api.GET("/projects/{id}/time-entries", HandleTimeEntryList(app))
	api.POST("/projects/{id}/time-entries", HandleTimeEntryCreate(app))
	api.PUT("/time-entries/{id}", HandleTimeEntryUpdate(app))
	api.DELETE("/time-entries/{id}", HandleTimeEntryDelete(app))

	// ── Materials ───────────────────────────────────────────
	api.GET("/projects/{id}/materials", HandleMaterialList(app))
	api.POST("/projects/{id}/materials", HandleMaterialCreate(app))
	api.PUT("/materials/{id}", HandleMaterialUpdate(app))
	api.DELETE("/materials/{id}", HandleMaterialDelete(app))
}
