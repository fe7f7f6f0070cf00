package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractorpm/collections"
	"contractorpm/testhelpers"
)

func TestHandleProjectUpdate_StatusReflectedInDetailAndList(t *testing.T) {
	f := newFixture(t)

	req := jsonRequest(t, http.MethodPut, "/api/projects/"+f.project.Id, f.project.Id, map[string]any{
		"name":          "Kitchen Renovation",
		"customer_name": "Jane Doe",
		"status":        "active",
	})
	rec := serve(t, f.app, HandleProjectUpdate(f.app), req, f.user)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	got := decodeJSON[ProjectView](t, rec)
	assert.Equal(t, "active", got.Status)
	assert.Equal(t, 200.0, got.Totals.Grand)

	detail := serve(t, f.app, HandleProjectView(f.app), viewRequest(f.project.Id), f.user)
	assert.Equal(t, "active", decodeJSON[ProjectDetailView](t, detail).Status)

	list := serve(t, f.app, HandleProjectList(f.app),
		jsonRequest(t, http.MethodGet, "/api/projects?status=active", "", nil), f.user)
	require.Len(t, decodeJSON[[]ProjectView](t, list), 1)
}

func TestHandleProjectUpdate_WholeObjectReplace(t *testing.T) {
	f := newFixture(t)

	req := jsonRequest(t, http.MethodPut, "/api/projects/"+f.project.Id, f.project.Id, map[string]any{
		"name":   "Renamed",
		"status": "draft",
	})
	rec := serve(t, f.app, HandleProjectUpdate(f.app), req, f.user)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := f.app.FindRecordById(collections.Projects, f.project.Id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.GetString("name"))
	assert.Empty(t, stored.GetString("customer_name"), "omitted fields are cleared")
	assert.Empty(t, stored.GetString("customer_email"))
}

func TestHandleProjectUpdate_InvalidLeavesRecordUntouched(t *testing.T) {
	f := newFixture(t)

	req := jsonRequest(t, http.MethodPut, "/api/projects/"+f.project.Id, f.project.Id, map[string]any{
		"name":   "",
		"status": "paused",
	})
	rec := serve(t, f.app, HandleProjectUpdate(f.app), req, f.user)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeJSON[apiErrorBody](t, rec)
	assert.Contains(t, body.Data, "name")
	assert.Contains(t, body.Data, "status")

	stored, err := f.app.FindRecordById(collections.Projects, f.project.Id)
	require.NoError(t, err)
	assert.Equal(t, "Kitchen Renovation", stored.GetString("name"))
	assert.Equal(t, "draft", stored.GetString("status"))
}

func TestHandleProjectUpdate_ForeignProject(t *testing.T) {
	f := newFixture(t)
	other := testhelpers.CreateTestUser(t, f.app, "mallory@example.com")

	req := jsonRequest(t, http.MethodPut, "/api/projects/"+f.project.Id, f.project.Id, map[string]any{
		"name": "Hijacked",
	})
	rec := serve(t, f.app, HandleProjectUpdate(f.app), req, other)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
