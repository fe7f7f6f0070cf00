package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractorpm/collections"
	"contractorpm/testhelpers"
)

func deleteRequest(target, id string) *http.Request {
	req := httptest.NewRequest(http.MethodDelete, target, nil)
	req.SetPathValue("id", id)
	return req
}

func TestHandleProjectDelete_Cascades(t *testing.T) {
	f := newFixture(t)

	rec := serve(t, f.app, HandleProjectDelete(f.app), deleteRequest("/api/projects/"+f.project.Id, f.project.Id), f.user)

	require.Equal(t, http.StatusNoContent, rec.Code)

	_, err := f.app.FindRecordById(collections.Projects, f.project.Id)
	assert.Error(t, err)

	for _, col := range []string{collections.TimeEntries, collections.Materials} {
		n, err := f.app.CountRecords(col, dbx.HashExp{"project": f.project.Id})
		require.NoError(t, err)
		assert.Zero(t, n, col)
	}

	// Worker types are owned by the user, not the project.
	_, err = f.app.FindRecordById(collections.WorkerTypes, f.electrician.Id)
	assert.NoError(t, err)
}

func TestHandleProjectDelete_NotFound(t *testing.T) {
	f := newFixture(t)
	other := testhelpers.CreateTestUser(t, f.app, "mallory@example.com")

	rec := serve(t, f.app, HandleProjectDelete(f.app), deleteRequest("/api/projects/"+f.project.Id, f.project.Id), other)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	_, err := f.app.FindRecordById(collections.Projects, f.project.Id)
	assert.NoError(t, err)
}
