// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
)

// TestPassword is the password of every user created by CreateTestUser.
const TestPassword = "testpassword123"

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	if err := collections.Setup(app); err != nil {
		t.Fatalf("failed to set up collections: %v", err)
	}

	t.Cleanup(func() {
		_ = app.ResetBootstrapState()
	})

	return app
}

// CreateTestUser creates a users record with the given email.
func CreateTestUser(t *testing.T, app core.App, email string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Users)
	if err != nil {
		t.Fatalf("failed to find users collection: %v", err)
	}

	record := core.NewRecord(col)
	record.SetEmail(email)
	record.SetPassword(TestPassword)
	record.SetVerified(true)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test user: %v", err)
	}

	return record
}

// CreateTestProject creates a draft project owned by ownerID.
func CreateTestProject(t *testing.T, app core.App, ownerID, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Projects)
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("owner", ownerID)
	record.Set("name", name)
	record.Set("status", "draft")
	record.Set("customer_name", "Test Customer")
	record.Set("customer_email", "customer@example.com")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestWorkerType creates a worker type owned by ownerID.
func CreateTestWorkerType(t *testing.T, app core.App, ownerID, name string, hourlyRate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.WorkerTypes)
	if err != nil {
		t.Fatalf("failed to find worker_types collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("owner", ownerID)
	record.Set("name", name)
	record.Set("hourly_rate", hourlyRate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test worker type: %v", err)
	}

	return record
}

// CreateTestTimeEntry books hours of a worker type on a project.
func CreateTestTimeEntry(t *testing.T, app core.App, projectID, workerTypeID string, hours float64, date string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.TimeEntries)
	if err != nil {
		t.Fatalf("failed to find time_entries collection: %v", err)
	}

	d, err := time.Parse(time.DateOnly, date)
	if err != nil {
		t.Fatalf("invalid test date %q: %v", date, err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("worker_type", workerTypeID)
	record.Set("hours", hours)
	record.Set("date", d)
	record.Set("description", "Test work")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test time entry: %v", err)
	}

	return record
}

// CreateTestMaterial adds a material line to a project.
func CreateTestMaterial(t *testing.T, app core.App, projectID, name string, quantity, unitPrice float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId(collections.Materials)
	if err != nil {
		t.Fatalf("failed to find materials collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("project", projectID)
	record.Set("name", name)
	record.Set("quantity", quantity)
	record.Set("unit", "pcs")
	record.Set("unit_price", unitPrice)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material: %v", err)
	}

	return record
}

// AssertHTMLContains checks that the HTML body contains all expected fragments.
func AssertHTMLContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("expected HTML to contain %q, but it was not found\nbody (first 500 chars): %s",
				frag, truncate(body, 500))
		}
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
