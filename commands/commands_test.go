package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pocketbase/dbx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contractorpm/collections"
	"contractorpm/services"
	"contractorpm/testhelpers"
)

func TestOfferCommand_WritesPDF(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	project := testhelpers.CreateTestProject(t, app, user.Id, "Attic")
	wt := testhelpers.CreateTestWorkerType(t, app, user.Id, "Carpenter", 40)
	testhelpers.CreateTestTimeEntry(t, app, project.Id, wt.Id, 2, "2025-04-01")

	out := filepath.Join(t.TempDir(), "attic.pdf")
	cmd := NewOfferCommand(app, services.OfferOptions{})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{project.Id, "--out", out})

	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	assert.Contains(t, stdout.String(), out)
}

func TestOfferCommand_HTMLToStdout(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "owner@example.com")
	project := testhelpers.CreateTestProject(t, app, user.Id, "Attic")

	cmd := NewOfferCommand(app, services.OfferOptions{})
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetArgs([]string{project.Id, "--format", "html", "--out", "-"})

	require.NoError(t, cmd.Execute())
	assert.True(t, strings.HasPrefix(stdout.String(), "<!doctype html>"))
	assert.Contains(t, stdout.String(), "Attic")
}

func TestOfferCommand_Errors(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cmd := NewOfferCommand(app, services.OfferOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"missing"})
	assert.ErrorIs(t, cmd.Execute(), services.ErrNotFound)

	cmd = NewOfferCommand(app, services.OfferOptions{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"missing", "--format", "docx"})
	assert.ErrorContains(t, cmd.Execute(), "unsupported format")
}

func TestSeedDemoCommand_CreatesUser(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cmd := NewSeedDemoCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--email", "demo@example.com", "--password", "demo-password-1"})
	require.NoError(t, cmd.Execute())

	user, err := app.FindAuthRecordByEmail(collections.Users, "demo@example.com")
	require.NoError(t, err)
	n, err := app.CountRecords(collections.Projects, dbx.HashExp{"owner": user.Id})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestSeedDemoCommand_UnknownUser(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	cmd := NewSeedDemoCommand(app)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--email", "ghost@example.com"})

	assert.ErrorContains(t, cmd.Execute(), "no user with email")
}
