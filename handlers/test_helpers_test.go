package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/mailer"
	"github.com/stretchr/testify/require"

	"contractorpm/testhelpers"
)

// newTestRequestEvent creates a RequestEvent suitable for handler tests.
// auth may be nil for anonymous requests.
func newTestRequestEvent(app core.App, req *http.Request, rec *httptest.ResponseRecorder, auth *core.Record) *core.RequestEvent {
	e := &core.RequestEvent{}
	e.App = app
	e.Request = req
	e.Response = rec
	e.Auth = auth
	return e
}

// jsonRequest builds a request with body encoded as JSON. pathID, when
// non-empty, is set as the {id} path value.
func jsonRequest(t *testing.T, method, target, pathID string, body any) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if pathID != "" {
		req.SetPathValue("id", pathID)
	}
	return req
}

// serve runs handler against req and returns the recorded response.
func serve(t *testing.T, app core.App, handler func(*core.RequestEvent) error, req *http.Request, auth *core.Record) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	require.NoError(t, handler(newTestRequestEvent(app, req, rec, auth)))
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

type apiErrorBody struct {
	Status  int            `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// fixture is one user with a project priced at 150.00 labor and 50.00
// materials.
type fixture struct {
	app         *pocketbase.PocketBase
	user        *core.Record
	project     *core.Record
	electrician *core.Record
	helper      *core.Record
	entry       *core.Record
	material    *core.Record
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	app := testhelpers.NewTestApp(t)
	user := testhelpers.CreateTestUser(t, app, "alice@example.com")
	project := testhelpers.CreateTestProject(t, app, user.Id, "Kitchen Renovation")
	electrician := testhelpers.CreateTestWorkerType(t, app, user.Id, "Electrician", 50)
	helper := testhelpers.CreateTestWorkerType(t, app, user.Id, "Helper", 25)
	entry := testhelpers.CreateTestTimeEntry(t, app, project.Id, electrician.Id, 3, "2025-05-10")
	material := testhelpers.CreateTestMaterial(t, app, project.Id, "Cable", 10, 5)

	return fixture{
		app:         app,
		user:        user,
		project:     project,
		electrician: electrician,
		helper:      helper,
		entry:       entry,
		material:    material,
	}
}

// stubMailer records sent messages instead of delivering them.
type stubMailer struct {
	sent []*mailer.Message
	err  error
}

func (m *stubMailer) Send(msg *mailer.Message) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *stubMailer) factory() func() mailer.Mailer {
	return func() mailer.Mailer { return m }
}

var errSMTPDown = errors.New("dial tcp 127.0.0.1:25: connect: connection refused")
