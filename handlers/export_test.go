package handlers

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pocketbase/pocketbase/tools/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"contractorpm/services"
	"contractorpm/testhelpers"
)

func reportRequest(projectID, format string) *http.Request {
	target := "/api/projects/" + projectID + "/report"
	if format != "" {
		target += "?format=" + format
	}
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue("id", projectID)
	return req
}

func TestLoadOffer(t *testing.T) {
	f := newFixture(t)
	f.user.Set("company_name", "Acme Builders")
	f.user.Set("vat_id", "DE123456789")
	require.NoError(t, f.app.Save(f.user))

	data, err := LoadOffer(f.app, f.project.Id, f.user.Id, services.OfferOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Kitchen Renovation", data.Project.Name)
	assert.Equal(t, "Acme Builders", data.CompanyName())
	assert.Equal(t, "DE123456789", data.Branding.VATID)
	assert.Empty(t, data.Branding.Logo)
	assert.Equal(t, "150.00", services.FormatAmount(data.Costs.Totals.Labor))
	assert.Equal(t, "50.00", services.FormatAmount(data.Costs.Totals.Materials))
	assert.Equal(t, "200.00", services.FormatAmount(data.Costs.Totals.Grand))
}

// Files saved through the framework records API never pass through
// HandleLogoUpload, so LoadOffer must fit them itself.
func TestLoadOffer_FitsStoredLogo(t *testing.T) {
	f := newFixture(t)
	file, err := filesystem.NewFileFromBytes(pngBytes(t, 1200, 900), "big.png")
	require.NoError(t, err)
	f.user.Set("logo", file)
	require.NoError(t, f.app.Save(f.user))

	data, err := LoadOffer(f.app, f.project.Id, f.user.Id, services.OfferOptions{})
	require.NoError(t, err)
	require.NotEmpty(t, data.Branding.Logo)

	logo, format, err := image.DecodeConfig(bytes.NewReader(data.Branding.Logo))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 533, logo.Width)
	assert.Equal(t, services.MaxLogoHeight, logo.Height)
}

func TestLoadOffer_ForeignProject(t *testing.T) {
	f := newFixture(t)
	other := testhelpers.CreateTestUser(t, f.app, "mallory@example.com")

	_, err := LoadOffer(f.app, f.project.Id, other.Id, services.OfferOptions{})
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestHandleProjectReport_HTMLDefault(t *testing.T) {
	f := newFixture(t)

	rec := serve(t, f.app, HandleProjectReport(f.app, services.OfferOptions{}), reportRequest(f.project.Id, ""), f.user)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	testhelpers.AssertHTMLContains(t, rec.Body.String(),
		"Kitchen Renovation",
		"Test Customer",
		"Electrician",
		"Cable",
		"Grand Total: €200.00",
		services.DefaultCompanyName,
		"valid for 30 days",
	)
}

func TestHandleProjectReport_PDF(t *testing.T) {
	f := newFixture(t)

	rec := serve(t, f.app, HandleProjectReport(f.app, services.OfferOptions{}), reportRequest(f.project.Id, "pdf"), f.user)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.ContentTypePDF, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="offer_Kitchen_Renovation.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")))
}

func TestHandleProjectReport_XLSX(t *testing.T) {
	f := newFixture(t)

	rec := serve(t, f.app, HandleProjectReport(f.app, services.OfferOptions{}), reportRequest(f.project.Id, "xlsx"), f.user)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, services.ContentTypeXLSX, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "offer_Kitchen_Renovation.xlsx")

	wb, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(services.OfferSheetName)
	require.NoError(t, err)
	var found bool
	for _, row := range rows {
		for _, cell := range row {
			if cell == "Kitchen Renovation" {
				found = true
			}
		}
	}
	assert.True(t, found, "project name missing from workbook")
}

func TestHandleProjectReport_InvalidFormat(t *testing.T) {
	f := newFixture(t)

	rec := serve(t, f.app, HandleProjectReport(f.app, services.OfferOptions{}), reportRequest(f.project.Id, "docx"), f.user)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeJSON[apiErrorBody](t, rec).Data, "format")
}

func TestHandleProjectReport_ForeignProject(t *testing.T) {
	f := newFixture(t)
	other := testhelpers.CreateTestUser(t, f.app, "mallory@example.com")

	rec := serve(t, f.app, HandleProjectReport(f.app, services.OfferOptions{}), reportRequest(f.project.Id, "pdf"), other)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleProjectReport_DoesNotMutate(t *testing.T) {
	f := newFixture(t)
	before := f.project.GetDateTime("updated")

	serve(t, f.app, HandleProjectReport(f.app, services.OfferOptions{}), reportRequest(f.project.Id, "html"), f.user)

	stored, err := f.app.FindRecordById("projects", f.project.Id)
	require.NoError(t, err)
	assert.Equal(t, before.String(), stored.GetDateTime("updated").String())
}

func TestRenderOffer(t *testing.T) {
	f := newFixture(t)
	data, err := LoadOffer(f.app, f.project.Id, f.user.Id, services.OfferOptions{})
	require.NoError(t, err)

	tests := []struct {
		format      string
		contentType string
		prefix      string
	}{
		{services.FormatHTML, services.ContentTypeHTML, "<!doctype html>"},
		{services.FormatPDF, services.ContentTypePDF, "%PDF"},
		{services.FormatXLSX, services.ContentTypeXLSX, "PK"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			body, contentType, err := RenderOffer(context.Background(), data, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.contentType, contentType)
			assert.True(t, bytes.HasPrefix(body, []byte(tt.prefix)))
		})
	}

	_, _, err = RenderOffer(context.Background(), data, "docx")
	assert.ErrorContains(t, err, "unsupported format")
}
