package handlers

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/pocketbase/pocketbase/core"

	"contractorpm/collections"
	"contractorpm/services"
	"contractorpm/templates"
)

// LoadOffer reads the project, its lines, the owner's rates and branding,
// and builds the offer snapshot every format is rendered from.
func LoadOffer(app core.App, projectID, ownerID string, opts services.OfferOptions) (services.OfferData, error) {
	project, err := findOwnedProject(app, projectID, ownerID)
	if err != nil {
		return services.OfferData{}, err
	}

	owner, err := app.FindRecordById(collections.Users, ownerID)
	if err != nil {
		return services.OfferData{}, fmt.Errorf("find project owner: %w", err)
	}

	rates, _, err := loadRateTable(app, ownerID)
	if err != nil {
		return services.OfferData{}, err
	}
	entries, materials, err := loadProjectLines(app, project.Id)
	if err != nil {
		return services.OfferData{}, err
	}

	branding := services.Branding{
		CompanyName: owner.GetString("company_name"),
		VATID:       owner.GetString("vat_id"),
	}
	logo, err := readLogo(app, owner)
	if err != nil {
		// A broken logo must not block the offer.
		app.Logger().Warn("offer: skipping unreadable logo", "user", owner.Id, "error", err)
	} else {
		branding.Logo = logo
	}

	return services.BuildOfferData(offerProject(project), branding, entries, materials, rates, opts), nil
}

// readLogo returns the user's logo as PNG fitted into the logo box, or nil
// when none is set. Files stored through the records API skip upload
// normalization, so every read is normalized.
func readLogo(app core.App, user *core.Record) ([]byte, error) {
	name := user.GetString("logo")
	if name == "" {
		return nil, nil
	}

	fsys, err := app.NewFilesystem()
	if err != nil {
		return nil, fmt.Errorf("open filesystem: %w", err)
	}
	defer fsys.Close()

	r, err := fsys.GetReader(user.BaseFilesPath() + "/" + name)
	if err != nil {
		return nil, fmt.Errorf("open logo: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, services.MaxLogoBytes))
	if err != nil {
		return nil, fmt.Errorf("read logo: %w", err)
	}

	return services.NormalizeLogo(bytes.NewReader(data))
}

// RenderOffer renders data in the given format and returns the bytes with
// their content type.
func RenderOffer(ctx context.Context, data services.OfferData, format string) ([]byte, string, error) {
	switch format {
	case services.FormatHTML:
		var buf bytes.Buffer
		if err := templates.OfferPage(data).Render(ctx, &buf); err != nil {
			return nil, "", err
		}
		return buf.Bytes(), services.ContentTypeHTML, nil
	case services.FormatPDF:
		b, err := services.GenerateOfferPDF(data)
		return b, services.ContentTypePDF, err
	case services.FormatXLSX:
		b, err := services.GenerateOfferExcel(data)
		return b, services.ContentTypeXLSX, err
	default:
		return nil, "", services.FieldError("format", fmt.Sprintf("unsupported format %q", format))
	}
}

// HandleProjectReport renders the project offer. ?format= selects html
// (default), pdf or xlsx; pdf and xlsx are sent as attachments.
func HandleProjectReport(app core.App, opts services.OfferOptions) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "report", err)
		}

		format := strings.ToLower(strings.TrimSpace(e.Request.URL.Query().Get("format")))
		if format == "" {
			format = services.FormatHTML
		}
		if !slices.Contains(services.OfferFormats, format) {
			return respondError(e, "report", services.FieldError("format", "must be one of html, pdf, xlsx"))
		}

		data, err := LoadOffer(app, e.Request.PathValue("id"), user.Id, opts)
		if err != nil {
			return respondError(e, "report", err)
		}

		body, contentType, err := RenderOffer(e.Request.Context(), data, format)
		if err != nil {
			return respondError(e, "report", fmt.Errorf("render %s offer: %w", format, err))
		}
		reportsGenerated.WithLabelValues(format).Inc()

		if format == services.FormatHTML {
			return e.HTML(http.StatusOK, string(body))
		}

		filename := services.OfferFilename(data.Project.Name, format)
		e.Response.Header().Set("Content-Type", contentType)
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.WriteHeader(http.StatusOK)
		_, err = e.Response.Write(body)
		return err
	}
}
