package handlers

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/filesystem"

	"contractorpm/services"
)

// HandleMe returns the authenticated user's profile.
func HandleMe(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "me", err)
		}
		return e.JSON(http.StatusOK, profileView(user))
	}
}

// HandleProfileUpdate replaces the company name and VAT id.
func HandleProfileUpdate(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "profile_update", err)
		}

		var in services.ProfileInput
		if err := bindJSON(e, &in); err != nil {
			return respondError(e, "profile_update", err)
		}
		in.Normalize()
		if err := in.Validate(); err != nil {
			return respondError(e, "profile_update", err)
		}

		user.Set("company_name", in.CompanyName)
		user.Set("vat_id", in.VATID)
		if err := app.Save(user); err != nil {
			return respondError(e, "profile_update", err)
		}
		return e.JSON(http.StatusOK, profileView(user))
	}
}

// HandleLogoUpload stores the multipart "file" as the user's logo. The
// upload must sniff as an image; it is normalized to PNG before saving and
// replaces any previous logo.
func HandleLogoUpload(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "logo_upload", err)
		}

		file, _, err := e.Request.FormFile("file")
		if err != nil {
			return respondError(e, "logo_upload", services.FieldError("file", "cannot be blank"))
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, services.MaxLogoBytes+1))
		if err != nil {
			return respondError(e, "logo_upload", fmt.Errorf("read upload: %w", err))
		}
		if len(data) > services.MaxLogoBytes {
			return respondError(e, "logo_upload", services.FieldError("file", "must not be larger than 5 MB"))
		}
		if _, err := services.DetectImage(data); err != nil {
			return respondError(e, "logo_upload", err)
		}

		png, err := services.NormalizeLogo(bytes.NewReader(data))
		if err != nil {
			return respondError(e, "logo_upload", services.ErrNotAnImage)
		}

		f, err := filesystem.NewFileFromBytes(png, "logo.png")
		if err != nil {
			return respondError(e, "logo_upload", fmt.Errorf("prepare logo file: %w", err))
		}
		user.Set("logo", f)
		if err := app.Save(user); err != nil {
			return respondError(e, "logo_upload", err)
		}

		app.Logger().Info("logo_upload: logo replaced", "user", user.Id, "bytes", len(png))
		return e.JSON(http.StatusOK, profileView(user))
	}
}

// HandleLogoDelete removes the user's logo.
func HandleLogoDelete(app core.App) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		user, err := authUser(e)
		if err != nil {
			return respondError(e, "logo_delete", err)
		}

		user.Set("logo", "")
		if err := app.Save(user); err != nil {
			return respondError(e, "logo_delete", err)
		}
		return e.JSON(http.StatusOK, profileView(user))
	}
}
