package handlers

import (
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/router"

	"contractorpm/services"
)

// apiError maps a handler error onto the JSON error the client receives.
func apiError(err error) *router.ApiError {
	var (
		apiErr  *router.ApiError
		verrs   validation.Errors
		inUse   *services.WorkerTypeInUseError
		mailErr *services.EmailError
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.As(err, &verrs):
		return router.NewBadRequestError(verrs.Error(), verrs)
	case errors.Is(err, services.ErrNotFound):
		return router.NewNotFoundError(err.Error(), nil)
	case errors.As(err, &inUse):
		return router.NewApiError(http.StatusConflict, err.Error(), nil)
	case errors.Is(err, services.ErrEmailNotConfigured):
		return router.NewBadRequestError(err.Error(), nil)
	case errors.Is(err, services.ErrNotAnImage):
		return router.NewBadRequestError(err.Error(), map[string]any{"file": err.Error()})
	case errors.As(err, &mailErr):
		return router.NewApiError(http.StatusBadGateway, err.Error(), nil)
	default:
		return router.NewInternalServerError("Something went wrong while processing your request.", nil)
	}
}

// respondError logs unexpected failures under op and writes the mapped
// error response.
func respondError(e *core.RequestEvent, op string, err error) error {
	apiErr := apiError(err)
	if apiErr.Status >= http.StatusInternalServerError {
		e.App.Logger().Error(op+": request failed", "error", err, "path", e.Request.URL.Path)
	}
	return e.JSON(apiErr.Status, apiErr)
}

// authUser returns the authenticated user of the request.
func authUser(e *core.RequestEvent) (*core.Record, error) {
	if e.Auth == nil || e.Auth.Collection().Name != "users" {
		return nil, router.NewUnauthorizedError("The request requires valid user authorization token.", nil)
	}
	return e.Auth, nil
}

// bindJSON decodes the request body into dst.
func bindJSON(e *core.RequestEvent, dst any) error {
	if err := e.BindBody(dst); err != nil {
		return router.NewBadRequestError("Invalid JSON body.", err)
	}
	return nil
}
