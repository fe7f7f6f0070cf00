package services

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// Project statuses.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

var ProjectStatuses = []string{StatusDraft, StatusActive, StatusCompleted}

// Material units.
var MaterialUnits = []string{"pcs", "m", "m2", "kg", "l", "box"}

// DefaultMaterialUnit is used when a material is submitted without a unit.
const DefaultMaterialUnit = "pcs"

// DateLayout is the wire and storage layout of time entry dates.
const DateLayout = time.DateOnly

func toAny(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// ProjectInput is the full editable state of a project. Updates replace
// every field with the submitted value.
type ProjectInput struct {
	Name            string `json:"name"`
	Description     string `json:"description"`
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerAddress string `json:"customer_address"`
	Status          string `json:"status"`
	OfferTerms      string `json:"offer_terms"`
}

// Normalize trims the input and fills the default status.
func (in *ProjectInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.CustomerName = strings.TrimSpace(in.CustomerName)
	in.CustomerEmail = strings.TrimSpace(in.CustomerEmail)
	in.CustomerAddress = strings.TrimSpace(in.CustomerAddress)
	in.Status = strings.TrimSpace(in.Status)
	if in.Status == "" {
		in.Status = StatusDraft
	}
}

func (in ProjectInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Status, validation.Required, validation.In(toAny(ProjectStatuses)...)),
		validation.Field(&in.CustomerEmail, is.EmailFormat),
		validation.Field(&in.CustomerName, validation.Length(0, 200)),
	)
}

// WorkerTypeInput is the full editable state of a worker type.
type WorkerTypeInput struct {
	Name       string   `json:"name"`
	HourlyRate *float64 `json:"hourly_rate"`
}

func (in *WorkerTypeInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
}

func (in WorkerTypeInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 100)),
		validation.Field(&in.HourlyRate, validation.NotNil, validation.Min(0.0)),
	)
}

// TimeEntryInput is the full editable state of a time entry.
type TimeEntryInput struct {
	WorkerTypeID string   `json:"worker_type_id"`
	Hours        *float64 `json:"hours"`
	Date         string   `json:"date"`
	Description  string   `json:"description"`
}

// Normalize trims the input and defaults the date to today.
func (in *TimeEntryInput) Normalize(now time.Time) {
	in.WorkerTypeID = strings.TrimSpace(in.WorkerTypeID)
	in.Date = strings.TrimSpace(in.Date)
	in.Description = strings.TrimSpace(in.Description)
	if in.Date == "" {
		in.Date = now.Format(DateLayout)
	}
}

func (in TimeEntryInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.WorkerTypeID, validation.Required),
		validation.Field(&in.Hours, validation.NotNil, validation.Min(0.0)),
		validation.Field(&in.Date, validation.Required, validation.Date(DateLayout)),
	)
}

// ParsedDate returns the entry date. Call Validate first.
func (in TimeEntryInput) ParsedDate() (time.Time, error) {
	return time.Parse(DateLayout, in.Date)
}

// MaterialInput is the full editable state of a material.
type MaterialInput struct {
	Name      string   `json:"name"`
	Quantity  *float64 `json:"quantity"`
	Unit      string   `json:"unit"`
	UnitPrice *float64 `json:"unit_price"`
	Supplier  string   `json:"supplier"`
}

func (in *MaterialInput) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Unit = strings.TrimSpace(in.Unit)
	in.Supplier = strings.TrimSpace(in.Supplier)
	if in.Unit == "" {
		in.Unit = DefaultMaterialUnit
	}
}

func (in MaterialInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.Name, validation.Required, validation.Length(1, 200)),
		validation.Field(&in.Quantity, validation.NotNil, validation.Min(0.0)),
		validation.Field(&in.UnitPrice, validation.NotNil, validation.Min(0.0)),
		validation.Field(&in.Unit, validation.Required, validation.In(toAny(MaterialUnits)...)),
	)
}

// ProfileInput is the editable company branding of a user.
type ProfileInput struct {
	CompanyName string `json:"company_name"`
	VATID       string `json:"vat_id"`
}

func (in *ProfileInput) Normalize() {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.VATID = strings.TrimSpace(in.VATID)
}

func (in ProfileInput) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.CompanyName, validation.Length(0, 200)),
		validation.Field(&in.VATID, validation.Length(0, 50)),
	)
}

// OfferEmailRequest asks for the offer PDF to be mailed to a customer.
// Blank subject and message fall back to defaults; otherwise they are sent
// exactly as given.
type OfferEmailRequest struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

func (in *OfferEmailRequest) Normalize() {
	in.ToEmail = strings.TrimSpace(in.ToEmail)
}

func (in OfferEmailRequest) Validate() error {
	return validation.ValidateStruct(&in,
		validation.Field(&in.ToEmail, validation.Required, is.EmailFormat),
		validation.Field(&in.Subject, validation.Length(0, 300)),
	)
}

// FieldError builds a single-field validation error.
func FieldError(field, message string) error {
	return validation.Errors{field: validation.NewError("validation_invalid_value", message)}
}
