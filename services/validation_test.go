package services

import (
	"errors"
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

func ptr(f float64) *float64 { return &f }

// fieldErrors returns the per-field errors of a validation failure.
func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %T: %v", err, err)
	}
	return verrs
}

func TestProjectInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     ProjectInput
		wantField string
	}{
		{"valid minimal", ProjectInput{Name: "Kitchen"}, ""},
		{"missing name", ProjectInput{Name: "   "}, "name"},
		{"bad status", ProjectInput{Name: "Kitchen", Status: "archived"}, "status"},
		{"bad email", ProjectInput{Name: "Kitchen", CustomerEmail: "not-an-email"}, "customer_email"},
		{"valid full", ProjectInput{Name: "Bath", Status: StatusActive, CustomerEmail: "a@b.com"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.Normalize()
			err := in.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if _, ok := fieldErrors(t, err)[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, err)
			}
		})
	}
}

func TestProjectInput_NormalizeDefaultsStatus(t *testing.T) {
	in := ProjectInput{Name: "  Kitchen  "}
	in.Normalize()
	if in.Status != StatusDraft {
		t.Errorf("Status = %q, want %q", in.Status, StatusDraft)
	}
	if in.Name != "Kitchen" {
		t.Errorf("Name = %q, want trimmed", in.Name)
	}
}

func TestWorkerTypeInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     WorkerTypeInput
		wantField string
	}{
		{"valid", WorkerTypeInput{Name: "Electrician", HourlyRate: ptr(45)}, ""},
		{"zero rate", WorkerTypeInput{Name: "Volunteer", HourlyRate: ptr(0)}, ""},
		{"negative rate", WorkerTypeInput{Name: "Electrician", HourlyRate: ptr(-1)}, "hourly_rate"},
		{"missing rate", WorkerTypeInput{Name: "Electrician"}, "hourly_rate"},
		{"missing name", WorkerTypeInput{HourlyRate: ptr(10)}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.Normalize()
			err := in.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if _, ok := fieldErrors(t, err)[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, err)
			}
		})
	}
}

func TestTimeEntryInput(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	t.Run("defaults date to today", func(t *testing.T) {
		in := TimeEntryInput{WorkerTypeID: "wt1", Hours: ptr(2)}
		in.Normalize(now)
		if in.Date != "2025-03-14" {
			t.Errorf("Date = %q, want 2025-03-14", in.Date)
		}
		if err := in.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
	})

	t.Run("rejects malformed date", func(t *testing.T) {
		in := TimeEntryInput{WorkerTypeID: "wt1", Hours: ptr(2), Date: "14/03/2025"}
		in.Normalize(now)
		if _, ok := fieldErrors(t, in.Validate())["date"]; !ok {
			t.Error("expected date error")
		}
	})

	t.Run("rejects negative hours", func(t *testing.T) {
		in := TimeEntryInput{WorkerTypeID: "wt1", Hours: ptr(-0.5)}
		in.Normalize(now)
		if _, ok := fieldErrors(t, in.Validate())["hours"]; !ok {
			t.Error("expected hours error")
		}
	})

	t.Run("requires worker type", func(t *testing.T) {
		in := TimeEntryInput{Hours: ptr(1)}
		in.Normalize(now)
		if _, ok := fieldErrors(t, in.Validate())["worker_type_id"]; !ok {
			t.Error("expected worker_type_id error")
		}
	})
}

func TestMaterialInput_Validate(t *testing.T) {
	tests := []struct {
		name      string
		input     MaterialInput
		wantField string
	}{
		{"valid default unit", MaterialInput{Name: "Tiles", Quantity: ptr(20), UnitPrice: ptr(3.5)}, ""},
		{"valid unit", MaterialInput{Name: "Cable", Quantity: ptr(10), Unit: "m", UnitPrice: ptr(1)}, ""},
		{"unknown unit", MaterialInput{Name: "Cable", Quantity: ptr(10), Unit: "yard", UnitPrice: ptr(1)}, "unit"},
		{"negative price", MaterialInput{Name: "Cable", Quantity: ptr(10), UnitPrice: ptr(-1)}, "unit_price"},
		{"negative quantity", MaterialInput{Name: "Cable", Quantity: ptr(-1), UnitPrice: ptr(1)}, "quantity"},
		{"missing name", MaterialInput{Quantity: ptr(1), UnitPrice: ptr(1)}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.input
			in.Normalize()
			err := in.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if _, ok := fieldErrors(t, err)[tt.wantField]; !ok {
				t.Errorf("expected error on %q, got %v", tt.wantField, err)
			}
		})
	}
}

func TestOfferEmailRequest_Validate(t *testing.T) {
	ok := OfferEmailRequest{ToEmail: "customer@example.com"}
	if err := ok.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}

	bad := OfferEmailRequest{ToEmail: "nope"}
	if _, found := fieldErrors(t, bad.Validate())["to_email"]; !found {
		t.Error("expected to_email error")
	}

	missing := OfferEmailRequest{}
	if _, found := fieldErrors(t, missing.Validate())["to_email"]; !found {
		t.Error("expected to_email error for empty recipient")
	}
}

func TestOfferEmailRequest_NormalizeTrimsOnlyRecipient(t *testing.T) {
	req := OfferEmailRequest{ToEmail: "  customer@example.com ", Subject: " Quote ", Message: "Hi\n"}
	req.Normalize()

	want := OfferEmailRequest{ToEmail: "customer@example.com", Subject: " Quote ", Message: "Hi\n"}
	if req != want {
		t.Errorf("Normalize() = %+v, want %+v", req, want)
	}
}

func TestFieldError(t *testing.T) {
	err := FieldError("format", "must be one of html, pdf, xlsx")
	verrs := fieldErrors(t, err)
	if verrs["format"] == nil {
		t.Fatal("expected format error")
	}
	if got := err.Error(); got != "format: must be one of html, pdf, xlsx." {
		t.Errorf("Error() = %q", got)
	}
}
