package templates

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"contractorpm/services"
)

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func sampleOffer(branding services.Branding) services.OfferData {
	rates := services.NewRateTable([]services.WorkerRate{
		{ID: "wt_elec", Name: "Electrician", HourlyRate: decimal.RequireFromString("50")},
	})
	return services.BuildOfferData(
		services.OfferProject{
			ID:              "p1",
			Name:            "Kitchen Renovation",
			Description:     "Full kitchen refit",
			CustomerName:    "Jane <Doe>",
			CustomerEmail:   "jane@example.com",
			CustomerAddress: "1 Main St",
			OfferTerms:      "50% upfront\nBalance on completion",
		},
		branding,
		[]services.TimeEntryLine{
			{ID: "te1", WorkerTypeID: "wt_elec", Hours: decimal.RequireFromString("3"), Date: "2025-05-20", Description: "Wiring"},
		},
		[]services.MaterialLine{
			{ID: "m1", Name: "Cable", Quantity: decimal.RequireFromString("10"), Unit: "m", UnitPrice: decimal.RequireFromString("5")},
		},
		rates,
		services.OfferOptions{Now: func() time.Time { return fixedNow }},
	)
}

func render(t *testing.T, data services.OfferData) string {
	t.Helper()
	var buf bytes.Buffer
	if err := OfferPage(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return buf.String()
}

func TestOfferPage(t *testing.T) {
	html := render(t, sampleOffer(services.Branding{CompanyName: "Acme Builders", VATID: "DE123"}))

	if !strings.HasPrefix(html, "<!doctype html>") {
		t.Errorf("page does not start with a doctype: %.40q", html)
	}
	for _, want := range []string{
		"<title>Commercial Offer - Kitchen Renovation</title>",
		"Acme Builders",
		"VAT ID: DE123",
		"Jane &lt;Doe&gt;",
		"<td>Electrician</td>",
		"Rate (€/hr)",
		"Subtotal Labor",
		"€150.00",
		"Subtotal Materials",
		"€50.00",
		"Grand Total: €200.00",
		"50% upfront<br>Balance on completion",
		"This offer is valid for 30 days from the date of issue.",
		"Generated on 2025-06-01 09:30",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q", want)
		}
	}
	if strings.Contains(html, "Jane <Doe>") {
		t.Error("customer name was not escaped")
	}
	if strings.Contains(html, "<img") {
		t.Error("logo rendered without branding logo")
	}
}

func TestOfferPage_EmptyProject(t *testing.T) {
	data := services.BuildOfferData(services.OfferProject{Name: "Bare"}, services.Branding{}, nil, nil,
		services.NewRateTable(nil), services.OfferOptions{Now: func() time.Time { return fixedNow }})

	html := render(t, data)

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"fallback company name", services.DefaultCompanyName, true},
		{"N/A placeholders", "N/A", true},
		{"zero grand total", "Grand Total: €0.00", true},
		{"no terms section", "Terms and Conditions", false},
		{"no vat line", "VAT ID:", false},
		{"no worker type summary", "<th>Worker Type</th><th class=\"text-right\">Hours</th>", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.Contains(html, tt.text); got != tt.want {
				t.Errorf("contains %q = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestOfferPage_Logo(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode test png: %v", err)
	}

	html := render(t, sampleOffer(services.Branding{Logo: buf.Bytes()}))

	want := `<img src="` + services.LogoDataURI(buf.Bytes()) + `" class="company-logo" alt="Company Logo">`
	if !strings.Contains(html, want) {
		t.Errorf("HTML missing embedded logo %q", want)
	}
}

func TestOfferPage_AgreesWithOfferTotals(t *testing.T) {
	data := sampleOffer(services.Branding{})

	html := render(t, data)

	for _, amount := range []decimal.Decimal{
		data.Costs.Totals.Labor,
		data.Costs.Totals.Materials,
		data.Costs.Totals.Grand,
	} {
		if want := data.Money(amount); !strings.Contains(html, want) {
			t.Errorf("HTML missing total %q", want)
		}
	}
}

func TestOfferPage_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := OfferPage(sampleOffer(services.Branding{})).Render(ctx, &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Render() error = %v, want context.Canceled", err)
	}
}
