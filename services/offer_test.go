package services

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"
)

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

func sampleOffer(t *testing.T) OfferData {
	t.Helper()
	return BuildOfferData(
		OfferProject{
			ID:              "p1",
			Name:            "Kitchen Renovation",
			Description:     "Full kitchen refit",
			CustomerName:    "Jane <Doe>",
			CustomerEmail:   "jane@example.com",
			CustomerAddress: "1 Main St",
			OfferTerms:      "50% upfront\nBalance on completion",
		},
		Branding{CompanyName: "Acme Builders", VATID: "DE123"},
		[]TimeEntryLine{
			{ID: "te1", WorkerTypeID: "wt_elec", Hours: d("3"), Date: "2025-05-20", Description: "Wiring"},
		},
		[]MaterialLine{
			{ID: "m1", Name: "Cable", Quantity: d("10"), Unit: "m", UnitPrice: d("5")},
		},
		testRates(),
		OfferOptions{Now: func() time.Time { return fixedNow }},
	)
}

func TestBuildOfferData_Defaults(t *testing.T) {
	data := BuildOfferData(OfferProject{Name: "X"}, Branding{}, nil, nil, testRates(), OfferOptions{})

	if data.Currency != DefaultCurrencySymbol {
		t.Errorf("Currency = %q, want %q", data.Currency, DefaultCurrencySymbol)
	}
	if data.ValidityDays != DefaultValidityDays {
		t.Errorf("ValidityDays = %d, want %d", data.ValidityDays, DefaultValidityDays)
	}
	if data.CompanyName() != DefaultCompanyName {
		t.Errorf("CompanyName() = %q, want %q", data.CompanyName(), DefaultCompanyName)
	}
}

func TestBuildOfferData_ConfiguredFallbackName(t *testing.T) {
	data := BuildOfferData(OfferProject{Name: "X"}, Branding{}, nil, nil, testRates(),
		OfferOptions{DefaultCompanyName: "Handy Co", Currency: "$", ValidityDays: 14})

	if data.CompanyName() != "Handy Co" {
		t.Errorf("CompanyName() = %q, want Handy Co", data.CompanyName())
	}
	if data.ValidityNote() != "This offer is valid for 14 days from the date of issue." {
		t.Errorf("ValidityNote() = %q", data.ValidityNote())
	}
	if data.Money(d("3")) != "$3.00" {
		t.Errorf("Money(3) = %q", data.Money(d("3")))
	}
}

func TestOfferFilename(t *testing.T) {
	tests := []struct {
		name, project, ext, want string
	}{
		{"spaces", "Kitchen Renovation", "pdf", "offer_Kitchen_Renovation.pdf"},
		{"slashes", "A/B: C", "xlsx", "offer_A-B-_C.xlsx"},
		{"empty", "  ", "pdf", "offer_project.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OfferFilename(tt.project, tt.ext); got != tt.want {
				t.Errorf("OfferFilename(%q) = %q, want %q", tt.project, got, tt.want)
			}
		})
	}
}

func TestGenerateOfferPDF(t *testing.T) {
	result, err := GenerateOfferPDF(sampleOffer(t))
	if err != nil {
		t.Fatalf("GenerateOfferPDF() error = %v", err)
	}
	if len(result) < 5 || string(result[:5]) != "%PDF-" {
		t.Fatalf("result is not a PDF")
	}
}

func TestGenerateOfferPDF_EmptyProject(t *testing.T) {
	data := BuildOfferData(OfferProject{Name: "Empty"}, Branding{}, nil, nil, testRates(), OfferOptions{})

	result, err := GenerateOfferPDF(data)
	if err != nil {
		t.Fatalf("GenerateOfferPDF() error = %v", err)
	}
	if len(result) == 0 {
		t.Fatal("GenerateOfferPDF() returned empty bytes")
	}
}

func TestGenerateOfferPDF_WithLogo(t *testing.T) {
	data := sampleOffer(t)
	data.Branding.Logo = testPNG(t, 120, 60)

	result, err := GenerateOfferPDF(data)
	if err != nil {
		t.Fatalf("GenerateOfferPDF() error = %v", err)
	}
	if !bytes.HasPrefix(result, []byte("%PDF-")) {
		t.Fatal("result is not a PDF")
	}
}

func TestGenerateOfferExcel(t *testing.T) {
	result, err := GenerateOfferExcel(sampleOffer(t))
	if err != nil {
		t.Fatalf("GenerateOfferExcel() error = %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("result is not valid Excel: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) != 1 || sheets[0] != OfferSheetName {
		t.Fatalf("sheets = %v, want [%s]", sheets, OfferSheetName)
	}

	title, _ := f.GetCellValue(OfferSheetName, "A1")
	if title != "Acme Builders" {
		t.Errorf("A1 = %q, want company name", title)
	}

	rows, err := f.GetRows(OfferSheetName)
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}
	var grand string
	for _, r := range rows {
		if len(r) >= 6 && strings.HasPrefix(r[0], "Grand Total") {
			grand = r[5]
		}
	}
	if grand != "200.00" {
		t.Errorf("grand total cell = %q, want 200.00", grand)
	}
}

func TestGenerateOfferExcel_FormulaInjection(t *testing.T) {
	data := sampleOffer(t)
	data.Costs.Materials[0].Name = "=HYPERLINK(\"x\")"

	result, err := GenerateOfferExcel(data)
	if err != nil {
		t.Fatalf("GenerateOfferExcel() error = %v", err)
	}
	f, err := excelize.OpenReader(bytes.NewReader(result))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, _ := f.GetRows(OfferSheetName)
	for _, r := range rows {
		if len(r) > 0 && strings.Contains(r[0], "HYPERLINK") && !strings.HasPrefix(r[0], "'") {
			t.Errorf("formula not neutralized: %q", r[0])
		}
	}
}
