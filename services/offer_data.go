package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultCompanyName is shown when the user has not set a company name.
const DefaultCompanyName = "Contractor Services"

// DefaultValidityDays is the offer validity printed in the footer.
const DefaultValidityDays = 30

// Offer formats.
const (
	FormatHTML = "html"
	FormatPDF  = "pdf"
	FormatXLSX = "xlsx"
)

var OfferFormats = []string{FormatHTML, FormatPDF, FormatXLSX}

// Content types of the offer formats.
const (
	ContentTypeHTML = "text/html; charset=utf-8"
	ContentTypePDF  = "application/pdf"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Branding is the contractor identity printed on every offer.
type Branding struct {
	CompanyName string
	VATID       string
	Logo        []byte // normalized PNG, may be empty
}

// OfferProject is the project and customer information of an offer.
type OfferProject struct {
	ID              string
	Name            string
	Description     string
	Status          string
	CustomerName    string
	CustomerEmail   string
	CustomerAddress string
	OfferTerms      string
}

// OfferOptions are the installation-wide offer settings.
type OfferOptions struct {
	DefaultCompanyName string
	Currency           string
	ValidityDays       int
	Now                func() time.Time
}

func (o OfferOptions) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// OfferData is the single snapshot every offer renderer consumes, so HTML,
// PDF, XLSX and the email attachment always print the same numbers.
type OfferData struct {
	Branding     Branding
	Project      OfferProject
	Costs        CostSummary
	Currency     string
	ValidityDays int
	IssuedAt     time.Time
	fallbackName string
}

// BuildOfferData prices the project's lines against the rate table and
// captures everything the renderers need.
func BuildOfferData(
	project OfferProject,
	branding Branding,
	entries []TimeEntryLine,
	materials []MaterialLine,
	rates RateTable,
	opts OfferOptions,
) OfferData {
	currency := opts.Currency
	if currency == "" {
		currency = DefaultCurrencySymbol
	}
	validity := opts.ValidityDays
	if validity <= 0 {
		validity = DefaultValidityDays
	}
	fallback := opts.DefaultCompanyName
	if fallback == "" {
		fallback = DefaultCompanyName
	}

	return OfferData{
		Branding:     branding,
		Project:      project,
		Costs:        CalculateCosts(entries, materials, rates),
		Currency:     currency,
		ValidityDays: validity,
		IssuedAt:     opts.now(),
		fallbackName: fallback,
	}
}

// CompanyName returns the branding name or the configured fallback.
func (d OfferData) CompanyName() string {
	if d.Branding.CompanyName != "" {
		return d.Branding.CompanyName
	}
	if d.fallbackName != "" {
		return d.fallbackName
	}
	return DefaultCompanyName
}

// Money formats an amount in the offer currency.
func (d OfferData) Money(amount decimal.Decimal) string {
	return FormatMoney(d.Currency, amount)
}

// IssueDate is the offer date printed in the project section.
func (d OfferData) IssueDate() string {
	return d.IssuedAt.Format(time.DateOnly)
}

// GeneratedAt is the timestamp printed in the footer.
func (d OfferData) GeneratedAt() string {
	return d.IssuedAt.Format("2006-01-02 15:04")
}

// ValidityNote is the footer sentence about offer validity.
func (d OfferData) ValidityNote() string {
	return fmt.Sprintf("This offer is valid for %d days from the date of issue.", d.ValidityDays)
}

// TermsLines splits the offer terms into lines, keeping blank lines.
func (d OfferData) TermsLines() []string {
	terms := strings.TrimSpace(d.Project.OfferTerms)
	if terms == "" {
		return nil
	}
	return strings.Split(strings.ReplaceAll(terms, "\r\n", "\n"), "\n")
}

// OfferFilename returns the attachment name for a project offer,
// e.g. "offer_Kitchen_Renovation.pdf".
func OfferFilename(projectName, ext string) string {
	name := sanitizeFilename(strings.TrimSpace(projectName))
	if name == "" {
		name = "project"
	}
	return "offer_" + name + "." + ext
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	s = strings.ReplaceAll(s, "\"", "")
	return s
}

// OrNA returns s, or "N/A" when s is blank.
func OrNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return "N/A"
	}
	return s
}
