package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// OfferSheetName is the worksheet that holds the offer.
const OfferSheetName = "Offer"

// offerSheet writes the offer top to bottom, one row at a time.
type offerSheet struct {
	f      *excelize.File
	sheet  string
	row    int
	styles offerStyles
}

type offerStyles struct {
	title, subtitle, section, label, header, cell, amount, subtotal, subtotalAmount, grand int
}

// GenerateOfferExcel renders the offer as an XLSX workbook with numeric
// amount cells.
func GenerateOfferExcel(data OfferData) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, OfferSheetName); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	widths := map[string]float64{"A": 14, "B": 22, "C": 36, "D": 10, "E": 16, "F": 16}
	for c, w := range widths {
		if err := f.SetColWidth(OfferSheetName, c, c, w); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", c, err)
		}
	}

	styles, err := newOfferStyles(f)
	if err != nil {
		return nil, err
	}

	s := &offerSheet{f: f, sheet: OfferSheetName, row: 1, styles: styles}

	if len(data.Branding.Logo) > 0 {
		if err := f.AddPictureFromBytes(OfferSheetName, "A1", &excelize.Picture{
			Extension: ".png",
			File:      data.Branding.Logo,
			Format: &excelize.GraphicOptions{
				ScaleX:          0.25,
				ScaleY:          0.25,
				LockAspectRatio: true,
			},
		}); err != nil {
			return nil, fmt.Errorf("add logo: %w", err)
		}
		if err := f.SetRowHeight(OfferSheetName, 1, 80); err != nil {
			return nil, fmt.Errorf("set logo row height: %w", err)
		}
		s.row = 2
	}

	s.merged(data.CompanyName(), s.styles.title)
	if data.Branding.VATID != "" {
		s.merged("VAT ID: "+data.Branding.VATID, s.styles.subtitle)
	}
	s.merged("Commercial Offer", s.styles.subtitle)
	s.row++

	s.section("Project Information")
	s.info("Project Name:", data.Project.Name)
	s.info("Description:", OrNA(data.Project.Description))
	s.info("Date:", data.IssueDate())
	s.row++

	s.section("Customer Information")
	s.info("Name:", OrNA(data.Project.CustomerName))
	s.info("Email:", OrNA(data.Project.CustomerEmail))
	s.info("Address:", OrNA(data.Project.CustomerAddress))
	s.row++

	cur := data.Currency
	s.section("Labor Costs")
	s.header("Date", "Worker Type", "Description", "Hours", "Rate ("+cur+"/hr)", "Cost ("+cur+")")
	for _, l := range data.Costs.Labor {
		s.values(
			[]any{l.Date, sanitizeExcelCell(l.WorkerType), sanitizeExcelCell(l.Description)},
			[]any{l.Hours.InexactFloat64(), Float2(l.Rate), Float2(l.Cost)},
		)
	}
	s.subtotal("Subtotal Labor", Float2(data.Costs.Totals.Labor))

	if len(data.Costs.LaborByWorkerType) > 0 {
		s.row++
		s.header("Worker Type", "", "", "Hours", "Rate ("+cur+"/hr)", "Cost ("+cur+")")
		for _, w := range data.Costs.LaborByWorkerType {
			s.values(
				[]any{sanitizeExcelCell(w.WorkerType), "", ""},
				[]any{w.Hours.InexactFloat64(), Float2(w.Rate), Float2(w.Cost)},
			)
		}
	}
	s.row++

	s.section("Material Costs")
	s.header("Material", "Supplier", "Unit", "Quantity", "Unit Price ("+cur+")", "Cost ("+cur+")")
	for _, m := range data.Costs.Materials {
		s.values(
			[]any{sanitizeExcelCell(m.Name), sanitizeExcelCell(m.Supplier), m.Unit},
			[]any{m.Quantity.InexactFloat64(), Float2(m.UnitPrice), Float2(m.Cost)},
		)
	}
	s.subtotal("Subtotal Materials", Float2(data.Costs.Totals.Materials))
	s.row++

	s.grandTotal("Grand Total ("+cur+")", Float2(data.Costs.Totals.Grand))
	s.row++

	if lines := data.TermsLines(); len(lines) > 0 {
		s.section("Terms and Conditions")
		for _, l := range lines {
			s.merged(sanitizeExcelCell(l), s.styles.cell)
		}
		s.row++
	}

	s.merged(data.ValidityNote(), s.styles.subtitle)
	s.merged("Generated on "+data.GeneratedAt(), s.styles.subtitle)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write excel: %w", err)
	}

	return buf.Bytes(), nil
}

func newOfferStyles(f *excelize.File) (offerStyles, error) {
	var st offerStyles
	amountFmt := 4 // #,##0.00

	defs := []struct {
		target *int
		name   string
		style  *excelize.Style
	}{
		{&st.title, "title", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 16, Color: "#2C5282"}}},
		{&st.subtitle, "subtitle", &excelize.Style{Font: &excelize.Font{Size: 10, Color: "#666666"}}},
		{&st.section, "section", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 12, Color: "#2C5282"}}},
		{&st.label, "label", &excelize.Style{Font: &excelize.Font{Bold: true, Size: 10}}},
		{&st.header, "header", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F5F5F5"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
			Border:    thinBorders(),
		}},
		{&st.cell, "cell", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders()}},
		{&st.amount, "amount", &excelize.Style{Font: &excelize.Font{Size: 10}, Border: thinBorders(), NumFmt: amountFmt}},
		{&st.subtotal, "subtotal", &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F9F9F9"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Border:    thinBorders(),
		}},
		{&st.subtotalAmount, "subtotal amount", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 10},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#F9F9F9"}, Pattern: 1},
			Border: thinBorders(),
			NumFmt: amountFmt,
		}},
		{&st.grand, "grand total", &excelize.Style{
			Font:   &excelize.Font{Bold: true, Size: 12, Color: "#FFFFFF"},
			Fill:   excelize.Fill{Type: "pattern", Color: []string{"#2C5282"}, Pattern: 1},
			NumFmt: amountFmt,
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return st, fmt.Errorf("create %s style: %w", d.name, err)
		}
		*d.target = id
	}
	return st, nil
}

func (s *offerSheet) ref(col string) string {
	return fmt.Sprintf("%s%d", col, s.row)
}

// merged writes text across all six columns.
func (s *offerSheet) merged(value string, style int) {
	s.f.MergeCell(s.sheet, s.ref("A"), s.ref("F"))
	s.f.SetCellValue(s.sheet, s.ref("A"), value)
	s.f.SetCellStyle(s.sheet, s.ref("A"), s.ref("F"), style)
	s.row++
}

func (s *offerSheet) section(title string) {
	s.f.SetCellValue(s.sheet, s.ref("A"), title)
	s.f.SetCellStyle(s.sheet, s.ref("A"), s.ref("A"), s.styles.section)
	s.row++
}

func (s *offerSheet) info(label, value string) {
	s.f.SetCellValue(s.sheet, s.ref("A"), label)
	s.f.SetCellStyle(s.sheet, s.ref("A"), s.ref("A"), s.styles.label)
	s.f.MergeCell(s.sheet, s.ref("B"), s.ref("F"))
	s.f.SetCellValue(s.sheet, s.ref("B"), sanitizeExcelCell(value))
	s.row++
}

func (s *offerSheet) header(titles ...string) {
	for i, t := range titles {
		s.f.SetCellValue(s.sheet, s.ref(string(rune('A'+i))), t)
	}
	s.f.SetCellStyle(s.sheet, s.ref("A"), s.ref("F"), s.styles.header)
	s.row++
}

// values writes three text columns followed by three numeric columns.
func (s *offerSheet) values(texts []any, amounts []any) {
	for i, v := range texts {
		s.f.SetCellValue(s.sheet, s.ref(string(rune('A'+i))), v)
	}
	for i, v := range amounts {
		s.f.SetCellValue(s.sheet, s.ref(string(rune('D'+i))), v)
	}
	s.f.SetCellStyle(s.sheet, s.ref("A"), s.ref("C"), s.styles.cell)
	s.f.SetCellStyle(s.sheet, s.ref("D"), s.ref("F"), s.styles.amount)
	s.row++
}

func (s *offerSheet) subtotal(label string, value float64) {
	s.f.MergeCell(s.sheet, s.ref("A"), s.ref("E"))
	s.f.SetCellValue(s.sheet, s.ref("A"), label)
	s.f.SetCellStyle(s.sheet, s.ref("A"), s.ref("E"), s.styles.subtotal)
	s.f.SetCellValue(s.sheet, s.ref("F"), value)
	s.f.SetCellStyle(s.sheet, s.ref("F"), s.ref("F"), s.styles.subtotalAmount)
	s.row++
}

func (s *offerSheet) grandTotal(label string, value float64) {
	s.f.MergeCell(s.sheet, s.ref("A"), s.ref("E"))
	s.f.SetCellValue(s.sheet, s.ref("A"), label)
	s.f.SetCellValue(s.sheet, s.ref("F"), value)
	s.f.SetCellStyle(s.sheet, s.ref("A"), s.ref("F"), s.styles.grand)
	s.row++
}

// sanitizeExcelCell prevents formula injection by prefixing dangerous leading
// characters with a single quote.
func sanitizeExcelCell(s string) string {
	if len(s) == 0 {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r', '|':
		return "'" + s
	}
	return s
}

// thinBorders returns thin borders on all four sides.
func thinBorders() []excelize.Border {
	sides := []string{"left", "top", "bottom", "right"}
	borders := make([]excelize.Border, len(sides))
	for i, side := range sides {
		borders[i] = excelize.Border{
			Type:  side,
			Color: "#000000",
			Style: 1,
		}
	}
	return borders
}
