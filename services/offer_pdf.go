package services

import (
	"fmt"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	pdfAccent    = &props.Color{Red: 44, Green: 82, Blue: 130}
	pdfMuted     = &props.Color{Red: 102, Green: 102, Blue: 102}
	pdfWhite     = &props.Color{Red: 255, Green: 255, Blue: 255}
	pdfHeaderBg  = &props.Cell{BackgroundColor: &props.Color{Red: 245, Green: 245, Blue: 245}}
	pdfSubtotal  = &props.Cell{BackgroundColor: &props.Color{Red: 249, Green: 249, Blue: 249}}
	pdfGrandCell = &props.Cell{BackgroundColor: pdfAccent}
)

// GenerateOfferPDF renders the offer as an A4 PDF document.
func GenerateOfferPDF(data OfferData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Vertical).
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).
		WithTopMargin(15).
		WithRightMargin(15).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	addOfferHeader(m, data)
	addInfoBlock(m, "Project Information", [][2]string{
		{"Project Name:", data.Project.Name},
		{"Description:", OrNA(data.Project.Description)},
		{"Date:", data.IssueDate()},
	})
	addInfoBlock(m, "Customer Information", [][2]string{
		{"Name:", OrNA(data.Project.CustomerName)},
		{"Email:", OrNA(data.Project.CustomerEmail)},
		{"Address:", OrNA(data.Project.CustomerAddress)},
	})
	addLaborTable(m, data)
	addMaterialTable(m, data)
	addGrandTotal(m, data)
	addTerms(m, data)
	addOfferFooter(m, data)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	return doc.GetBytes(), nil
}

// addOfferHeader prints the logo, company name, VAT ID and document title.
func addOfferHeader(m core.Maroto, data OfferData) {
	if len(data.Branding.Logo) > 0 {
		m.AddRows(
			row.New(22).Add(
				col.New(12).Add(
					image.NewFromBytes(data.Branding.Logo, extension.Png, props.Rect{
						Center:  true,
						Percent: 90,
					}),
				),
			),
		)
	}

	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New(data.CompanyName(), props.Text{
					Size:  16,
					Style: fontstyle.Bold,
					Align: align.Center,
					Color: pdfAccent,
				}),
			),
		),
	)

	if data.Branding.VATID != "" {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(
					text.New("VAT ID: "+data.Branding.VATID, props.Text{
						Size:  8,
						Align: align.Center,
						Color: pdfMuted,
					}),
				),
			),
		)
	}

	m.AddRows(
		row.New(9).Add(
			col.New(12).Add(
				text.New("Commercial Offer", props.Text{
					Size:  13,
					Align: align.Center,
					Color: pdfMuted,
					Top:   2,
				}),
			),
		),
	)
	m.AddRows(row.New(6))
}

func addSectionTitle(m core.Maroto, title string) {
	m.AddRows(
		row.New(8).Add(
			col.New(12).Add(
				text.New(title, props.Text{
					Size:  11,
					Style: fontstyle.Bold,
					Color: pdfAccent,
				}),
			),
		),
	)
}

func addInfoBlock(m core.Maroto, title string, rows [][2]string) {
	addSectionTitle(m, title)
	for _, r := range rows {
		m.AddRows(
			row.New(6).Add(
				col.New(3).Add(text.New(r[0], props.Text{Size: 9, Style: fontstyle.Bold})),
				col.New(9).Add(text.New(r[1], props.Text{Size: 9})),
			),
		)
	}
	m.AddRows(row.New(4))
}

// addLaborTable prints one row per time entry followed by the labor
// subtotal and the per-worker-type summary.
func addLaborTable(m core.Maroto, data OfferData) {
	addSectionTitle(m, "Labor Costs")

	head := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Top: 1}
	headRight := head
	headRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(2).Add(text.New("Date", head)).WithStyle(pdfHeaderBg),
			col.New(2).Add(text.New("Worker Type", head)).WithStyle(pdfHeaderBg),
			col.New(3).Add(text.New("Description", head)).WithStyle(pdfHeaderBg),
			col.New(1).Add(text.New("Hours", headRight)).WithStyle(pdfHeaderBg),
			col.New(2).Add(text.New("Rate", headRight)).WithStyle(pdfHeaderBg),
			col.New(2).Add(text.New("Cost", headRight)).WithStyle(pdfHeaderBg),
		),
	)

	cell := props.Text{Size: 8, Align: align.Left, Top: 1}
	cellRight := cell
	cellRight.Align = align.Right

	for _, l := range data.Costs.Labor {
		m.AddRows(
			row.New(7).Add(
				col.New(2).Add(text.New(l.Date, cell)),
				col.New(2).Add(text.New(l.WorkerType, cell)),
				col.New(3).Add(text.New(l.Description, cell)),
				col.New(1).Add(text.New(FormatQty(l.Hours), cellRight)),
				col.New(2).Add(text.New(data.Money(l.Rate), cellRight)),
				col.New(2).Add(text.New(data.Money(l.Cost), cellRight)),
			),
		)
	}

	addSubtotal(m, "Subtotal Labor", data.Money(data.Costs.Totals.Labor))

	if len(data.Costs.LaborByWorkerType) > 0 {
		m.AddRows(row.New(3))
		m.AddRows(
			row.New(7).Add(
				col.New(6).Add(text.New("Worker Type", head)).WithStyle(pdfHeaderBg),
				col.New(2).Add(text.New("Hours", headRight)).WithStyle(pdfHeaderBg),
				col.New(2).Add(text.New("Rate", headRight)).WithStyle(pdfHeaderBg),
				col.New(2).Add(text.New("Cost", headRight)).WithStyle(pdfHeaderBg),
			),
		)
		for _, s := range data.Costs.LaborByWorkerType {
			m.AddRows(
				row.New(7).Add(
					col.New(6).Add(text.New(s.WorkerType, cell)),
					col.New(2).Add(text.New(FormatQty(s.Hours), cellRight)),
					col.New(2).Add(text.New(data.Money(s.Rate), cellRight)),
					col.New(2).Add(text.New(data.Money(s.Cost), cellRight)),
				),
			)
		}
	}
	m.AddRows(row.New(4))
}

func addMaterialTable(m core.Maroto, data OfferData) {
	addSectionTitle(m, "Material Costs")

	head := props.Text{Size: 8, Style: fontstyle.Bold, Align: align.Left, Top: 1}
	headRight := head
	headRight.Align = align.Right

	m.AddRows(
		row.New(7).Add(
			col.New(4).Add(text.New("Material", head)).WithStyle(pdfHeaderBg),
			col.New(2).Add(text.New("Quantity", headRight)).WithStyle(pdfHeaderBg),
			col.New(2).Add(text.New("Unit", head)).WithStyle(pdfHeaderBg),
			col.New(2).Add(text.New("Unit Price", headRight)).WithStyle(pdfHeaderBg),
			col.New(2).Add(text.New("Cost", headRight)).WithStyle(pdfHeaderBg),
		),
	)

	cell := props.Text{Size: 8, Align: align.Left, Top: 1}
	cellRight := cell
	cellRight.Align = align.Right

	for _, mat := range data.Costs.Materials {
		m.AddRows(
			row.New(7).Add(
				col.New(4).Add(text.New(mat.Name, cell)),
				col.New(2).Add(text.New(FormatQty(mat.Quantity), cellRight)),
				col.New(2).Add(text.New(mat.Unit, cell)),
				col.New(2).Add(text.New(data.Money(mat.UnitPrice), cellRight)),
				col.New(2).Add(text.New(data.Money(mat.Cost), cellRight)),
			),
		)
	}

	addSubtotal(m, "Subtotal Materials", data.Money(data.Costs.Totals.Materials))
	m.AddRows(row.New(4))
}

func addSubtotal(m core.Maroto, label, value string) {
	style := props.Text{Size: 9, Style: fontstyle.Bold, Align: align.Right, Top: 1}
	m.AddRows(
		row.New(7).Add(
			col.New(9).Add(text.New(label, style)).WithStyle(pdfSubtotal),
			col.New(3).Add(text.New(value, style)).WithStyle(pdfSubtotal),
		),
	)
}

func addGrandTotal(m core.Maroto, data OfferData) {
	style := props.Text{Size: 12, Style: fontstyle.Bold, Align: align.Right, Color: pdfWhite, Top: 2, Right: 2}
	m.AddRows(
		row.New(10).Add(
			col.New(12).Add(
				text.New("Grand Total: "+data.Money(data.Costs.Totals.Grand), style),
			).WithStyle(pdfGrandCell),
		),
	)
}

func addTerms(m core.Maroto, data OfferData) {
	lines := data.TermsLines()
	if len(lines) == 0 {
		return
	}
	m.AddRows(row.New(6))
	addSectionTitle(m, "Terms and Conditions")
	for _, l := range lines {
		m.AddRows(
			row.New(5).Add(
				col.New(12).Add(text.New(l, props.Text{Size: 9})),
			),
		)
	}
}

func addOfferFooter(m core.Maroto, data OfferData) {
	footer := props.Text{Size: 8, Align: align.Center, Color: pdfMuted}
	m.AddRows(row.New(8))
	m.AddRows(
		row.New(5).Add(col.New(12).Add(text.New(data.ValidityNote(), footer))),
		row.New(5).Add(col.New(12).Add(text.New("Generated on "+data.GeneratedAt(), footer))),
	)
}
