package handlers

import (
	"github.com/pocketbase/pocketbase/core"

	"contractorpm/services"
)

// TotalsView carries derived totals. They are computed on every read and
// never stored.
type TotalsView struct {
	Labor     float64 `json:"labor_total"`
	Materials float64 `json:"material_total"`
	Grand     float64 `json:"grand_total"`
}

type ProjectView struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description"`
	CustomerName    string     `json:"customer_name"`
	CustomerEmail   string     `json:"customer_email"`
	CustomerAddress string     `json:"customer_address"`
	Status          string     `json:"status"`
	OfferTerms      string     `json:"offer_terms"`
	Created         string     `json:"created"`
	Updated         string     `json:"updated"`
	Totals          TotalsView `json:"totals"`
}

type ProjectDetailView struct {
	ProjectView
	TimeEntries       []TimeEntryView         `json:"time_entries"`
	Materials         []MaterialView          `json:"materials"`
	LaborByWorkerType []WorkerTypeSummaryView `json:"labor_by_worker_type"`
}

type WorkerTypeView struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"hourly_rate"`
	Created    string  `json:"created"`
}

type WorkerTypeSummaryView struct {
	WorkerTypeID string  `json:"worker_type_id"`
	WorkerType   string  `json:"worker_type_name"`
	Hours        float64 `json:"hours"`
	HourlyRate   float64 `json:"hourly_rate"`
	Cost         float64 `json:"cost"`
}

type TimeEntryView struct {
	ID           string  `json:"id"`
	ProjectID    string  `json:"project_id"`
	WorkerTypeID string  `json:"worker_type_id"`
	WorkerType   string  `json:"worker_type_name"`
	Hours        float64 `json:"hours"`
	HourlyRate   float64 `json:"hourly_rate"`
	Cost         float64 `json:"cost"`
	Date         string  `json:"date"`
	Description  string  `json:"description"`
}

type MaterialView struct {
	ID        string  `json:"id"`
	ProjectID string  `json:"project_id"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	UnitPrice float64 `json:"unit_price"`
	Supplier  string  `json:"supplier"`
	Cost      float64 `json:"cost"`
}

type ProfileView struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	CompanyName string `json:"company_name"`
	VATID       string `json:"vat_id"`
	LogoURL     string `json:"logo_url"`
}

func totalsView(t services.Totals) TotalsView {
	return TotalsView{
		Labor:     services.Float2(t.Labor),
		Materials: services.Float2(t.Materials),
		Grand:     services.Float2(t.Grand),
	}
}

func projectView(r *core.Record, totals services.Totals) ProjectView {
	return ProjectView{
		ID:              r.Id,
		Name:            r.GetString("name"),
		Description:     r.GetString("description"),
		CustomerName:    r.GetString("customer_name"),
		CustomerEmail:   r.GetString("customer_email"),
		CustomerAddress: r.GetString("customer_address"),
		Status:          r.GetString("status"),
		OfferTerms:      r.GetString("offer_terms"),
		Created:         r.GetDateTime("created").String(),
		Updated:         r.GetDateTime("updated").String(),
		Totals:          totalsView(totals),
	}
}

func projectDetailView(r *core.Record, costs services.CostSummary) ProjectDetailView {
	view := ProjectDetailView{
		ProjectView:       projectView(r, costs.Totals),
		TimeEntries:       make([]TimeEntryView, 0, len(costs.Labor)),
		Materials:         make([]MaterialView, 0, len(costs.Materials)),
		LaborByWorkerType: make([]WorkerTypeSummaryView, 0, len(costs.LaborByWorkerType)),
	}
	for _, l := range costs.Labor {
		view.TimeEntries = append(view.TimeEntries, laborView(r.Id, l))
	}
	for _, m := range costs.Materials {
		view.Materials = append(view.Materials, materialCostView(r.Id, m))
	}
	for _, s := range costs.LaborByWorkerType {
		view.LaborByWorkerType = append(view.LaborByWorkerType, WorkerTypeSummaryView{
			WorkerTypeID: s.WorkerTypeID,
			WorkerType:   s.WorkerType,
			Hours:        s.Hours.InexactFloat64(),
			HourlyRate:   services.Float2(s.Rate),
			Cost:         services.Float2(s.Cost),
		})
	}
	return view
}

func laborView(projectID string, l services.LaborCost) TimeEntryView {
	return TimeEntryView{
		ID:           l.EntryID,
		ProjectID:    projectID,
		WorkerTypeID: l.WorkerTypeID,
		WorkerType:   l.WorkerType,
		Hours:        l.Hours.InexactFloat64(),
		HourlyRate:   services.Float2(l.Rate),
		Cost:         services.Float2(l.Cost),
		Date:         l.Date,
		Description:  l.Description,
	}
}

func materialCostView(projectID string, m services.MaterialCost) MaterialView {
	return MaterialView{
		ID:        m.MaterialID,
		ProjectID: projectID,
		Name:      m.Name,
		Quantity:  m.Quantity.InexactFloat64(),
		Unit:      m.Unit,
		UnitPrice: services.Float2(m.UnitPrice),
		Supplier:  m.Supplier,
		Cost:      services.Float2(m.Cost),
	}
}

// timeEntryView prices a single stored entry against the rate table.
func timeEntryView(r *core.Record, rates services.RateTable) TimeEntryView {
	line := timeEntryLine(r)
	return laborView(r.GetString("project"), services.LaborCost{
		EntryID:      line.ID,
		WorkerTypeID: line.WorkerTypeID,
		WorkerType:   rates.NameOf(line.WorkerTypeID),
		Date:         line.Date,
		Description:  line.Description,
		Hours:        line.Hours,
		Rate:         rates.RateOf(line.WorkerTypeID),
		Cost:         services.LaborLineCost(line, rates),
	})
}

func materialView(r *core.Record) MaterialView {
	line := materialLine(r)
	return materialCostView(r.GetString("project"), services.MaterialCost{
		MaterialID: line.ID,
		Name:       line.Name,
		Unit:       line.Unit,
		Supplier:   line.Supplier,
		Quantity:   line.Quantity,
		UnitPrice:  line.UnitPrice,
		Cost:       services.MaterialLineCost(line),
	})
}

func workerTypeView(r *core.Record) WorkerTypeView {
	return WorkerTypeView{
		ID:         r.Id,
		Name:       r.GetString("name"),
		HourlyRate: r.GetFloat("hourly_rate"),
		Created:    r.GetDateTime("created").String(),
	}
}

func profileView(r *core.Record) ProfileView {
	view := ProfileView{
		ID:          r.Id,
		Email:       r.Email(),
		CompanyName: r.GetString("company_name"),
		VATID:       r.GetString("vat_id"),
	}
	if logo := r.GetString("logo"); logo != "" {
		view.LogoURL = "/api/files/" + r.BaseFilesPath() + "/" + logo
	}
	return view
}
