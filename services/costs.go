package services

import (
	"sort"

	"github.com/shopspring/decimal"
)

// TimeEntryLine is a time entry as read from storage.
type TimeEntryLine struct {
	ID           string
	WorkerTypeID string
	Hours        decimal.Decimal
	Date         string // YYYY-MM-DD
	Description  string
}

// MaterialLine is a material as read from storage.
type MaterialLine struct {
	ID        string
	Name      string
	Quantity  decimal.Decimal
	Unit      string
	UnitPrice decimal.Decimal
	Supplier  string
}

// LaborCost is a priced time entry.
type LaborCost struct {
	EntryID      string
	WorkerTypeID string
	WorkerType   string
	Date         string
	Description  string
	Hours        decimal.Decimal
	Rate         decimal.Decimal
	Cost         decimal.Decimal
}

// WorkerTypeSummary aggregates the hours booked under one worker type.
type WorkerTypeSummary struct {
	WorkerTypeID string
	WorkerType   string
	Hours        decimal.Decimal
	Rate         decimal.Decimal
	Cost         decimal.Decimal
}

// MaterialCost is a priced material line.
type MaterialCost struct {
	MaterialID string
	Name       string
	Unit       string
	Supplier   string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	Cost       decimal.Decimal
}

// Totals holds the derived project totals. Grand is always Labor + Materials.
type Totals struct {
	Labor     decimal.Decimal
	Materials decimal.Decimal
	Grand     decimal.Decimal
}

// CostSummary is the full aggregation result for one project.
type CostSummary struct {
	Labor             []LaborCost
	LaborByWorkerType []WorkerTypeSummary
	Materials         []MaterialCost
	Totals            Totals
}

// LaborLineCost returns hours × the current rate of the entry's worker type.
func LaborLineCost(entry TimeEntryLine, rates RateTable) decimal.Decimal {
	return entry.Hours.Mul(rates.RateOf(entry.WorkerTypeID))
}

// MaterialLineCost returns quantity × unit price.
func MaterialLineCost(m MaterialLine) decimal.Decimal {
	return m.Quantity.Mul(m.UnitPrice)
}

// LaborSubtotal sums the cost of every time entry.
func LaborSubtotal(entries []TimeEntryLine, rates RateTable) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(LaborLineCost(e, rates))
	}
	return total
}

// MaterialSubtotal sums the cost of every material.
func MaterialSubtotal(materials []MaterialLine) decimal.Decimal {
	total := decimal.Zero
	for _, m := range materials {
		total = total.Add(MaterialLineCost(m))
	}
	return total
}

// CalculateTotals derives labor, material and grand totals.
func CalculateTotals(entries []TimeEntryLine, materials []MaterialLine, rates RateTable) Totals {
	labor := LaborSubtotal(entries, rates)
	mats := MaterialSubtotal(materials)
	return Totals{
		Labor:     labor,
		Materials: mats,
		Grand:     labor.Add(mats),
	}
}

// CalculateCosts prices every line and derives the totals. Input order is
// preserved for the itemized lines; the per-worker-type summary is sorted by
// name so it does not depend on input order.
func CalculateCosts(entries []TimeEntryLine, materials []MaterialLine, rates RateTable) CostSummary {
	summary := CostSummary{
		Labor:     make([]LaborCost, 0, len(entries)),
		Materials: make([]MaterialCost, 0, len(materials)),
	}

	byType := make(map[string]*WorkerTypeSummary)
	for _, e := range entries {
		rate := rates.RateOf(e.WorkerTypeID)
		name := rates.NameOf(e.WorkerTypeID)
		cost := e.Hours.Mul(rate)

		summary.Labor = append(summary.Labor, LaborCost{
			EntryID:      e.ID,
			WorkerTypeID: e.WorkerTypeID,
			WorkerType:   name,
			Date:         e.Date,
			Description:  e.Description,
			Hours:        e.Hours,
			Rate:         rate,
			Cost:         cost,
		})

		s, ok := byType[e.WorkerTypeID]
		if !ok {
			s = &WorkerTypeSummary{
				WorkerTypeID: e.WorkerTypeID,
				WorkerType:   name,
				Hours:        decimal.Zero,
				Rate:         rate,
				Cost:         decimal.Zero,
			}
			byType[e.WorkerTypeID] = s
		}
		s.Hours = s.Hours.Add(e.Hours)
		s.Cost = s.Cost.Add(cost)
		summary.Totals.Labor = summary.Totals.Labor.Add(cost)
	}

	summary.LaborByWorkerType = make([]WorkerTypeSummary, 0, len(byType))
	for _, s := range byType {
		summary.LaborByWorkerType = append(summary.LaborByWorkerType, *s)
	}
	sort.Slice(summary.LaborByWorkerType, func(i, j int) bool {
		a, b := summary.LaborByWorkerType[i], summary.LaborByWorkerType[j]
		if a.WorkerType != b.WorkerType {
			return a.WorkerType < b.WorkerType
		}
		return a.WorkerTypeID < b.WorkerTypeID
	})

	for _, m := range materials {
		cost := MaterialLineCost(m)
		summary.Materials = append(summary.Materials, MaterialCost{
			MaterialID: m.ID,
			Name:       m.Name,
			Unit:       m.Unit,
			Supplier:   m.Supplier,
			Quantity:   m.Quantity,
			UnitPrice:  m.UnitPrice,
			Cost:       cost,
		})
		summary.Totals.Materials = summary.Totals.Materials.Add(cost)
	}

	summary.Totals.Grand = summary.Totals.Labor.Add(summary.Totals.Materials)
	return summary
}
