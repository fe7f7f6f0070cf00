package services

import (
	"github.com/shopspring/decimal"
)

// UnknownWorkerType is the display label for a time entry whose worker type
// no longer exists.
const UnknownWorkerType = "Unknown"

// WorkerRate is one row of the rate table.
type WorkerRate struct {
	ID         string
	Name       string
	HourlyRate decimal.Decimal
}

// RateTable maps worker type ids to their current hourly rate. Lookups never
// fail: a missing id has rate 0 and the label "Unknown".
type RateTable struct {
	rates map[string]WorkerRate
}

// NewRateTable builds a table from the given rows. Later rows win on
// duplicate ids.
func NewRateTable(rows []WorkerRate) RateTable {
	rates := make(map[string]WorkerRate, len(rows))
	for _, r := range rows {
		rates[r.ID] = r
	}
	return RateTable{rates: rates}
}

// RateOf returns the hourly rate of the worker type, or zero.
func (t RateTable) RateOf(workerTypeID string) decimal.Decimal {
	if r, ok := t.rates[workerTypeID]; ok {
		return r.HourlyRate
	}
	return decimal.Zero
}

// NameOf returns the worker type name, or UnknownWorkerType.
func (t RateTable) NameOf(workerTypeID string) string {
	if r, ok := t.rates[workerTypeID]; ok {
		return r.Name
	}
	return UnknownWorkerType
}

// Has reports whether the worker type exists in the table.
func (t RateTable) Has(workerTypeID string) bool {
	_, ok := t.rates[workerTypeID]
	return ok
}

// Len returns the number of worker types in the table.
func (t RateTable) Len() int {
	return len(t.rates)
}
