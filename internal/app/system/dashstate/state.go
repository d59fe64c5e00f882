// Package dashstate holds the role dashboards' mock records and keeps their
// KPI aggregates consistent with every record edit.
//
// State values are treated as immutable: Apply never modifies the State it
// is given and returns either a new State or the input unchanged. A View owns
// the current State of one dashboard tab for one session.
package dashstate

import (
	"slices"

	"github.com/dalemusser/opsdash/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Metrics are the aggregates shown on KPI cards.
//
// TotalStock, OutOfStockCount and CompletedJobs are recomputed from records
// on every edit. OpenJobs, CompletionPercent and Satisfaction are adjusted
// only when a job enters Complete. FeedbackCount counts sales updates.
type Metrics struct {
	OpenJobs          int             `json:"open_jobs"`
	CompletionPercent int             `json:"completion_percent"`
	Satisfaction      decimal.Decimal `json:"satisfaction"`
	CompletedJobs     int             `json:"completed_jobs"`
	TotalStock        int             `json:"total_stock"`
	OutOfStockCount   int             `json:"out_of_stock_count"`
	FeedbackCount     int             `json:"customer_feedback_count"`
}

// State is one role view: its records plus the aggregates derived from them.
type State struct {
	Role models.Role `json:"role"`

	Jobs         []models.Job `json:"jobs,omitempty"`
	CurrentJobID string       `json:"current_job_id,omitempty"`

	Inventory []models.InventoryItem `json:"inventory,omitempty"`

	Sales            []models.SalesCategory `json:"sales,omitempty"`
	DailySales       decimal.Decimal        `json:"daily_sales"`
	SelectedCategory string                 `json:"selected_category,omitempty"`

	WeeklyCompletion []models.ChartPoint `json:"weekly_completion,omitempty"`

	Metrics Metrics `json:"metrics"`
}

// Clone returns a copy that shares no slices with s.
func (s State) Clone() State {
	s.Jobs = slices.Clone(s.Jobs)
	s.Inventory = slices.Clone(s.Inventory)
	s.Sales = slices.Clone(s.Sales)
	s.WeeklyCompletion = slices.Clone(s.WeeklyCompletion)
	return s
}

// CurrentJob returns the job the technician is working on, if any.
func (s State) CurrentJob() (models.Job, bool) {
	if i := s.jobIndex(s.CurrentJobID); i >= 0 {
		return s.Jobs[i], true
	}
	return models.Job{}, false
}

func (s State) jobIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(s.Jobs, func(j models.Job) bool { return j.ID == id })
}

func (s State) itemIndex(name string) int {
	if name == "" {
		return -1
	}
	return slices.IndexFunc(s.Inventory, func(it models.InventoryItem) bool { return it.Name == name })
}

func (s State) categoryIndex(category string) int {
	if category == "" {
		return -1
	}
	return slices.IndexFunc(s.Sales, func(c models.SalesCategory) bool { return c.Category == category })
}

// recompute refreshes every aggregate that is a pure function of records.
func (s *State) recompute() {
	s.Metrics.TotalStock = 0
	s.Metrics.OutOfStockCount = 0
	for _, it := range s.Inventory {
		s.Metrics.TotalStock += it.Quantity
		if it.OutOfStock() {
			s.Metrics.OutOfStockCount++
		}
	}

	s.Metrics.CompletedJobs = 0
	for _, j := range s.Jobs {
		if j.Status.IsComplete() {
			s.Metrics.CompletedJobs++
		}
	}
}
