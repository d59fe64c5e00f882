package dashstate

import (
	"github.com/dalemusser/opsdash/internal/domain/models"
	"github.com/shopspring/decimal"
)

// RecordKind tags which kind of record an Action edits.
type RecordKind string

const (
	KindJob           RecordKind = "job"
	KindInventoryItem RecordKind = "inventory_item"
	KindSalesCategory RecordKind = "sales_category"
)

// Action is one user intent against a single record.
//
// ItemID is the job id, the inventory item name or the sales category,
// depending on Kind. Only the payload field matching Kind is read.
type Action struct {
	Kind   RecordKind
	ItemID string

	Status   models.JobStatus
	Quantity int
	Amount   decimal.Decimal
}

// SetStatus builds a job status action.
func SetStatus(jobID string, status models.JobStatus) Action {
	return Action{Kind: KindJob, ItemID: jobID, Status: status}
}

// SetQuantity builds an inventory quantity action.
func SetQuantity(name string, quantity int) Action {
	return Action{Kind: KindInventoryItem, ItemID: name, Quantity: quantity}
}

// SetSales builds a daily sales action for a category.
func SetSales(category string, amount decimal.Decimal) Action {
	return Action{Kind: KindSalesCategory, ItemID: category, Amount: amount}
}

// Reasons an action left the state unchanged.
const (
	ReasonUnknownItem     = "unknown_item"
	ReasonInvalidStatus   = "invalid_status"
	ReasonUnknownCategory = "unknown_category"
	ReasonUnsupported     = "unsupported"
)

// NoticeJobComplete is shown briefly after a job is completed.
const NoticeJobComplete = "Job marked complete! KPIs updated."

// Outcome describes what Apply did.
type Outcome struct {
	Applied bool   `json:"applied"`
	Reason  string `json:"reason,omitempty"`

	// Completed is true only when a job moved from a non-Complete status
	// into Complete, i.e. when the transition deltas were applied.
	Completed bool   `json:"completed,omitempty"`
	Notice    string `json:"notice,omitempty"`
}

func rejected(reason string) Outcome {
	return Outcome{Reason: reason}
}

// Apply returns the state that results from a. If a cannot be applied the
// input state is returned as is, with the reason in the Outcome.
func Apply(s State, a Action) (State, Outcome) {
	switch a.Kind {
	case KindJob:
		return applyStatus(s, a.ItemID, a.Status)
	case KindInventoryItem:
		return applyQuantity(s, a.ItemID, a.Quantity)
	case KindSalesCategory:
		return applySales(s, a.ItemID, a.Amount)
	default:
		return s, rejected(ReasonUnsupported)
	}
}

// UpdateItemStatus sets a job's status.
func (s State) UpdateItemStatus(jobID string, status models.JobStatus) (State, Outcome) {
	return Apply(s, SetStatus(jobID, status))
}

// UpdateItemQuantity sets an inventory item's quantity.
func (s State) UpdateItemQuantity(name string, quantity int) (State, Outcome) {
	return Apply(s, SetQuantity(name, quantity))
}

// UpdateSalesFigure records today's sales figure against a category.
func (s State) UpdateSalesFigure(amount decimal.Decimal, category string) (State, Outcome) {
	return Apply(s, SetSales(category, amount))
}

// Reset returns the role's seed state.
func (s State) Reset() State {
	return Seed(s.Role)
}

func applyStatus(s State, jobID string, status models.JobStatus) (State, Outcome) {
	i := s.jobIndex(jobID)
	if i < 0 {
		return s, rejected(ReasonUnknownItem)
	}
	rules := RulesFor(s.Role)
	if !rules.Allows(status) {
		return s, rejected(ReasonInvalidStatus)
	}

	next := s.Clone()
	prev := next.Jobs[i].Status
	next.Jobs[i].Status = status

	out := Outcome{Applied: true}
	if status.IsComplete() && !prev.IsComplete() {
		next.Metrics = rules.completeJob(next.Metrics)
		out.Completed = true
		out.Notice = NoticeJobComplete
	}
	next.recompute()
	return next, out
}

func applyQuantity(s State, name string, quantity int) (State, Outcome) {
	i := s.itemIndex(name)
	if i < 0 {
		return s, rejected(ReasonUnknownItem)
	}

	next := s.Clone()
	next.Inventory[i].Quantity = max(0, quantity)
	next.recompute()
	return next, Outcome{Applied: true}
}

// applySales moves today's figure to amount. The delta is taken against the
// single DailySales value even when the category changes in the same call.
// A blank category means the one already selected.
func applySales(s State, category string, amount decimal.Decimal) (State, Outcome) {
	if category == "" {
		category = s.SelectedCategory
	}
	i := s.categoryIndex(category)
	if i < 0 {
		return s, rejected(ReasonUnknownCategory)
	}

	next := s.Clone()
	delta := amount.Sub(next.DailySales)
	next.Sales[i].CumulativeSales = next.Sales[i].CumulativeSales.Add(delta)
	next.DailySales = amount
	next.SelectedCategory = category
	next.Metrics.FeedbackCount += RulesFor(s.Role).FeedbackStep
	return next, Outcome{Applied: true}
}
