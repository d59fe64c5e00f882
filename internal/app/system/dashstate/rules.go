package dashstate

import (
	"slices"

	"github.com/dalemusser/opsdash/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Rules are the per-role parameters of the update model.
type Rules struct {
	// Statuses a job in this view may be set to, in selector order.
	Statuses []models.JobStatus

	// Applied once per non-Complete → Complete transition.
	OpenJobsStep     int
	CompletionStep   int
	SatisfactionStep decimal.Decimal
	SatisfactionMax  decimal.Decimal

	// Applied once per sales update.
	FeedbackStep int
}

const maxCompletionPercent = 100

var (
	operationsRules = Rules{
		Statuses:       []models.JobStatus{models.JobPending, models.JobInProgress, models.JobComplete},
		OpenJobsStep:   1,
		CompletionStep: 5,
	}

	technicianRules = Rules{
		Statuses:         []models.JobStatus{models.JobEnRoute, models.JobInProgress, models.JobOnHold, models.JobComplete},
		OpenJobsStep:     1,
		CompletionStep:   20,
		SatisfactionStep: decimal.RequireFromString("0.1"),
		SatisfactionMax:  decimal.NewFromInt(5),
	}

	retailRules = Rules{
		FeedbackStep: 1,
	}
)

// RulesFor returns the rules of a role. Unknown roles get zero Rules, under
// which every job status is rejected and every counter stays put.
func RulesFor(role models.Role) Rules {
	switch role {
	case models.RoleOperations:
		return operationsRules
	case models.RoleTechnician:
		return technicianRules
	case models.RoleRetail:
		return retailRules
	default:
		return Rules{}
	}
}

// Allows reports whether status is selectable in this view.
func (r Rules) Allows(status models.JobStatus) bool {
	return slices.Contains(r.Statuses, status)
}

// completeJob applies the bounded deltas for one job entering Complete.
func (r Rules) completeJob(m Metrics) Metrics {
	m.OpenJobs = max(0, m.OpenJobs-r.OpenJobsStep)
	m.CompletionPercent = min(maxCompletionPercent, m.CompletionPercent+r.CompletionStep)
	if r.SatisfactionStep.IsPositive() {
		next := m.Satisfaction.Add(r.SatisfactionStep).Round(1)
		if next.GreaterThan(r.SatisfactionMax) {
			next = r.SatisfactionMax
		}
		m.Satisfaction = next
	}
	return m
}
