package dashstate

import (
	"strconv"

	"github.com/dalemusser/opsdash/internal/domain/models"
)

// Card is one KPI tile as the renderer should display it.
type Card struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Value string `json:"value"`
}

// Cards lists the KPI tiles of the view in display order.
func (s State) Cards() []Card {
	m := s.Metrics
	switch s.Role {
	case models.RoleOperations:
		return []Card{
			{Key: "pending_jobs", Title: "Pending Jobs", Value: strconv.Itoa(m.OpenJobs)},
			{Key: "daily_task_completion", Title: "Daily Task Completion", Value: percent(m.CompletionPercent)},
			{Key: "total_stock", Title: "Total Stock", Value: strconv.Itoa(m.TotalStock)},
			{Key: "out_of_stock", Title: "Out of Stock Items", Value: strconv.Itoa(m.OutOfStockCount)},
		}
	case models.RoleTechnician:
		status := "None"
		if job, ok := s.CurrentJob(); ok {
			status = string(job.Status)
		}
		return []Card{
			{Key: "current_job_status", Title: "Current Job Status", Value: status},
			{Key: "customer_satisfaction", Title: "Customer Satisfaction", Value: m.Satisfaction.StringFixed(1) + "/5"},
			{Key: "completion_rate", Title: "Job Completion Rate", Value: percent(m.CompletionPercent)},
			{Key: "jobs_in_queue", Title: "Jobs in Queue (Today)", Value: strconv.Itoa(m.OpenJobs)},
		}
	case models.RoleRetail:
		return []Card{
			{Key: "daily_sales", Title: "Daily Sales", Value: "$" + s.DailySales.StringFixed(2)},
			{Key: "selected_category", Title: "Top Category", Value: s.SelectedCategory},
			{Key: "customer_feedback", Title: "Customer Feedback", Value: strconv.Itoa(m.FeedbackCount)},
			{Key: "out_of_stock", Title: "Out of Stock Items", Value: strconv.Itoa(m.OutOfStockCount)},
		}
	default:
		return nil
	}
}

func percent(n int) string {
	return strconv.Itoa(n) + "%"
}
