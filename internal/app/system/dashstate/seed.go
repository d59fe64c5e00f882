package dashstate

import (
	"github.com/dalemusser/opsdash/internal/domain/models"
	"github.com/shopspring/decimal"
)

// Seed returns the initial mock state of a role view. Each call builds fresh
// slices, so seeds are never shared between views.
func Seed(role models.Role) State {
	var s State
	switch role {
	case models.RoleOperations:
		s = operationsSeed()
	case models.RoleTechnician:
		s = technicianSeed()
	case models.RoleRetail:
		s = retailSeed()
	default:
		s = State{Role: role}
	}
	s.recompute()
	return s
}

func operationsSeed() State {
	return State{
		Role: models.RoleOperations,
		Jobs: []models.Job{
			{ID: "J-1001", Location: "12 Harbor Rd", AssignedWorker: "Alex Kim", Status: models.JobPending},
			{ID: "J-1002", Location: "48 Mill St", AssignedWorker: "Sam Ortiz", Status: models.JobInProgress},
			{ID: "J-1003", Location: "7 Elm Ct", AssignedWorker: "Jordan Lee", Status: models.JobPending},
			{ID: "J-1004", Location: "301 Pine Ave", AssignedWorker: "Riley Chen", Status: models.JobComplete},
		},
		Inventory: []models.InventoryItem{
			{Name: "Copper Pipe", Quantity: 120},
			{Name: "PVC Fittings", Quantity: 45},
			{Name: "Water Heater", Quantity: 0},
			{Name: "Thermostat", Quantity: 12},
		},
		WeeklyCompletion: []models.ChartPoint{
			{Name: "Mon", Value: 82},
			{Name: "Tue", Value: 76},
			{Name: "Wed", Value: 90},
			{Name: "Thu", Value: 68},
			{Name: "Fri", Value: 85},
		},
		Metrics: Metrics{
			OpenJobs:          5,
			CompletionPercent: 75,
		},
	}
}

func technicianSeed() State {
	return State{
		Role: models.RoleTechnician,
		Jobs: []models.Job{
			{
				ID:          "T-2001",
				Location:    "1420 Oak Street",
				Status:      models.JobEnRoute,
				Customer:    "Maria Gonzalez",
				Description: "Furnace not igniting; inspect pilot assembly.",
				ETA:         "10:45 AM",
			},
			{
				ID:          "T-2002",
				Location:    "88 Lakeview Dr",
				Status:      models.JobOnHold,
				Customer:    "Dev Patel",
				Description: "Replace condensate pump.",
				ETA:         "1:30 PM",
			},
			{
				ID:          "T-2003",
				Location:    "5 Birch Ln",
				Status:      models.JobInProgress,
				Customer:    "Chris Novak",
				Description: "Annual AC tune-up.",
				ETA:         "3:15 PM",
			},
		},
		CurrentJobID: "T-2001",
		Metrics: Metrics{
			OpenJobs:          3,
			CompletionPercent: 80,
			Satisfaction:      decimal.RequireFromString("4.6"),
		},
	}
}

func retailSeed() State {
	return State{
		Role: models.RoleRetail,
		Sales: []models.SalesCategory{
			{Category: "Electronics", CumulativeSales: decimal.NewFromInt(12500)},
			{Category: "Accessories", CumulativeSales: decimal.NewFromInt(4300)},
			{Category: "Apparel", CumulativeSales: decimal.NewFromInt(2100)},
			{Category: "Home Goods", CumulativeSales: decimal.NewFromInt(1800)},
		},
		DailySales:       decimal.NewFromInt(2500),
		SelectedCategory: "Electronics",
		Inventory: []models.InventoryItem{
			{Name: "Headphones", Quantity: 35},
			{Name: "Phone Case", Quantity: 0},
			{Name: "USB-C Cable", Quantity: 80},
		},
		Metrics: Metrics{
			FeedbackCount: 18,
		},
	}
}
