package dashstate

import (
	"math/rand"
	"testing"

	"github.com/dalemusser/opsdash/internal/domain/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "got %s, want %s", got, want)
}

func sumQuantities(items []models.InventoryItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func TestUpdateItemStatus_PendingToCompleteOnce(t *testing.T) {
	s := State{
		Role:    models.RoleOperations,
		Jobs:    []models.Job{{ID: "J-1", Status: models.JobPending}},
		Metrics: Metrics{OpenJobs: 5},
	}

	next, out := s.UpdateItemStatus("J-1", models.JobComplete)
	require.True(t, out.Applied)
	assert.True(t, out.Completed)
	assert.Equal(t, NoticeJobComplete, out.Notice)
	assert.Equal(t, 4, next.Metrics.OpenJobs)
	assert.Equal(t, models.JobComplete, next.Jobs[0].Status)

	again, out := next.UpdateItemStatus("J-1", models.JobComplete)
	require.True(t, out.Applied)
	assert.False(t, out.Completed)
	assert.Empty(t, out.Notice)
	assert.Equal(t, 4, again.Metrics.OpenJobs)
	assert.Equal(t, next.Metrics, again.Metrics)
}

func TestUpdateItemStatus_OperationsDeltas(t *testing.T) {
	s := Seed(models.RoleOperations)
	require.Equal(t, 5, s.Metrics.OpenJobs)
	require.Equal(t, 75, s.Metrics.CompletionPercent)
	require.Equal(t, 1, s.Metrics.CompletedJobs)

	next, out := s.UpdateItemStatus("J-1001", models.JobComplete)
	require.True(t, out.Completed)
	assert.Equal(t, 4, next.Metrics.OpenJobs)
	assert.Equal(t, 80, next.Metrics.CompletionPercent)
	assert.Equal(t, 2, next.Metrics.CompletedJobs)

	// The input state is untouched.
	assert.Equal(t, models.JobPending, s.Jobs[0].Status)
	assert.Equal(t, 5, s.Metrics.OpenJobs)
}

func TestUpdateItemStatus_LeavingCompleteAppliesNoDelta(t *testing.T) {
	s := Seed(models.RoleOperations)

	reopened, out := s.UpdateItemStatus("J-1004", models.JobInProgress)
	require.True(t, out.Applied)
	assert.False(t, out.Completed)
	assert.Equal(t, s.Metrics.OpenJobs, reopened.Metrics.OpenJobs)
	assert.Equal(t, s.Metrics.CompletionPercent, reopened.Metrics.CompletionPercent)
	assert.Equal(t, 0, reopened.Metrics.CompletedJobs)

	// Complete is revisitable; re-entering it is a genuine transition.
	done, out := reopened.UpdateItemStatus("J-1004", models.JobComplete)
	assert.True(t, out.Completed)
	assert.Equal(t, s.Metrics.OpenJobs-1, done.Metrics.OpenJobs)
	assert.Equal(t, 1, done.Metrics.CompletedJobs)
}

func TestUpdateItemStatus_Bounds(t *testing.T) {
	s := Seed(models.RoleOperations)
	s.Metrics.OpenJobs = 0
	s.Metrics.CompletionPercent = 98

	next, out := s.UpdateItemStatus("J-1001", models.JobComplete)
	require.True(t, out.Completed)
	assert.Equal(t, 0, next.Metrics.OpenJobs)
	assert.Equal(t, 100, next.Metrics.CompletionPercent)
}

func TestUpdateItemStatus_TechnicianDeltas(t *testing.T) {
	s := Seed(models.RoleTechnician)

	next, out := s.UpdateItemStatus("T-2001", models.JobComplete)
	require.True(t, out.Completed)
	assert.Equal(t, 2, next.Metrics.OpenJobs)
	assert.Equal(t, 100, next.Metrics.CompletionPercent)
	assertDecimal(t, "4.7", next.Metrics.Satisfaction)

	next, _ = next.UpdateItemStatus("T-2002", models.JobComplete)
	assert.Equal(t, 1, next.Metrics.OpenJobs)
	assert.Equal(t, 100, next.Metrics.CompletionPercent)
	assertDecimal(t, "4.8", next.Metrics.Satisfaction)
}

func TestUpdateItemStatus_SatisfactionCapped(t *testing.T) {
	s := Seed(models.RoleTechnician)
	s.Metrics.Satisfaction = dec("4.95")

	next, _ := s.UpdateItemStatus("T-2001", models.JobComplete)
	assertDecimal(t, "5", next.Metrics.Satisfaction)

	next, _ = next.UpdateItemStatus("T-2002", models.JobComplete)
	assertDecimal(t, "5", next.Metrics.Satisfaction)
}

func TestUpdateItemStatus_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		role   models.Role
		jobID  string
		status models.JobStatus
		reason string
	}{
		{"unknown job", models.RoleOperations, "J-9999", models.JobComplete, ReasonUnknownItem},
		{"empty job id", models.RoleOperations, "", models.JobComplete, ReasonUnknownItem},
		{"status not offered to operations", models.RoleOperations, "J-1001", models.JobOnHold, ReasonInvalidStatus},
		{"status not offered to technicians", models.RoleTechnician, "T-2001", models.JobPending, ReasonInvalidStatus},
		{"made-up status", models.RoleTechnician, "T-2001", "Done-ish", ReasonInvalidStatus},
		{"retail has no jobs", models.RoleRetail, "J-1001", models.JobComplete, ReasonUnknownItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Seed(tt.role)
			next, out := s.UpdateItemStatus(tt.jobID, tt.status)
			assert.False(t, out.Applied)
			assert.Equal(t, tt.reason, out.Reason)
			assert.Equal(t, s, next)
		})
	}
}

func TestUpdateItemQuantity_TotalsTrackItems(t *testing.T) {
	s := Seed(models.RoleOperations)
	require.Equal(t, 177, s.Metrics.TotalStock)
	require.Equal(t, 1, s.Metrics.OutOfStockCount)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		item := s.Inventory[rng.Intn(len(s.Inventory))].Name
		qty := rng.Intn(40) - 10

		var out Outcome
		s, out = s.UpdateItemQuantity(item, qty)
		require.True(t, out.Applied)

		assert.Equal(t, sumQuantities(s.Inventory), s.Metrics.TotalStock)
		zero := 0
		for _, it := range s.Inventory {
			require.GreaterOrEqual(t, it.Quantity, 0)
			if it.Quantity == 0 {
				zero++
			}
		}
		assert.Equal(t, zero, s.Metrics.OutOfStockCount)
	}
}

func TestUpdateItemQuantity_InvalidInputStoresZero(t *testing.T) {
	for _, raw := range []string{"-4", "abc", "", "  ", "NaN"} {
		t.Run(raw, func(t *testing.T) {
			s := Seed(models.RoleOperations)
			next, out := s.UpdateItemQuantity("Copper Pipe", QuantityOf(ParseAmount(raw)))
			require.True(t, out.Applied)
			assert.Equal(t, 0, next.Inventory[0].Quantity)
			assert.Equal(t, 2, next.Metrics.OutOfStockCount)
			assert.Equal(t, 57, next.Metrics.TotalStock)
		})
	}
}

func TestUpdateItemQuantity_UnknownItem(t *testing.T) {
	s := Seed(models.RoleRetail)
	next, out := s.UpdateItemQuantity("Flux Capacitor", 3)
	assert.False(t, out.Applied)
	assert.Equal(t, ReasonUnknownItem, out.Reason)
	assert.Equal(t, s, next)
}

func TestUpdateSalesFigure_AddsDeltaToCategory(t *testing.T) {
	s := Seed(models.RoleRetail)
	assertDecimal(t, "2500", s.DailySales)

	next, out := s.UpdateSalesFigure(dec("3000"), "Electronics")
	require.True(t, out.Applied)
	assertDecimal(t, "13000", next.Sales[0].CumulativeSales)
	assertDecimal(t, "4300", next.Sales[1].CumulativeSales)
	assertDecimal(t, "2100", next.Sales[2].CumulativeSales)
	assertDecimal(t, "1800", next.Sales[3].CumulativeSales)
	assertDecimal(t, "3000", next.DailySales)
	assert.Equal(t, "Electronics", next.SelectedCategory)
	assert.Equal(t, 19, next.Metrics.FeedbackCount)

	// The input state keeps its totals.
	assertDecimal(t, "12500", s.Sales[0].CumulativeSales)
}

func TestUpdateSalesFigure_SwitchCategorySameValue(t *testing.T) {
	s := Seed(models.RoleRetail)

	next, out := s.UpdateSalesFigure(dec("2500"), "Accessories")
	require.True(t, out.Applied)
	assertDecimal(t, "4300", next.Sales[1].CumulativeSales)
	assertDecimal(t, "12500", next.Sales[0].CumulativeSales)
	assert.Equal(t, "Accessories", next.SelectedCategory)
	assert.Equal(t, 19, next.Metrics.FeedbackCount)
}

func TestUpdateSalesFigure_DeltaAgainstSharedDailyValue(t *testing.T) {
	s := Seed(models.RoleRetail)
	s, _ = s.UpdateSalesFigure(dec("3000"), "Electronics")

	next, out := s.UpdateSalesFigure(dec("3500"), "Apparel")
	require.True(t, out.Applied)
	assertDecimal(t, "2600", next.Sales[2].CumulativeSales)
	assertDecimal(t, "13000", next.Sales[0].CumulativeSales)
	assert.Equal(t, "Apparel", next.SelectedCategory)
	assert.Equal(t, 20, next.Metrics.FeedbackCount)

	lower, _ := next.UpdateSalesFigure(dec("1000"), "Apparel")
	assertDecimal(t, "100", lower.Sales[2].CumulativeSales)
}

func TestUpdateSalesFigure_BlankCategoryUsesSelected(t *testing.T) {
	s := Seed(models.RoleRetail)
	s, _ = s.UpdateSalesFigure(dec("2500"), "Apparel")

	next, out := Apply(s, SetSales("", dec("3000")))
	require.True(t, out.Applied)
	assert.Equal(t, "Apparel", next.SelectedCategory)
	assertDecimal(t, "2600", next.Sales[2].CumulativeSales)
	assertDecimal(t, "12500", next.Sales[0].CumulativeSales)
	assertDecimal(t, "3000", next.DailySales)
}

func TestUpdateSalesFigure_UnknownCategory(t *testing.T) {
	s := Seed(models.RoleRetail)
	next, out := s.UpdateSalesFigure(dec("9000"), "Garden")
	assert.False(t, out.Applied)
	assert.Equal(t, ReasonUnknownCategory, out.Reason)
	assert.Equal(t, s, next)
	assert.Equal(t, 18, next.Metrics.FeedbackCount)
}

func TestApply_UnsupportedKind(t *testing.T) {
	s := Seed(models.RoleOperations)
	next, out := Apply(s, Action{Kind: "forecast", ItemID: "J-1001"})
	assert.False(t, out.Applied)
	assert.Equal(t, ReasonUnsupported, out.Reason)
	assert.Equal(t, s, next)
}

func TestReset_RestoresSeed(t *testing.T) {
	s := Seed(models.RoleOperations)
	s, _ = s.UpdateItemStatus("J-1001", models.JobComplete)
	s, _ = s.UpdateItemQuantity("Thermostat", 0)

	assert.Equal(t, Seed(models.RoleOperations), s.Reset())
}
