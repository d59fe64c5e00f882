package dashstate

import (
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/opsdash/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestView_SnapshotIsDeepCopy(t *testing.T) {
	v := NewView(models.RoleOperations)

	snap := v.Snapshot()
	snap.Jobs[0].Status = models.JobComplete
	snap.Inventory[0].Quantity = 9999

	fresh := v.Snapshot()
	assert.Equal(t, models.JobPending, fresh.Jobs[0].Status)
	assert.Equal(t, 120, fresh.Inventory[0].Quantity)
}

func TestView_DispatchUpdatesState(t *testing.T) {
	v := NewView(models.RoleOperations)

	got, out := v.Dispatch(SetStatus("J-1001", models.JobComplete))
	require.True(t, out.Completed)
	assert.Equal(t, 4, got.Metrics.OpenJobs)
	assert.Equal(t, 4, v.Snapshot().Metrics.OpenJobs)

	_, out = v.Dispatch(SetStatus("J-1001", models.JobComplete))
	assert.False(t, out.Completed)
	assert.Equal(t, 4, v.Snapshot().Metrics.OpenJobs)
}

func TestView_ConcurrentDispatchKeepsTotals(t *testing.T) {
	v := NewView(models.RoleOperations)
	names := []string{"Copper Pipe", "PVC Fittings", "Water Heater", "Thermostat"}

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v.Dispatch(SetQuantity(names[i%len(names)], i))
		}(i)
	}
	wg.Wait()

	snap := v.Snapshot()
	assert.Equal(t, sumQuantities(snap.Inventory), snap.Metrics.TotalStock)
}

func TestView_ResetAndLastActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	v := newViewWithClock(models.RoleRetail, clock)
	assert.Equal(t, now, v.LastActive())

	now = now.Add(5 * time.Minute)
	v.Dispatch(SetSales("Apparel", dec("100")))
	assert.Equal(t, now, v.LastActive())

	now = now.Add(time.Minute)
	s := v.Reset()
	assert.Equal(t, Seed(models.RoleRetail), s)
	assert.Equal(t, now, v.LastActive())
	assert.Equal(t, models.RoleRetail, v.Role())

	now = now.Add(time.Minute)
	v.Touch()
	assert.Equal(t, now, v.LastActive())
	assert.Equal(t, Seed(models.RoleRetail), v.Snapshot())
}

func TestCards_PerRole(t *testing.T) {
	ops := Seed(models.RoleOperations).Cards()
	require.Len(t, ops, 4)
	assert.Equal(t, "5", ops[0].Value)
	assert.Equal(t, "75%", ops[1].Value)
	assert.Equal(t, "177", ops[2].Value)

	tech := Seed(models.RoleTechnician).Cards()
	require.Len(t, tech, 4)
	assert.Equal(t, "En route", tech[0].Value)
	assert.Equal(t, "4.6/5", tech[1].Value)

	retail := Seed(models.RoleRetail).Cards()
	require.Len(t, retail, 4)
	assert.Equal(t, "$2500.00", retail[0].Value)
	assert.Equal(t, "Electronics", retail[1].Value)
}
