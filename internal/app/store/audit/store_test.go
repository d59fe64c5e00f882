package audit_test

import (
	"testing"
	"time"

	"github.com/dalemusser/opsdash/internal/app/store/audit"
	"github.com/dalemusser/opsdash/internal/testutil"
)

func statusEvent(sessionID, role, jobID string) audit.Event {
	return audit.Event{
		Category:  audit.CategoryDashboard,
		EventType: audit.EventJobStatusChanged,
		SessionID: sessionID,
		Role:      role,
		ItemID:    jobID,
		IP:        "192.168.1.1",
		Applied:   true,
		Details:   map[string]string{"status": "Complete"},
	}
}

func TestStore_Log(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.Log(ctx, statusEvent("sess-1", "operations", "J-1001")); err != nil {
		t.Fatalf("Log failed: %v", err)
	}

	events, err := store.Query(ctx, audit.QueryFilter{SessionID: "sess-1", Role: "operations", Limit: 10})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].ID.IsZero() {
		t.Error("expected ID to be auto-generated")
	}
	if events[0].Details["status"] != "Complete" {
		t.Errorf("Details[status]: got %q, want %q", events[0].Details["status"], "Complete")
	}
}

func TestStore_Log_AutoSetsTimestamp(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	before := time.Now().Add(-time.Second)
	if err := store.Log(ctx, statusEvent("sess-1", "operations", "J-1001")); err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	after := time.Now().Add(time.Second)

	events, err := store.Query(ctx, audit.QueryFilter{})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	ts := events[0].Timestamp
	if ts.Before(before) || ts.After(after) {
		t.Errorf("timestamp %v not within [%v, %v]", ts, before, after)
	}
}

func TestStore_QueryScopesToSessionAndRole(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := store.EnsureIndexes(ctx); err != nil {
		t.Fatalf("EnsureIndexes failed: %v", err)
	}

	for _, ev := range []audit.Event{
		statusEvent("sess-1", "operations", "J-1001"),
		statusEvent("sess-1", "operations", "J-1002"),
		statusEvent("sess-1", "technician", "T-2001"),
		statusEvent("sess-2", "operations", "J-1001"),
	} {
		if err := store.Log(ctx, ev); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	events, err := store.Query(ctx, audit.QueryFilter{SessionID: "sess-1", Role: "operations", Limit: 10})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("sess-1/operations: got %d events, want 2", len(events))
	}

	n, err := store.CountByFilter(ctx, audit.QueryFilter{Role: "operations"})
	if err != nil {
		t.Fatalf("CountByFilter failed: %v", err)
	}
	if n != 3 {
		t.Errorf("operations count: got %d, want 3", n)
	}

	limited, err := store.Query(ctx, audit.QueryFilter{Limit: 1})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limited query: got %d events, want 1", len(limited))
	}
}

func TestStore_QueryByTypeAndTime(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := audit.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	base := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	reset := audit.Event{
		Category:  audit.CategoryDashboard,
		EventType: audit.EventViewReset,
		SessionID: "sess-1",
		Role:      "operations",
		Applied:   true,
	}
	for i, ev := range []audit.Event{
		statusEvent("sess-1", "operations", "J-1001"),
		reset,
		statusEvent("sess-1", "operations", "J-1002"),
		statusEvent("sess-1", "operations", "J-1003"),
	} {
		ev.Timestamp = base.Add(time.Duration(i) * time.Minute)
		if err := store.Log(ctx, ev); err != nil {
			t.Fatalf("Log failed: %v", err)
		}
	}

	since := base.Add(time.Minute)
	until := base.Add(2 * time.Minute)
	tests := []struct {
		name   string
		filter audit.QueryFilter
		want   int64
	}{
		{"by type", audit.QueryFilter{EventType: audit.EventJobStatusChanged}, 3},
		{"since", audit.QueryFilter{StartTime: &since}, 3},
		{"window", audit.QueryFilter{StartTime: &since, EndTime: &until}, 2},
		{"type in window", audit.QueryFilter{EventType: audit.EventViewReset, StartTime: &since, EndTime: &until}, 1},
	}
	for _, tt := range tests {
		n, err := store.CountByFilter(ctx, tt.filter)
		if err != nil {
			t.Fatalf("%s: CountByFilter failed: %v", tt.name, err)
		}
		if n != tt.want {
			t.Errorf("%s: got %d, want %d", tt.name, n, tt.want)
		}
	}

	page, err := store.Query(ctx, audit.QueryFilter{EventType: audit.EventJobStatusChanged, Limit: 1, Offset: 1})
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(page) != 1 || page[0].ItemID != "J-1002" {
		t.Errorf("second page: got %+v, want J-1002", page)
	}
}

func TestIsEventType(t *testing.T) {
	for _, et := range []string{
		audit.EventJobStatusChanged,
		audit.EventInventoryQuantityChanged,
		audit.EventSalesFigureChanged,
		audit.EventViewReset,
	} {
		if !audit.IsEventType(et) {
			t.Errorf("IsEventType(%q) = false, want true", et)
		}
	}
	for _, et := range []string{"", "login", "JOB_STATUS_CHANGED"} {
		if audit.IsEventType(et) {
			t.Errorf("IsEventType(%q) = true, want false", et)
		}
	}
}
