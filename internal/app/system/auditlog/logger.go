// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dalemusser/opsdash/internal/app/store/audit"
	"github.com/dalemusser/opsdash/internal/app/system/dashstate"
	"github.com/dalemusser/opsdash/internal/app/system/ratelimit"
	"github.com/dalemusser/opsdash/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Destinations for Config.Actions.
const (
	ModeAll = "all" // MongoDB + zap
	ModeDB  = "db"  // MongoDB only
	ModeLog = "log" // zap only
	ModeOff = "off" // disabled
)

// Config holds audit logging configuration.
type Config struct {
	// Actions controls where dashboard actions are recorded.
	// Values: "all", "db", "log", "off". Anything else behaves as "all".
	Actions string
}

// EventWriter persists events. *audit.Store implements it.
type EventWriter interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger records dashboard actions to structured logs and/or MongoDB.
type Logger struct {
	store  EventWriter
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. store may be nil, in which case only zap
// output is produced.
func New(store EventWriter, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		store:  store,
		zapLog: zapLog,
		config: config,
	}
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.String("role", event.Role),
		zap.Bool("applied", event.Applied),
		zap.String("ip", event.IP),
	}
	if event.ItemID != "" {
		fields = append(fields, zap.String("item_id", event.ItemID))
	}
	if event.Completed {
		fields = append(fields, zap.Bool("completed", true))
	}
	if event.Reason != "" {
		fields = append(fields, zap.String("reason", event.Reason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Applied {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an event according to configuration.
// A nil Logger is a no-op so handlers and tests may omit it.
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	setting := l.config.Actions
	switch setting {
	case ModeAll, ModeDB, ModeLog, ModeOff:
	default:
		setting = ModeAll
	}
	if setting == ModeOff {
		return
	}

	if event.Category == "" {
		event.Category = audit.CategoryDashboard
	}

	if setting == ModeAll || setting == ModeLog {
		l.logToZap(event)
	}

	if (setting == ModeAll || setting == ModeDB) && l.store != nil {
		wctx, cancel := timeouts.WithTimeout(ctx, timeouts.Write(), l.zapLog, "record dashboard event")
		defer cancel()
		if err := l.store.Log(wctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

func baseEvent(r *http.Request, eventType, sessionID string, s dashstate.State, out dashstate.Outcome) audit.Event {
	return audit.Event{
		Category:  audit.CategoryDashboard,
		EventType: eventType,
		SessionID: sessionID,
		Role:      string(s.Role),
		IP:        ratelimit.ClientIP(r),
		UserAgent: r.UserAgent(),
		Applied:   out.Applied,
		Completed: out.Completed,
		Reason:    out.Reason,
	}
}

// JobStatusChanged logs a status selection and the job counters after it.
func (l *Logger) JobStatusChanged(ctx context.Context, r *http.Request, sessionID, jobID, status string, s dashstate.State, out dashstate.Outcome) {
	if l == nil {
		return
	}
	ev := baseEvent(r, audit.EventJobStatusChanged, sessionID, s, out)
	ev.ItemID = jobID
	ev.Details = map[string]string{
		"status":             status,
		"open_jobs":          strconv.Itoa(s.Metrics.OpenJobs),
		"completion_percent": strconv.Itoa(s.Metrics.CompletionPercent),
		"completed_jobs":     strconv.Itoa(s.Metrics.CompletedJobs),
	}
	if s.Metrics.Satisfaction.IsPositive() {
		ev.Details["satisfaction"] = s.Metrics.Satisfaction.StringFixed(1)
	}
	l.Log(ctx, ev)
}

// InventoryQuantityChanged logs a quantity edit and the stock totals after it.
func (l *Logger) InventoryQuantityChanged(ctx context.Context, r *http.Request, sessionID, item string, quantity int, s dashstate.State, out dashstate.Outcome) {
	if l == nil {
		return
	}
	ev := baseEvent(r, audit.EventInventoryQuantityChanged, sessionID, s, out)
	ev.ItemID = item
	ev.Details = map[string]string{
		"quantity":     strconv.Itoa(quantity),
		"total_stock":  strconv.Itoa(s.Metrics.TotalStock),
		"out_of_stock": strconv.Itoa(s.Metrics.OutOfStockCount),
	}
	l.Log(ctx, ev)
}

// SalesFigureChanged logs a daily sales entry and the category it landed on.
func (l *Logger) SalesFigureChanged(ctx context.Context, r *http.Request, sessionID, category, amount string, s dashstate.State, out dashstate.Outcome) {
	if l == nil {
		return
	}
	ev := baseEvent(r, audit.EventSalesFigureChanged, sessionID, s, out)
	ev.ItemID = category
	ev.Details = map[string]string{
		"amount":            amount,
		"daily_sales":       s.DailySales.String(),
		"selected_category": s.SelectedCategory,
		"feedback_count":    strconv.Itoa(s.Metrics.FeedbackCount),
	}
	l.Log(ctx, ev)
}

// ViewReset logs a view being restored to its seed data.
func (l *Logger) ViewReset(ctx context.Context, r *http.Request, sessionID string, s dashstate.State) {
	if l == nil {
		return
	}
	l.Log(ctx, baseEvent(r, audit.EventViewReset, sessionID, s, dashstate.Outcome{Applied: true}))
}
