// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CollectionName is the MongoDB collection holding dashboard events.
const CollectionName = "dashboard_events"

// Event categories
const (
	CategoryDashboard = "dashboard"
)

// Dashboard event types, one per user intent.
const (
	EventJobStatusChanged         = "job_status_changed"
	EventInventoryQuantityChanged = "inventory_quantity_changed"
	EventSalesFigureChanged       = "sales_figure_changed"
	EventViewReset                = "view_reset"
)

// IsEventType reports whether t is one of the dashboard event types.
func IsEventType(t string) bool {
	switch t {
	case EventJobStatusChanged, EventInventoryQuantityChanged, EventSalesFigureChanged, EventViewReset:
		return true
	}
	return false
}

// Event represents one recorded dashboard action.
//
// Events are an activity trail only. View state is never rebuilt from them.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Timestamp time.Time          `bson:"timestamp" json:"timestamp"`

	// Event classification
	Category  string `bson:"category" json:"category"`
	EventType string `bson:"event_type" json:"event_type"`

	// Where
	SessionID string `bson:"session_id" json:"-"`
	Role      string `bson:"role" json:"role"`
	ItemID    string `bson:"item_id,omitempty" json:"item_id,omitempty"`

	// Context
	IP        string `bson:"ip" json:"-"`
	UserAgent string `bson:"user_agent,omitempty" json:"-"`

	// Outcome
	Applied   bool   `bson:"applied" json:"applied"`
	Completed bool   `bson:"completed,omitempty" json:"completed,omitempty"`
	Reason    string `bson:"reason,omitempty" json:"reason,omitempty"`

	// Requested value and the aggregates it touched (varies by event type)
	Details map[string]string `bson:"details,omitempty" json:"details,omitempty"`
}

// QueryFilter defines filters for querying events.
type QueryFilter struct {
	SessionID string
	Role      string
	EventType string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
	Offset    int64
}

// Store manages dashboard event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new event Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection(CollectionName)}
}

// EnsureIndexes creates the indexes used by Query.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "timestamp", Value: -1}},
		},
		// A session's activity feed
		{
			Keys: bson.D{
				{Key: "session_id", Value: 1},
				{Key: "role", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
		{
			Keys: bson.D{
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Log records an event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

func buildQuery(filter QueryFilter) bson.M {
	query := bson.M{}
	if filter.SessionID != "" {
		query["session_id"] = filter.SessionID
	}
	if filter.Role != "" {
		query["role"] = filter.Role
	}
	if filter.EventType != "" {
		query["event_type"] = filter.EventType
	}
	if filter.StartTime != nil || filter.EndTime != nil {
		timeQuery := bson.M{}
		if filter.StartTime != nil {
			timeQuery["$gte"] = *filter.StartTime
		}
		if filter.EndTime != nil {
			timeQuery["$lte"] = *filter.EndTime
		}
		query["timestamp"] = timeQuery
	}
	return query
}

// Query retrieves events matching the filter, newest first.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cursor, err := s.c.Find(ctx, buildQuery(filter), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// CountByFilter returns the number of events matching the filter.
func (s *Store) CountByFilter(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, buildQuery(filter))
}
