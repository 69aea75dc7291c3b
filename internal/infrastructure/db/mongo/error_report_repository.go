package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/staynest/booking-api/internal/core/domain"
)

const (
	errorReportCollection = "error_reports"
	errorReportRetention  = 30 * 24 * time.Hour
)

type errorReportDoc struct {
	ID         string    `bson:"_id"`
	Message    string    `bson:"message"`
	Method     string    `bson:"method,omitempty"`
	Path       string    `bson:"path,omitempty"`
	RequestID  string    `bson:"request_id,omitempty"`
	UserID     int64     `bson:"user_id,omitempty"`
	OccurredAt time.Time `bson:"occurred_at"`
	StoredAt   time.Time `bson:"stored_at"`
}

// ErrorReportRepository stores unexpected failures in the error_reports collection.
type ErrorReportRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewErrorReportRepository(db *mongo.Database) *ErrorReportRepository {
	return &ErrorReportRepository{
		coll: db.Collection(errorReportCollection),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// EnsureIndexes expires reports after the retention window.
func (r *ErrorReportRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "occurred_at", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(int32(errorReportRetention.Seconds())),
	})
	if err != nil {
		return fmt.Errorf("create error_reports index: %w", err)
	}
	return nil
}

// Report implements ports.ErrorReporter.
func (r *ErrorReportRepository) Report(ctx context.Context, report domain.ErrorReport) error {
	doc := errorReportDoc{
		ID:         report.ID,
		Method:     report.Method,
		Path:       report.Path,
		RequestID:  report.RequestID,
		UserID:     report.UserID,
		OccurredAt: report.OccurredAt.UTC(),
		StoredAt:   r.now(),
	}
	if report.Err != nil {
		doc.Message = report.Err.Error()
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert error report: %w", err)
	}
	return nil
}

// Name identifies the sink in logs and metrics.
func (r *ErrorReportRepository) Name() string { return "mongo" }
