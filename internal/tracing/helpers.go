package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Tracer names for the instrumented subsystems.
const (
	tracerFeed   = "olybars/feed"
	tracerLeague = "olybars/league"
	tracerDB     = "olybars/db"
)

// DBOperation represents the type of database operation being traced.
type DBOperation string

const (
	// DBOperationQuery represents a SELECT query.
	DBOperationQuery DBOperation = "query"
	// DBOperationInsert represents an INSERT operation.
	DBOperationInsert DBOperation = "insert"
	// DBOperationUpdate represents an UPDATE operation.
	DBOperationUpdate DBOperation = "update"
	// DBOperationDelete represents a DELETE operation.
	DBOperationDelete DBOperation = "delete"
)

// StartFeedBuildSpan starts a span covering one unified feed build.
func StartFeedBuildSpan(ctx context.Context) (context.Context, trace.Span) {
	return otel.Tracer(tracerFeed).Start(ctx, "feed.build")
}

// StartSnapshotSpan starts a span covering one leaderboard snapshot rebuild.
func StartSnapshotSpan(ctx context.Context) (context.Context, trace.Span) {
	return otel.Tracer(tracerLeague).Start(ctx, "leaderboard.rebuild_snapshot")
}

// StartDBSpan creates a new span for a database operation.
// Returns the new context and a function to end the span:
//
//	ctx, endSpan := tracing.StartDBSpan(ctx, "activity_log", tracing.DBOperationInsert)
//	defer endSpan(err)
func StartDBSpan(ctx context.Context, table string, operation DBOperation) (context.Context, func(error)) {
	spanName := string(operation)
	if table != "" {
		spanName = spanName + " " + table
	}

	ctx, span := otel.Tracer(tracerDB).Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("db.system", "postgresql"),
			attribute.String("db.operation", string(operation)),
		),
	)
	if table != "" {
		span.SetAttributes(attribute.String("db.sql.table", table))
	}

	return ctx, func(err error) {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}
}

// RecordError records err on the span and marks the span status as error.
// A nil err is a no-op.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// SetAttributes sets attributes on the span in the current context.
func SetAttributes(ctx context.Context, attrs ...attribute.KeyValue) {
	trace.SpanFromContext(ctx).SetAttributes(attrs...)
}
