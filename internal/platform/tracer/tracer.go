// Package tracer provides a lightweight tracing abstraction for age evaluation.
//
// The interface does not depend on OpenTelemetry APIs, so the service can emit
// traces while staying decoupled from a specific tracing implementation.
//
// Implementations:
//   - NoopTracer: for tests
//   - OTelTracer: OpenTelemetry adapter for production
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks the span as failed.
	// End must be called exactly once, typically via defer.
	End(err error)

	SetAttributes(attrs ...Attribute)

	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a new span with the given name and attributes.
	// The returned context carries the span and should be passed to child operations.
	//
	// Example:
	//   ctx, span := tr.Start(ctx, tracer.SpanEvaluate,
	//       tracer.String(tracer.AttrBracket, "adult"),
	//   )
	//   defer span.End(nil)
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute represents a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int(key string, value int) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates a duration attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// AgeBucket coarsens an age in years for span attributes so traces never carry
// an exact age or date of birth.
func AgeBucket(years int) string {
	switch {
	case years < 0:
		return "unborn"
	case years < 13:
		return "0-12"
	case years < 18:
		return "13-17"
	case years < 21:
		return "18-20"
	case years < 65:
		return "21-64"
	default:
		return "65+"
	}
}

// Span names.
const (
	SpanEvaluate      = "agecheck.evaluate"
	SpanEvaluateBatch = "agecheck.evaluate_batch"
	SpanBounds        = "agecheck.bounds"
)

// Attribute keys.
const (
	AttrBracket   = "bracket"
	AttrEligible  = "eligible"
	AttrAgeBucket = "age_bucket"
	AttrBatchSize = "batch.size"
	AttrEligibleN = "batch.eligible"
	AttrExplicit  = "reference_date.explicit"
)
