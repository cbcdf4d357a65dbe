package otel

import (
	"context"
	"reflect"

	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/typebusio/typebus/pkg/eventbus"
)

// ImmediateWithSpan dispatches msg synchronously, wrapped in a producer
// span. Before Initialize, it is plain eventbus.Immediate.
func ImmediateWithSpan[T any](ctx context.Context, b *eventbus.Bus, msg T) {
	if !IsInitialized() {
		eventbus.Immediate(b, msg)
		return
	}

	_, span := StartSpan(ctx, "eventbus.immediate",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKey.String("typebus"),
			semconv.MessagingDestinationKey.String(typeName[T]()),
			semconv.MessagingOperationKey.String("immediate"),
		),
	)
	defer span.End()

	eventbus.Immediate(b, msg)
}

// PostWithSpan appends msg to the deferred queue, wrapped in a producer
// span. Before Initialize, it is plain eventbus.Post.
func PostWithSpan[T any](ctx context.Context, b *eventbus.Bus, msg T) {
	if !IsInitialized() {
		eventbus.Post(b, msg)
		return
	}

	_, span := StartSpan(ctx, "eventbus.post",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKey.String("typebus"),
			semconv.MessagingDestinationKey.String(typeName[T]()),
			semconv.MessagingOperationKey.String("post"),
		),
	)
	defer span.End()

	eventbus.Post(b, msg)
}

// ProcessWithSpan drains the deferred queue, wrapped in a consumer span.
// Before Initialize, it is plain Process.
func ProcessWithSpan(ctx context.Context, b *eventbus.Bus) {
	if !IsInitialized() {
		b.Process()
		return
	}

	_, span := StartSpan(ctx, "eventbus.process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKey.String("typebus"),
			semconv.MessagingOperationKey.String("process"),
		),
	)
	defer span.End()

	b.Process()
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}
