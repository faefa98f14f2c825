package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ivaflow/flowcore/flow/events"
)

// OTelSubscriber turns each engine event into an immediate OpenTelemetry
// span: events mark points in time rather than durations, so the span
// starts and ends within the same call.
type OTelSubscriber struct {
	tracer trace.Tracer
}

// NewOTelSubscriber wraps tracer (e.g. otel.Tracer("flowcore")) as an
// events.Subscriber source.
func NewOTelSubscriber(tracer trace.Tracer) *OTelSubscriber {
	return &OTelSubscriber{tracer: tracer}
}

// Subscribe returns an events.Subscriber bound to this OTelSubscriber.
func (o *OTelSubscriber) Subscribe() events.Subscriber {
	return o.emit
}

func (o *OTelSubscriber) emit(ev events.Event) {
	ctx := context.Background()
	_, span := o.tracer.Start(ctx, string(ev.Kind))
	defer span.End()

	span.SetAttributes(
		attribute.String("flowcore.session_id", ev.SessionID),
		attribute.String("flowcore.flow_id", ev.FlowID),
		attribute.String("flowcore.node_id", ev.NodeID),
	)

	for k, v := range ev.Meta {
		switch val := v.(type) {
		case string:
			span.SetAttributes(attribute.String("flowcore."+k, val))
		case int:
			span.SetAttributes(attribute.Int("flowcore."+k, val))
		case int64:
			span.SetAttributes(attribute.Int64("flowcore."+k, val))
		case float64:
			span.SetAttributes(attribute.Float64("flowcore."+k, val))
		case bool:
			span.SetAttributes(attribute.Bool("flowcore."+k, val))
		default:
			span.SetAttributes(attribute.String("flowcore."+k, fmt.Sprintf("%v", val)))
		}
	}

	if ev.Kind == events.KindNodeError {
		if errMsg, ok := ev.Meta["error"].(string); ok {
			span.SetStatus(codes.Error, errMsg)
		}
	}
}
