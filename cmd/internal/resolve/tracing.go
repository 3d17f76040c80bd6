package resolve

import (
	"os"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

// ServiceName identifies the CLI in exported spans.
const ServiceName = "bwstudio"

const tracerName = "github.com/basewarphq/bwstudio/cmd/internal/resolve"

// NewTracerProvider returns a provider exporting spans to stderr when BWSTUDIO_TRACE
// is set, and a no-op provider otherwise. Exported spans are flushed on stop.
func NewTracerProvider(lc fx.Lifecycle, e Environment) (trace.TracerProvider, error) {
	if !e.Trace {
		return noop.NewTracerProvider(), nil
	}

	exp, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create stdout exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exp),
		sdktrace.WithResource(newResource()),
	)
	lc.Append(fx.Hook{OnStop: tp.Shutdown})
	return tp, nil
}

func newResource() *resource.Resource {
	return resource.NewSchemaless(attribute.String("service.name", ServiceName))
}

// NewPropagator returns the propagator the AWS SDK middleware injects trace
// headers with.
func NewPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)
}
