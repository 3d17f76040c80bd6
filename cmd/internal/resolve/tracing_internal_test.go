package resolve

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

func TestNewTracerProvider(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		env     Environment
		wantSDK bool
	}{
		{name: "disabled", env: Environment{}},
		{name: "enabled", env: Environment{Trace: true}, wantSDK: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var tp trace.TracerProvider
			app := fx.New(
				fx.NopLogger,
				fx.Supply(tt.env),
				fx.Provide(NewTracerProvider),
				fx.Populate(&tp),
			)

			ctx := context.Background()
			if err := app.Start(ctx); err != nil {
				t.Fatalf("app.Start error: %v", err)
			}

			if _, ok := tp.(*sdktrace.TracerProvider); ok != tt.wantSDK {
				t.Errorf("SDK TracerProvider = %v, want %v", ok, tt.wantSDK)
			}

			if err := app.Stop(ctx); err != nil {
				t.Fatalf("app.Stop error: %v", err)
			}
		})
	}
}

func TestNewResource(t *testing.T) {
	t.Parallel()

	found := false
	for _, attr := range newResource().Attributes() {
		if string(attr.Key) == "service.name" && attr.Value.AsString() == ServiceName {
			found = true
		}
	}
	if !found {
		t.Error("expected service.name attribute in resource")
	}
}

func TestNewPropagator(t *testing.T) {
	t.Parallel()

	prop := NewPropagator()
	if _, ok := prop.(propagation.TraceContext); ok {
		t.Error("expected composite propagator, not just TraceContext")
	}

	fields := prop.Fields()
	for _, want := range []string{"traceparent", "baggage"} {
		found := false
		for _, f := range fields {
			found = found || f == want
		}
		if !found {
			t.Errorf("propagator fields %v lack %s", fields, want)
		}
	}
}
