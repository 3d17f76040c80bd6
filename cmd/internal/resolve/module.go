package resolve

import (
	"context"

	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// Module provides a Resolver for req. It requires an aws.Config.
func Module(req Request) fx.Option {
	return fx.Module("resolve",
		fx.Provide(ParseEnv, NewLogger, NewTracerProvider, NewPropagator, New),
		clientsIn(req),
	)
}

// Run resolves req with clients built from the AWS configuration of req.Profile.
// The run is traced as a single span with one child per AWS call.
func Run(ctx context.Context, req Request) (res *Result, err error) {
	var (
		r  *Resolver
		tp trace.TracerProvider
	)
	app := fx.New(
		fx.NopLogger,
		fx.Supply(req.Profile),
		fx.Provide(NewAWSConfig),
		Module(req),
		fx.Populate(&r, &tp),
	)
	if err := app.Err(); err != nil {
		return nil, errors.Wrap(err, "wiring resolver")
	}
	if err := app.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "starting resolver")
	}
	defer func() {
		err = errors.CombineErrors(err, app.Stop(context.WithoutCancel(ctx)))
	}()

	ctx, span := tp.Tracer(tracerName).Start(ctx, "Resolve")
	defer span.End()

	res, err = r.Resolve(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "reference unresolved")
	}
	return res, err
}
