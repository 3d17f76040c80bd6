package resolve

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/fx"
)

// InRegion wraps an AWS client configured for a specific fixed region.
type InRegion[T any] struct {
	Client T
	Region string
}

// NewInRegion creates an InRegion wrapper for an AWS client.
func NewInRegion[T any](client T, region string) *InRegion[T] {
	return &InRegion[T]{Client: client, Region: region}
}

// SecretDescriber is the part of the Secrets Manager API the resolver uses.
type SecretDescriber interface {
	DescribeSecret(
		ctx context.Context, params *secretsmanager.DescribeSecretInput, optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.DescribeSecretOutput, error)
}

// ParameterGetter is the part of the Systems Manager API the resolver uses.
type ParameterGetter interface {
	GetParameter(
		ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options),
	) (*ssm.GetParameterOutput, error)
}

const awsConfigTimeout = 10 * time.Second

// Profile names the shared configuration profile the clients are built from. The
// empty profile selects the default credential chain.
type Profile string

// NewAWSConfig loads the AWS SDK v2 configuration of profile with a timeout and
// instruments it for tracing. The TracerProvider and Propagator are injected
// explicitly so no global state is involved.
func NewAWSConfig(
	profile Profile, tp trace.TracerProvider, prop propagation.TextMapPropagator,
) (aws.Config, error) {
	ctx, cancel := context.WithTimeout(context.Background(), awsConfigTimeout)
	defer cancel()

	var opts []func(*awsconfig.LoadOptions) error
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(string(profile)))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return cfg, errors.Wrapf(err, "loading AWS configuration for profile %q", profile)
	}

	otelaws.AppendMiddlewares(&cfg.APIOptions,
		otelaws.WithTracerProvider(tp),
		otelaws.WithTextMapPropagator(prop),
	)
	return cfg, nil
}

// clientsIn provides the resolver's clients, each for the region its references live in.
func clientsIn(req Request) fx.Option {
	return fx.Provide(
		func(cfg aws.Config) *InRegion[SecretDescriber] {
			awsCfg := cfg.Copy()
			awsCfg.Region = req.Region
			return NewInRegion[SecretDescriber](secretsmanager.NewFromConfig(awsCfg), req.Region)
		},
		func(cfg aws.Config) *InRegion[ParameterGetter] {
			awsCfg := cfg.Copy()
			awsCfg.Region = req.paramsRegion()
			return NewInRegion[ParameterGetter](ssm.NewFromConfig(awsCfg), req.paramsRegion())
		},
	)
}
