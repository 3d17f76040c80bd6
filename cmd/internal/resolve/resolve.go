// Package resolve turns the secret and parameter names of a deployment into the
// locators the hosting app is synthesized with.
//
// Every reference is looked up once, in order, and the first one that cannot be
// resolved fails the whole run.
package resolve

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkref"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
)

// Timeout bounds each lookup.
const Timeout = 15 * time.Second

// Request names the references of one deployment.
type Request struct {
	// Region holds the database secret.
	Region string
	// ParamsRegion holds both key parameters. Defaults to Region.
	ParamsRegion string
	// SecretID is the name or ARN of the database secret.
	SecretID   string
	AnonKey    string
	ServiceKey string
	// Profile selects the AWS profile. Optional.
	Profile Profile
}

func (r Request) paramsRegion() string {
	if r.ParamsRegion == "" {
		return r.Region
	}
	return r.ParamsRegion
}

func (r Request) validate() error {
	switch {
	case r.Region == "":
		return errors.New("region is required")
	case r.SecretID == "":
		return errors.New("secret id is required")
	case r.AnonKey == "" || r.ServiceKey == "":
		return errors.New("both key parameter names are required")
	}
	return nil
}

// Result holds the resolved references.
type Result struct {
	DBSecret   bwcdkref.Secret
	AnonKey    bwcdkref.Parameter
	ServiceKey bwcdkref.Parameter
}

// Resolver looks references up in Secrets Manager and Systems Manager.
type Resolver struct {
	logs    *zap.Logger
	secrets *InRegion[SecretDescriber]
	params  *InRegion[ParameterGetter]
}

// New creates a Resolver.
func New(logs *zap.Logger, secrets *InRegion[SecretDescriber], params *InRegion[ParameterGetter]) *Resolver {
	return &Resolver{logs: logs, secrets: secrets, params: params}
}

// Resolve resolves the secret, then the anon key, then the service key.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	if err := req.validate(); err != nil {
		return nil, errors.Wrap(err, "invalid request")
	}

	var res Result
	var err error
	if res.DBSecret, err = r.secret(ctx, req.SecretID); err != nil {
		return nil, err
	}
	if res.AnonKey, err = r.parameter(ctx, req.AnonKey); err != nil {
		return nil, err
	}
	if res.ServiceKey, err = r.parameter(ctx, req.ServiceKey); err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *Resolver) secret(ctx context.Context, id string) (bwcdkref.Secret, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	out, err := r.secrets.Client.DescribeSecret(ctx, &secretsmanager.DescribeSecretInput{
		SecretId: aws.String(id),
	})
	if err != nil {
		return bwcdkref.Secret{}, errors.Mark(
			errors.Wrapf(err, "describing secret %s in %s", id, r.secrets.Region), bwcdkref.ErrUnresolved)
	}

	secret, err := bwcdkref.NewSecret(aws.ToString(out.Name), aws.ToString(out.ARN))
	if err != nil {
		return bwcdkref.Secret{}, errors.Wrapf(err, "secret %s", id)
	}
	r.logs.Debug("resolved secret", zap.String("id", id), zap.String("arn", secret.Locator))
	return secret, nil
}

func (r *Resolver) parameter(ctx context.Context, name string) (bwcdkref.Parameter, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	// The value is never decrypted, only the metadata is used.
	out, err := r.params.Client.GetParameter(ctx, &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(false),
	})
	if err != nil {
		return bwcdkref.Parameter{}, errors.Mark(
			errors.Wrapf(err, "getting parameter %s in %s", name, r.params.Region), bwcdkref.ErrUnresolved)
	}
	if out.Parameter == nil {
		return bwcdkref.Parameter{}, errors.Wrapf(bwcdkref.ErrUnresolved, "parameter %s has no metadata", name)
	}

	param, err := bwcdkref.NewParameter(name, r.params.Region, aws.ToString(out.Parameter.ARN))
	if err != nil {
		return bwcdkref.Parameter{}, errors.Wrapf(err, "parameter %s", name)
	}
	r.logs.Debug("resolved parameter", zap.String("name", name), zap.String("arn", param.Locator))
	return param, nil
}
