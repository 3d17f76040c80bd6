package bwcdkref

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
)

// FromSecret builds a reference from a CDK secret construct.
func FromSecret(secret awssecretsmanager.ISecret) (Secret, error) {
	if secret == nil {
		return Secret{}, errors.Wrap(ErrUnresolved, "secret construct is nil")
	}
	ref, err := NewSecret(deref(secret.SecretName()), deref(secret.SecretArn()))
	if err != nil {
		return Secret{}, err
	}
	ref.Partial = secret.SecretFullArn() == nil
	return ref, nil
}

// FromStringParameter builds a reference from a CDK parameter construct. The region
// is taken from the environment the parameter was defined or imported in.
func FromStringParameter(param awsssm.IStringParameter) (Parameter, error) {
	if param == nil {
		return Parameter{}, errors.Wrap(ErrUnresolved, "parameter construct is nil")
	}

	var region string
	if env := param.Env(); env != nil {
		region = deref(env.Region)
	}
	return NewParameter(deref(param.ParameterName()), region, deref(param.ParameterArn()))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// ParameterInRegion references a String parameter by name in an explicit region,
// for parameters that live outside the region of the stack scope belongs to.
func ParameterInRegion(scope constructs.Construct, name, region string) (Parameter, error) {
	if !strings.HasPrefix(name, "/") {
		return Parameter{}, errors.Wrapf(ErrUnresolved, "parameter name %q is not absolute", name)
	}

	locator := awscdk.Stack_Of(scope).FormatArn(&awscdk.ArnComponents{
		Service:      jsii.String("ssm"),
		Region:       jsii.String(region),
		Resource:     jsii.String("parameter"),
		ResourceName: jsii.String(strings.TrimPrefix(name, "/")),
	})
	return NewParameter(name, region, deref(locator))
}
