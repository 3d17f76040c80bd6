// Package bwcdkparams names, imports and publishes values in AWS Systems Manager
// Parameter Store under the project's qualifier.
//
// Parameters owned by the stack live under /{qualifier}/{deployment}/{namespace}/{name}
// so deployments sharing a region never collide. Parameters owned by someone
// else, such as the API keys of the backing service, are imported by their full name.
package bwcdkparams

import (
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkutil"
)

// ParameterName generates a hierarchical SSM parameter path. Returns a path like
// /{qualifier}/{deployment}/{namespace}/{name}, or /{qualifier}/{namespace}/{name}
// outside a deployment stack.
func ParameterName(scope constructs.Construct, namespace string, name string) *string {
	qual := bwcdkutil.Qualifier(scope)
	if dep := bwcdkutil.DeploymentIdent(scope); dep != "" {
		return jsii.Sprintf("/%s/%s/%s/%s", qual, strings.ToLower(dep), namespace, name)
	}
	return jsii.Sprintf("/%s/%s/%s", qual, namespace, name)
}

// Store creates a String parameter under ParameterName.
func Store(
	scope constructs.Construct, id string, namespace string, name string, value *string,
) awsssm.StringParameter {
	return awsssm.NewStringParameter(scope, jsii.String(id),
		&awsssm.StringParameterProps{
			ParameterName: ParameterName(scope, namespace, name),
			StringValue:   value,
		})
}

// Import references an externally-owned String parameter by its full name. The
// value is never read at synth time.
func Import(scope constructs.Construct, id string, name string) awsssm.IStringParameter {
	if !strings.HasPrefix(name, "/") {
		panic("bwcdkparams: parameter name must be absolute, got: " + name)
	}
	return awsssm.StringParameter_FromStringParameterName(scope, jsii.String(id), jsii.String(name))
}
