package bwcdkutil

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
)

// DeploymentConstructor creates deployment-specific infrastructure in a given stack.
type DeploymentConstructor func(stack awscdk.Stack, deploymentIdent string)

// AppConfig configures the CDK app setup.
type AppConfig struct {
	// Prefix for context keys (e.g., "bwstudio-" for "bwstudio-qualifier", "bwstudio-region", etc.)
	Prefix string
	// DeployersGroup is the IAM group that can deploy to all environments.
	DeployersGroup string
	// RestrictedDeployments are deployment identifiers that require DeployersGroup membership.
	RestrictedDeployments []string
}

// SetupApp validates the CDK context, stores the Config in the construct tree and
// creates one stack per allowed deployment in the configured region. Stacks are
// returned in deployment order.
//
// SetupApp panics with a clear error message if any required context value is
// missing or invalid.
func SetupApp(app awscdk.App, cfg AppConfig, newDeployment DeploymentConstructor) []awscdk.Stack {
	config, err := NewConfig(app, cfg)
	if err != nil {
		panic(err)
	}
	StoreConfig(app, config)

	deployments := config.AllowedDeployments()
	stacks := make([]awscdk.Stack, 0, len(deployments))
	for _, deploymentIdent := range deployments {
		stack := NewStackFromConfig(app, config, deploymentIdent)
		newDeployment(stack, deploymentIdent)
		stacks = append(stacks, stack)
	}
	return stacks
}
