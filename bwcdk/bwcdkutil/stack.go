package bwcdkutil

import (
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/iancoleman/strcase"
)

// DeploymentStackName returns the CloudFormation stack name for a deployment stack.
// This is the canonical function for generating stack names, the CLI uses it to
// find the stack it reads outputs from.
func DeploymentStackName(qualifier, regionIdent, deploymentIdent string) string {
	base := strcase.ToLowerCamel(fmt.Sprintf("%s-%s", qualifier, regionIdent))
	return base + deploymentIdent
}

// NewStackFromConfig creates the stack of one deployment using a validated Config.
func NewStackFromConfig(scope constructs.Construct, cfg *Config, deploymentIdent string) awscdk.Stack {
	if deploymentIdent == "" || strings.ToUpper(deploymentIdent[:1]) != deploymentIdent[:1] {
		panic("deployment identifier must start with an upper-case letter, got: " + deploymentIdent)
	}

	regionIdent := cfg.RegionIdent()
	baseIdent := strcase.ToLowerCamel(fmt.Sprintf("%s-%s", cfg.Qualifier, regionIdent))

	stack := awscdk.NewStack(scope, jsii.String(DeploymentStackName(cfg.Qualifier, regionIdent, deploymentIdent)),
		&awscdk.StackProps{
			Env: &awscdk.Environment{
				Account: accountFromEnv(),
				Region:  jsii.String(cfg.Region),
			},
			Description: jsii.String(fmt.Sprintf("%s (region: %s, deployment: %s)",
				baseIdent, cfg.Region, deploymentIdent)),
			Synthesizer: awscdk.NewDefaultStackSynthesizer(&awscdk.DefaultStackSynthesizerProps{
				Qualifier: jsii.String(cfg.Qualifier),
			}),
		})

	StoreDeploymentIdent(stack, deploymentIdent)

	return stack
}

// accountFromEnv returns the account the cdk CLI resolved, or nil for an
// environment-agnostic stack.
func accountFromEnv() *string {
	if account := os.Getenv("CDK_DEFAULT_ACCOUNT"); account != "" {
		return jsii.String(account)
	}
	return nil
}
