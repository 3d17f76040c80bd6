package bwcdkutil

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// ExportName returns the CloudFormation export name of a value of the stack scope
// belongs to: "{stackName}:{name}".
func ExportName(scope constructs.Construct, name string) string {
	return *awscdk.Stack_Of(scope).StackName() + ":" + name
}

// ExportValue creates a CfnOutput exported under ExportName, so other stacks and
// tools can import the value without a cross-stack reference.
func ExportValue(scope constructs.Construct, id, name string, value *string) {
	awscdk.NewCfnOutput(scope, jsii.String(id), &awscdk.CfnOutputProps{
		Value:      value,
		ExportName: jsii.String(ExportName(scope, name)),
	})
}
