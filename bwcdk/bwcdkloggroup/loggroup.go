// Package bwcdkloggroup provides a CloudWatch Log Group construct with a fixed
// retention and removal policy, whose name is exported as a stack output.
//
// The hosting platform writes SSR logs to a group named after the app. Creating
// that group up front puts its retention under the stack's control.
package bwcdkloggroup

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awslogs"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

// LogGroup provides access to a CloudWatch Log Group.
type LogGroup interface {
	// LogGroup returns the underlying CDK log group.
	LogGroup() awslogs.ILogGroup
}

// Props configures the LogGroup construct.
type Props struct {
	// Purpose describes what this log group is for (e.g., "server-side rendering").
	// Used in the CfnOutput description.
	// Required.
	Purpose *string
	// LogGroupName is the exact name of the group, e.g. "/aws/amplify/<appId>".
	// Optional, a unique name is generated when nil.
	LogGroupName *string
}

type logGroup struct {
	lg awslogs.ILogGroup
}

// New creates a LogGroup construct.
//
// The log group is created with:
//   - Retention: ONE_WEEK
//   - RemovalPolicy: DESTROY
//
// A CfnOutput is created with:
//   - Key: "{id}LogGroup"
//   - Value: The log group name
//   - Description: "CloudWatch Log Group for {Purpose}"
func New(scope constructs.Construct, id string, props Props) LogGroup {
	if props.Purpose == nil {
		panic("bwcdkloggroup: Purpose is required")
	}

	scope = constructs.NewConstruct(scope, jsii.String(id))
	con := &logGroup{}

	con.lg = awslogs.NewLogGroup(scope, jsii.String("LogGroup"), &awslogs.LogGroupProps{
		LogGroupName:  props.LogGroupName,
		Retention:     awslogs.RetentionDays_ONE_WEEK,
		RemovalPolicy: awscdk.RemovalPolicy_DESTROY,
	})

	awscdk.NewCfnOutput(scope, jsii.String("LogGroupOutput"), &awscdk.CfnOutputProps{
		Key:         jsii.String(id + "LogGroup"),
		Description: jsii.String("CloudWatch Log Group for " + *props.Purpose),
		Value:       con.lg.LogGroupName(),
	})

	return con
}

func (l *logGroup) LogGroup() awslogs.ILogGroup {
	return l.lg
}
