package bwcdkaccess

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkref"
	"github.com/cockroachdb/errors"
)

// Access provides the service role and attaches logging permissions once the
// application identifier is known.
type Access interface {
	// Role returns the role the hosting platform assumes.
	Role() awsiam.Role
	// AttachLogging creates the SSR logging policy for the application and attaches
	// it to the role. It may only be called once.
	AttachLogging(appID *string) awsiam.Policy
}

// Props configures the Access construct.
type Props struct {
	// Secret is the database credential the build reads.
	// Required.
	Secret bwcdkref.Secret
	// Parameters are the configuration parameters the build reads.
	// At least one is required.
	Parameters []bwcdkref.Parameter
	// Description of the role.
	// Optional.
	Description *string
}

type access struct {
	scope   constructs.Construct
	role    awsiam.Role
	logging awsiam.Policy
}

// NewRole creates the service role trusted by the hosting platform only. Its
// inline policy grants read access to each reference and nothing else.
//
// Panics if any reference cannot be scoped to an exact locator.
func NewRole(scope constructs.Construct, props Props) Access {
	scope = constructs.NewConstruct(scope, jsii.String("Access"))
	con := &access{scope: scope}

	stmts, err := ReadStatements(props.Secret, props.Parameters...)
	if err != nil {
		panic(errors.Wrap(err, "bwcdkaccess: building read statements"))
	}

	description := props.Description
	if description == nil {
		description = jsii.String("The service role that will be used by AWS Amplify for SSR app logging.")
	}

	con.role = awsiam.NewRole(scope, jsii.String("Role"), &awsiam.RoleProps{
		Description: description,
		Path:        jsii.String("/service-role/"),
		AssumedBy:   awsiam.NewServicePrincipal(jsii.String(ServicePrincipal), nil),
		InlinePolicies: &map[string]awsiam.PolicyDocument{
			"ReadReferences": awsiam.NewPolicyDocument(&awsiam.PolicyDocumentProps{
				Statements: toPolicyStatements(stmts),
			}),
		},
	})

	return con
}

func (a *access) Role() awsiam.Role {
	return a.role
}

func (a *access) AttachLogging(appID *string) awsiam.Policy {
	if a.logging != nil {
		panic("bwcdkaccess: logging policy already attached")
	}
	if appID == nil {
		panic(errors.Wrap(ErrUnscopedResource, "bwcdkaccess: logging needs an application identifier"))
	}

	stmts, err := LoggingStatements(Env{
		Partition: *awscdk.Aws_PARTITION(),
		Region:    *awscdk.Aws_REGION(),
		Account:   *awscdk.Aws_ACCOUNT_ID(),
	}, *appID)
	if err != nil {
		panic(errors.Wrap(err, "bwcdkaccess: building logging statements"))
	}

	a.logging = awsiam.NewPolicy(a.scope, jsii.String("LoggingPolicy"), &awsiam.PolicyProps{
		PolicyName: jsii.String("AmplifySSRLoggingPolicy-" + *appID),
		Statements: toPolicyStatements(stmts),
	})
	a.logging.AttachToRole(a.role)

	return a.logging
}

func toPolicyStatements(stmts []Statement) *[]awsiam.PolicyStatement {
	out := make([]awsiam.PolicyStatement, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, awsiam.NewPolicyStatement(&awsiam.PolicyStatementProps{
			Sid:       jsii.String(s.Sid),
			Effect:    awsiam.Effect_ALLOW,
			Actions:   jsii.Strings(s.Actions...),
			Resources: jsii.Strings(s.Resources...),
		}))
	}
	return &out
}
