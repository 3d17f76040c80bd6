// Package bwcdkaccess derives the IAM role the hosting platform assumes to build
// and serve the application.
//
// The permission set is kept to least privilege: reads are scoped to the exact
// locator of each referenced secret and parameter, and log writes are scoped to the
// application's own log group. A statement that cannot be scoped fails the
// synthesis instead of being widened.
package bwcdkaccess

import (
	"fmt"
	"strings"

	"github.com/basewarphq/bwstudio/bwcdk/bwcdkref"
	"github.com/cockroachdb/errors"
)

// ServicePrincipal is the identity of the hosting platform that assumes the role.
const ServicePrincipal = "amplify.amazonaws.com"

// LogGroupPrefix is the namespace the hosting platform writes its logs under.
const LogGroupPrefix = "/aws/amplify/"

// ErrUnscopedResource is returned when a statement cannot be scoped to a concrete resource.
var ErrUnscopedResource = errors.New("permission cannot be scoped to a concrete resource")

var (
	secretReadActions = []string{
		"secretsmanager:GetSecretValue",
		"secretsmanager:DescribeSecret",
	}
	parameterReadActions = []string{
		"ssm:DescribeParameters",
		"ssm:GetParameters",
		"ssm:GetParameter",
		"ssm:GetParameterHistory",
	}
)

// Statement is an allow statement. The effect is always Allow.
type Statement struct {
	Sid       string
	Actions   []string
	Resources []string
}

// Validate rejects statements that would grant more than their resources pin down.
func (s Statement) Validate() error {
	if len(s.Actions) == 0 {
		return errors.Newf("statement %q has no actions", s.Sid)
	}
	if len(s.Resources) == 0 {
		return errors.Wrapf(ErrUnscopedResource, "statement %q has no resources", s.Sid)
	}

	reads := s.isRead()
	for _, res := range s.Resources {
		switch {
		case strings.TrimSpace(res) == "", res == "*":
			return errors.Wrapf(ErrUnscopedResource, "statement %q has resource %q", s.Sid, res)
		case reads && strings.Contains(res, "*"):
			return errors.Wrapf(ErrUnscopedResource,
				"statement %q reads values through wildcard resource %q", s.Sid, res)
		}
	}
	return nil
}

func (s Statement) isRead() bool {
	for _, a := range s.Actions {
		if strings.HasPrefix(a, "secretsmanager:") || strings.HasPrefix(a, "ssm:") {
			return true
		}
	}
	return false
}

// ReadStatements returns one read statement per reference: the secret first, then
// the parameters in the order given.
func ReadStatements(secret bwcdkref.Secret, params ...bwcdkref.Parameter) ([]Statement, error) {
	if len(params) == 0 {
		return nil, errors.New("at least one parameter reference is required")
	}
	if err := secret.Validate(); err != nil {
		return nil, err
	}

	stmts := make([]Statement, 0, len(params)+1)
	stmts = append(stmts, Statement{
		Sid:       "ReadSecret",
		Actions:   secretReadActions,
		Resources: []string{secretResource(secret)},
	})

	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, err
		}
		stmts = append(stmts, Statement{
			Sid:       fmt.Sprintf("ReadParameter%d", i+1),
			Actions:   parameterReadActions,
			Resources: []string{p.Locator},
		})
	}

	return validateAll(stmts)
}

// secretResource returns the resource pattern for a secret. Secrets imported by
// name lack the six-character suffix Secrets Manager appends, which is matched
// exactly with single-character wildcards.
func secretResource(s bwcdkref.Secret) string {
	if s.Partial {
		return s.Locator + "-??????"
	}
	return s.Locator
}

// Env pins the account-level parts of log ARNs. Values may be CDK tokens.
type Env struct {
	Partition string
	Region    string
	Account   string
}

func (e Env) logGroupArn(name string) string {
	return fmt.Sprintf("arn:%s:logs:%s:%s:log-group:%s", e.Partition, e.Region, e.Account, name)
}

// LoggingStatements returns the statements the platform needs to write SSR logs
// for the application with the given identifier.
func LoggingStatements(env Env, appID string) ([]Statement, error) {
	if env.Partition == "" || env.Region == "" || env.Account == "" {
		return nil, errors.Wrap(ErrUnscopedResource, "log statements need partition, region and account")
	}
	if strings.TrimSpace(appID) == "" || strings.Contains(appID, "*") {
		return nil, errors.Wrapf(ErrUnscopedResource, "invalid application identifier %q", appID)
	}

	return validateAll([]Statement{
		{
			Sid:       "PushLogs",
			Actions:   []string{"logs:CreateLogStream", "logs:PutLogEvents"},
			Resources: []string{env.logGroupArn(LogGroupPrefix+appID) + ":log-stream:*"},
		},
		{
			Sid:       "CreateLogGroup",
			Actions:   []string{"logs:CreateLogGroup"},
			Resources: []string{env.logGroupArn(LogGroupPrefix + "*")},
		},
		{
			Sid:       "DescribeLogGroups",
			Actions:   []string{"logs:DescribeLogGroups"},
			Resources: []string{env.logGroupArn("*")},
		},
	})
}

func validateAll(stmts []Statement) ([]Statement, error) {
	for _, s := range stmts {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return stmts, nil
}
