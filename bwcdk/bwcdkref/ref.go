// Package bwcdkref models handles to externally-managed secrets and parameters.
//
// A reference is never created or mutated by this module. It only carries the
// identifier of the value and the locator (ARN) it resolves to, so that IAM
// statements can be scoped to it and build commands can look it up at build time.
// Values themselves never pass through here.
package bwcdkref

import (
	"regexp"
	"strings"

	"github.com/cockroachdb/errors"
)

// ErrUnresolved is returned when a reference cannot be mapped to a concrete locator.
var ErrUnresolved = errors.New("reference cannot be resolved to a locator")

// Secret references a versioned value in AWS Secrets Manager.
type Secret struct {
	// ID is the name (or partial ARN) the secret is known by.
	ID string
	// Locator is the ARN of the secret.
	Locator string
	// Partial is set when Locator lacks the random suffix Secrets Manager appends
	// to every secret ARN, as is the case for secrets imported by name.
	Partial bool
}

// Parameter references a String parameter in AWS Systems Manager Parameter Store.
type Parameter struct {
	// Name is the hierarchical parameter name, e.g. "/supabase/anon-key".
	Name string
	// Region is the region the parameter lives in.
	Region string
	// Locator is the ARN of the parameter.
	Locator string
}

// NewSecret returns a validated secret reference.
func NewSecret(id, locator string) (Secret, error) {
	s := Secret{ID: id, Locator: locator}
	if err := s.Validate(); err != nil {
		return Secret{}, err
	}
	return s, nil
}

// NewParameter returns a validated parameter reference.
func NewParameter(name, region, locator string) (Parameter, error) {
	p := Parameter{Name: name, Region: region, Locator: locator}
	if err := p.Validate(); err != nil {
		return Parameter{}, err
	}
	return p, nil
}

// Validate checks that the secret resolves to an exact locator.
func (s Secret) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.Wrap(ErrUnresolved, "secret has no identifier")
	}
	if err := validateLocator(s.Locator, "secretsmanager"); err != nil {
		return errors.Wrapf(err, "secret %q", s.ID)
	}
	return nil
}

// Validate checks that the parameter has a name, a region and an exact locator.
func (p Parameter) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.Wrap(ErrUnresolved, "parameter has no name")
	}
	if strings.TrimSpace(p.Region) == "" {
		return errors.Wrapf(ErrUnresolved, "parameter %q has no region", p.Name)
	}
	if err := validateLocator(p.Locator, "ssm"); err != nil {
		return errors.Wrapf(err, "parameter %q", p.Name)
	}
	return nil
}

var arnPattern = regexp.MustCompile(`^arn:[a-z-]+:([a-z0-9-]+):[a-z0-9-]*:[0-9]*:.+$`)

// validateLocator accepts either a literal ARN of the expected service or an
// unresolved CDK token, which resolves to one at deploy time.
func validateLocator(locator, service string) error {
	if strings.TrimSpace(locator) == "" {
		return errors.Wrap(ErrUnresolved, "locator is empty")
	}
	if strings.Contains(locator, "*") {
		return errors.Wrapf(ErrUnresolved, "locator %q contains a wildcard", locator)
	}
	if IsToken(locator) {
		return nil
	}

	m := arnPattern.FindStringSubmatch(locator)
	if m == nil {
		return errors.Wrapf(ErrUnresolved, "locator %q is not an ARN", locator)
	}
	if m[1] != service {
		return errors.Wrapf(ErrUnresolved, "locator %q is not a %s ARN", locator, service)
	}
	return nil
}

// IsToken reports whether s contains an unresolved CDK token.
func IsToken(s string) bool {
	return strings.Contains(s, "${Token[")
}
