package bwcdkhosting

import (
	"regexp"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
)

// Override sets a CloudFormation property that the typed construct does not expose.
type Override struct {
	// Path is the dotted property path, e.g. "Platform" or "BasicAuthConfig.EnableBasicAuth".
	Path string
	// Value is rendered into the template as-is.
	Value any
}

// Overrides are applied in order after the construct is synthesized.
type Overrides []Override

var overridePathPattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*(\.[A-Za-z0-9]+)*$`)

// Validate rejects malformed and duplicate paths.
func (o Overrides) Validate() error {
	seen := make(map[string]bool, len(o))
	for _, ov := range o {
		if !overridePathPattern.MatchString(ov.Path) {
			return errors.Newf("invalid override path %q", ov.Path)
		}
		if seen[ov.Path] {
			return errors.Newf("override path %q is set more than once", ov.Path)
		}
		if ov.Value == nil {
			return errors.Newf("override %q has no value", ov.Path)
		}
		seen[ov.Path] = true
	}
	return nil
}

// Apply writes the overrides onto res. Panics if the overrides are invalid.
func (o Overrides) Apply(res awscdk.CfnResource) {
	if err := o.Validate(); err != nil {
		panic(errors.Wrap(err, "bwcdkhosting: applying overrides"))
	}
	for _, ov := range o {
		res.AddPropertyOverride(jsii.String(ov.Path), ov.Value)
	}
}

// has reports whether an override for path exists.
func (o Overrides) has(path string) bool {
	for _, ov := range o {
		if ov.Path == path {
			return true
		}
	}
	return false
}
