package bwcdkbuildspec

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Source is where a runtime value is looked up during pre-build.
type Source int

const (
	// SourceSecretField reads one JSON field of a secrets manager secret.
	SourceSecretField Source = iota + 1
	// SourceParameter reads a parameter store value.
	SourceParameter
)

func (s Source) String() string {
	switch s {
	case SourceSecretField:
		return "secret-field"
	case SourceParameter:
		return "parameter"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// RuntimeValue is a variable written to the runtime env file at build time.
type RuntimeValue struct {
	// Name is the variable written to the env file.
	Name string
	// Source selects the lookup command.
	Source Source
	// LocatorVar is the build environment variable that holds the secret id or
	// parameter name.
	LocatorVar string
	// Field is the JSON field of the secret string. Only for SourceSecretField.
	Field string
	// RegionVar is the build environment variable that holds the region of the
	// parameter. Only for SourceParameter, optional.
	RegionVar string
}

// SecretField declares a value read from a JSON field of a secret.
func SecretField(name, locatorVar, field string) RuntimeValue {
	return RuntimeValue{Name: name, Source: SourceSecretField, LocatorVar: locatorVar, Field: field}
}

// Parameter declares a value read from the parameter store.
func Parameter(name, regionVar, locatorVar string) RuntimeValue {
	return RuntimeValue{Name: name, Source: SourceParameter, LocatorVar: locatorVar, RegionVar: regionVar}
}

// Command returns the shell line that resolves the value and appends it to envFile.
func (rv RuntimeValue) Command(envFile string) string {
	switch rv.Source {
	case SourceSecretField:
		return fmt.Sprintf(
			"echo %s=$(aws secretsmanager get-secret-value --secret-id $%s --query SecretString | jq -r . | jq -r .%s) >> %s",
			rv.Name, rv.LocatorVar, rv.Field, envFile)
	case SourceParameter:
		region := ""
		if rv.RegionVar != "" {
			region = " --region $" + rv.RegionVar
		}
		return fmt.Sprintf("echo %s=$(aws ssm get-parameter%s --name $%s --query Parameter.Value) >> %s",
			rv.Name, region, rv.LocatorVar, envFile)
	default:
		panic("bwcdkbuildspec: unknown runtime value source " + rv.Source.String())
	}
}

func (rv RuntimeValue) validate() error {
	if !varNamePattern.MatchString(rv.Name) {
		return errors.Newf("invalid runtime value name %q", rv.Name)
	}
	if !varNamePattern.MatchString(rv.LocatorVar) {
		return errors.Newf("runtime value %s: invalid locator variable %q", rv.Name, rv.LocatorVar)
	}

	switch rv.Source {
	case SourceSecretField:
		if !fieldPattern.MatchString(rv.Field) {
			return errors.Newf("runtime value %s: invalid secret field %q", rv.Name, rv.Field)
		}
	case SourceParameter:
		if rv.RegionVar != "" && !varNamePattern.MatchString(rv.RegionVar) {
			return errors.Newf("runtime value %s: invalid region variable %q", rv.Name, rv.RegionVar)
		}
	default:
		return errors.Newf("runtime value %s: unknown source %s", rv.Name, rv.Source)
	}
	return nil
}

// Build environment variables read by DefaultRuntimeValues.
const (
	DBSecretVar       = "DB_SECRET_ARN"
	AnonKeyNameVar    = "ANON_KEY_NAME"
	ServiceKeyNameVar = "SERVICE_KEY_NAME"
	ParamsRegionVar   = "SUPABASE_REGION"
)

// DefaultRuntimeValues are the studio's database password and API keys.
func DefaultRuntimeValues() []RuntimeValue {
	return []RuntimeValue{
		SecretField("POSTGRES_PASSWORD", DBSecretVar, "password"),
		Parameter("SUPABASE_ANON_KEY", ParamsRegionVar, AnonKeyNameVar),
		Parameter("SUPABASE_SERVICE_KEY", ParamsRegionVar, ServiceKeyNameVar),
	}
}
