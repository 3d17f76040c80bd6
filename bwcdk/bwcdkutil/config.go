package bwcdkutil

import (
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

// Scope-based convenience functions that retrieve Config from the construct tree.

// Qualifier returns the CDK qualifier.
// Retrieves Config from the construct tree.
func Qualifier(scope constructs.Construct) string {
	return ConfigFromScope(scope).Qualifier
}

// Region returns the region the hosting app is deployed to.
// Retrieves Config from the construct tree.
func Region(scope constructs.Construct) string {
	return ConfigFromScope(scope).Region
}

// Config holds all CDK context values validated upfront.
type Config struct {
	Prefix      string   `validate:"required"`
	Qualifier   string   `validate:"required,max=10"`
	Region      string   `validate:"required"`
	Deployments []string `validate:"required,dive,required"`

	// DeployerGroups are the groups of the current deployer, if known.
	DeployerGroups []string

	SupabaseURL string `validate:"required,http_url"`
	// DBSecretArn is the complete ARN of the database secret, as printed by
	// "bwstudio resolve". Preferred over DBSecretName when set.
	DBSecretArn     string `validate:"omitempty,startswith=arn:"`
	DBSecretName    string `validate:"required_without=DBSecretArn"`
	AnonKeyParam    string `validate:"required,startswith=/"`
	ServiceKeyParam string `validate:"required,startswith=/"`
	ParamsRegion    string `validate:"required"`

	SourceOwner       string `validate:"required"`
	SourceRepository  string `validate:"required"`
	SourceBranch      string
	AppRoot           string
	GitHubTokenSecret string

	// From AppConfig (not context)
	DeployersGroup        string
	RestrictedDeployments []string `validate:"dive,required"`
}

// NewConfig reads and validates all CDK context values.
// Returns an error if any required value is missing or invalid.
func NewConfig(scope constructs.Construct, acfg AppConfig) (*Config, error) {
	var readErrs []string
	p := acfg.Prefix

	cfg := &Config{
		Prefix:                p,
		DeployersGroup:        acfg.DeployersGroup,
		RestrictedDeployments: acfg.RestrictedDeployments,
	}

	cfg.Qualifier, readErrs = readContextString(scope, p+"qualifier", readErrs)
	cfg.Region, readErrs = readContextString(scope, p+"region", readErrs)
	cfg.Deployments, readErrs = readContextStringSlice(scope, p+"deployments", readErrs)
	cfg.SupabaseURL, readErrs = readContextString(scope, p+"supabase-url", readErrs)
	cfg.AnonKeyParam, readErrs = readContextString(scope, p+"anon-key-param", readErrs)
	cfg.ServiceKeyParam, readErrs = readContextString(scope, p+"service-key-param", readErrs)
	cfg.SourceOwner, readErrs = readContextString(scope, p+"source-owner", readErrs)
	cfg.SourceRepository, readErrs = readContextString(scope, p+"source-repository", readErrs)

	cfg.DBSecretArn, readErrs = readOptionalContextString(scope, p+"db-secret-arn", readErrs)
	cfg.DBSecretName, readErrs = readOptionalContextString(scope, p+"db-secret-name", readErrs)
	cfg.ParamsRegion, readErrs = readOptionalContextString(scope, p+"params-region", readErrs)
	cfg.SourceBranch, readErrs = readOptionalContextString(scope, p+"source-branch", readErrs)
	cfg.AppRoot, readErrs = readOptionalContextString(scope, p+"app-root", readErrs)
	cfg.GitHubTokenSecret, readErrs = readOptionalContextString(scope, p+"github-token-secret", readErrs)

	if cfg.ParamsRegion == "" {
		cfg.ParamsRegion = cfg.Region
	}

	if cfg.Region != "" && !IsKnownRegion(cfg.Region) {
		readErrs = append(readErrs, fmt.Sprintf(
			"unknown region %q, expected one of %s", cfg.Region, strings.Join(KnownRegions(), ", ")))
	}
	for _, d := range cfg.Deployments {
		if d == "" || strings.ToUpper(d[:1]) != d[:1] {
			readErrs = append(readErrs, fmt.Sprintf(
				"deployment identifier must start with an upper-case letter, got %q", d))
		}
	}

	cfg.DeployerGroups = readOptionalDeployerGroups(scope, p)

	if len(readErrs) > 0 {
		return nil, errors.Errorf("CDK context read errors:\n  - %s", strings.Join(readErrs, "\n  - "))
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	if err := validate.Struct(cfg); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			msgs := make([]string, 0, len(validationErrs))
			for _, e := range validationErrs {
				msgs = append(msgs, formatValidationError(e))
			}
			return nil, errors.Errorf("CDK context validation errors:\n  - %s", strings.Join(msgs, "\n  - "))
		}
		return nil, errors.Wrap(err, "CDK context validation failed")
	}

	return cfg, nil
}

// RegionIdent returns the acronym identifier of the configured region.
func (c *Config) RegionIdent() string {
	return RegionIdentFor(c.Region)
}

// SupabaseURLPtr returns the base service URL as a jsii string pointer.
func (c *Config) SupabaseURLPtr() *string {
	return jsii.String(c.SupabaseURL)
}

// configContextKey is the well-known key used to store validated Config in the construct tree.
const configContextKey = "__bwcdkutil_config"

// StoreConfig stores a validated Config in the app's context so it can be retrieved
// anywhere in the construct tree via ConfigFromScope.
func StoreConfig(app awscdk.App, cfg *Config) {
	app.Node().SetContext(jsii.String(configContextKey), cfg)
}

// ConfigFromScope retrieves the validated Config from the construct tree.
// It panics if Config was not stored (i.e., SetupApp was not called).
func ConfigFromScope(scope constructs.Construct) *Config {
	val := scope.Node().TryGetContext(jsii.String(configContextKey))
	if val == nil {
		panic("bwcdkutil.Config not found in construct tree - was SetupApp or StoreConfig called?")
	}
	cfg, ok := val.(*Config)
	if !ok {
		panic(fmt.Sprintf("bwcdkutil.Config has unexpected type %T", val))
	}
	return cfg
}

// AllowedDeployments returns deployments the current deployer can access.
// Members of DeployersGroup get all of them, everyone else only the unrestricted ones.
func (c *Config) AllowedDeployments() []string {
	if c.DeployersGroup != "" && slices.Contains(c.DeployerGroups, c.DeployersGroup) {
		return c.Deployments
	}

	allowed := make([]string, 0, len(c.Deployments))
	for _, d := range c.Deployments {
		if !slices.Contains(c.RestrictedDeployments, d) {
			allowed = append(allowed, d)
		}
	}
	return allowed
}

func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", e.Field())
	case "required_without":
		return fmt.Sprintf("%s is required when %s is not set", e.Field(), e.Param())
	case "max":
		return fmt.Sprintf("%s exceeds maximum length of %s (got %q)", e.Field(), e.Param(), e.Value())
	case "http_url":
		return fmt.Sprintf("%s must be an http(s) URL (got %q)", e.Field(), e.Value())
	case "startswith":
		return fmt.Sprintf("%s must start with %q (got %q)", e.Field(), e.Param(), e.Value())
	default:
		return fmt.Sprintf("%s failed validation %q", e.Field(), e.Tag())
	}
}
