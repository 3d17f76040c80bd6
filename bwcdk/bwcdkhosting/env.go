package bwcdkhosting

import (
	"strings"

	"github.com/basewarphq/bwstudio/bwcdk/bwcdkbuildspec"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkref"
	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
)

const (
	// BuildImage is the container image the build runs in.
	BuildImage = "public.ecr.aws/sam/build-nodejs18.x:latest"
	// NodeOptions raises the heap limit for the monorepo build.
	NodeOptions = "--max-old-space-size=4096"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Inputs are the values the app's build environment is derived from.
type Inputs struct {
	// AppRoot is the monorepo-relative application root.
	AppRoot string `validate:"required"`
	// SupabaseURL is the base URL of the backing service.
	SupabaseURL string `validate:"required"`
	// DBSecret holds the database credentials.
	DBSecret bwcdkref.Secret
	// AnonKey is the public API key parameter.
	AnonKey bwcdkref.Parameter
	// ServiceKey is the service role API key parameter. Its region is the region the
	// build reads both keys from.
	ServiceKey bwcdkref.Parameter
}

func (in Inputs) validate() error {
	if err := validate.Struct(in); err != nil {
		return errors.Wrap(err, "invalid hosting inputs")
	}
	if !bwcdkref.IsToken(in.SupabaseURL) {
		if err := validate.Var(in.SupabaseURL, "http_url"); err != nil {
			return errors.Wrapf(err, "invalid supabase url %q", in.SupabaseURL)
		}
	}
	if err := in.DBSecret.Validate(); err != nil {
		return errors.Wrap(err, "db secret")
	}
	if err := in.AnonKey.Validate(); err != nil {
		return errors.Wrap(err, "anon key")
	}
	if err := in.ServiceKey.Validate(); err != nil {
		return errors.Wrap(err, "service key")
	}
	return nil
}

// EnvironmentVariables derives the app-level build environment. Secrets are passed
// by locator only.
func EnvironmentVariables(in Inputs) (map[string]string, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}

	base := strings.TrimSuffix(in.SupabaseURL, "/")
	return map[string]string{
		"NODE_OPTIONS":              NodeOptions,
		"AMPLIFY_MONOREPO_APP_ROOT": in.AppRoot,
		"AMPLIFY_DIFF_DEPLOY":       "false",
		"_CUSTOM_IMAGE":             BuildImage,

		"STUDIO_PG_META_URL":  base + "/pg",
		"SUPABASE_URL":        base,
		"SUPABASE_PUBLIC_URL": base,

		bwcdkbuildspec.ParamsRegionVar:   in.ServiceKey.Region,
		bwcdkbuildspec.DBSecretVar:       in.DBSecret.Locator,
		bwcdkbuildspec.AnonKeyNameVar:    in.AnonKey.Name,
		bwcdkbuildspec.ServiceKeyNameVar: in.ServiceKey.Name,
	}, nil
}

// missingVariables returns the names in want that env does not define.
func missingVariables(env map[string]string, want []string) []string {
	var missing []string
	for _, name := range want {
		if _, ok := env[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
