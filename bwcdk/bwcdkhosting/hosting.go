// Package bwcdkhosting synthesizes the managed hosting app that builds and serves
// the studio with server-side rendering.
//
// The app is connected to a GitHub repository, builds with the specification from
// bwcdkbuildspec, runs under the role from bwcdkaccess and publishes exactly one
// production branch.
package bwcdkhosting

import (
	"maps"
	"slices"
	"strings"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsiam"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsssm"
	"github.com/aws/aws-cdk-go/awscdkamplifyalpha/v2"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkaccess"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkbuildspec"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkloggroup"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkref"
	"github.com/cockroachdb/errors"
)

const (
	DefaultSourceBranch    = "main"
	DefaultAppRoot         = "apps/studio"
	DefaultTokenSecretName = "supabase2/github-token"

	// PlatformDomain is the domain every hosted app gets a subdomain of.
	PlatformDomain = "amplifyapp.com"
	// ProdStage is the stage of the production branch.
	ProdStage = "PRODUCTION"
	// ProdBranchURLOutputKey is the stack output holding the production URL.
	ProdBranchURLOutputKey = "ProdBranchURL"
)

// Studio provides access to the synthesized hosting resources.
type Studio interface {
	// App returns the hosting app, a collection of branches.
	App() awscdkamplifyalpha.App
	// ProdBranch returns the production branch.
	ProdBranch() awscdkamplifyalpha.Branch
	// ProdBranchURL returns the URL the production branch is served at.
	ProdBranchURL() *string
	// Role returns the service role the app runs under.
	Role() awsiam.Role
	// BuildSpec returns the build specification the app builds with.
	BuildSpec() *bwcdkbuildspec.Spec
	// LogGroup returns the log group SSR logs are written to.
	LogGroup() bwcdkloggroup.LogGroup
}

// Source identifies the GitHub repository the app builds from.
type Source struct {
	// Owner is the user or organization owning the repository.
	// Required.
	Owner *string
	// Repository is the repository name.
	// Required.
	Repository *string
	// TokenSecretName is the Secrets Manager secret holding the OAuth token.
	// Optional, defaults to DefaultTokenSecretName.
	TokenSecretName *string
}

// Props configures the Studio construct.
type Props struct {
	// SupabaseURL is the base URL of the backing service.
	// Required.
	SupabaseURL *string
	// DBSecret holds the database credentials as a JSON document with a "password" field.
	// Required.
	DBSecret awssecretsmanager.ISecret
	// AnonKey is the public API key parameter.
	// Required.
	AnonKey awsssm.IStringParameter
	// ServiceKey is the service role API key parameter.
	// Required.
	ServiceKey awsssm.IStringParameter
	// ParamsRegion is the region both key parameters live in.
	// Optional, defaults to the region the parameters were imported in.
	ParamsRegion *string
	// Source is the repository the app builds from.
	// Required.
	Source Source
	// SourceBranch is the branch that is published as production.
	// Optional, defaults to DefaultSourceBranch.
	SourceBranch *string
	// AppRoot is the monorepo-relative application root.
	// Optional, defaults to DefaultAppRoot.
	AppRoot *string
	// AppName overrides the app name derived from the construct path.
	// Optional.
	AppName *string
	// AppOverrides are applied to the app resource after the built-in ones. An
	// override for a built-in path replaces it.
	// Optional.
	AppOverrides Overrides
	// BranchOverrides are applied to the production branch resource after the
	// built-in ones.
	// Optional.
	BranchOverrides Overrides
}

type studio struct {
	app       awscdkamplifyalpha.App
	branch    awscdkamplifyalpha.Branch
	url       *string
	access    bwcdkaccess.Access
	buildSpec *bwcdkbuildspec.Spec
	logGroup  bwcdkloggroup.LogGroup
}

// New creates the hosting app, its production branch and the role it runs under.
//
// The following resources are created:
//   - A service role with read access to the referenced secret and parameters
//   - The app, with the build specification, environment and rewrite rule
//   - The production branch with auto-build enabled
//   - A logging policy and log group scoped to the app
//
// A CfnOutput "ProdBranchURL" holds the production URL, so a stack holds at most
// one Studio.
//
// Panics if a reference cannot be resolved or the props are invalid.
func New(scope constructs.Construct, id string, props Props) Studio {
	scope = constructs.NewConstruct(scope, jsii.String(id))
	con := &studio{}

	sourceBranch := stringOr(props.SourceBranch, DefaultSourceBranch)
	appRoot := stringOr(props.AppRoot, DefaultAppRoot)

	secret, err := bwcdkref.FromSecret(props.DBSecret)
	if err != nil {
		panic(errors.Wrap(err, "bwcdkhosting: db secret"))
	}
	anonKey, err := parameterRef(scope, props.AnonKey, props.ParamsRegion)
	if err != nil {
		panic(errors.Wrap(err, "bwcdkhosting: anon key"))
	}
	serviceKey, err := parameterRef(scope, props.ServiceKey, props.ParamsRegion)
	if err != nil {
		panic(errors.Wrap(err, "bwcdkhosting: service key"))
	}
	if props.SupabaseURL == nil {
		panic("bwcdkhosting: SupabaseURL is required")
	}

	env, err := EnvironmentVariables(Inputs{
		AppRoot:     appRoot,
		SupabaseURL: *props.SupabaseURL,
		DBSecret:    secret,
		AnonKey:     anonKey,
		ServiceKey:  serviceKey,
	})
	if err != nil {
		panic(errors.Wrap(err, "bwcdkhosting: environment"))
	}

	con.buildSpec, err = bwcdkbuildspec.New(bwcdkbuildspec.Props{
		AppRoot:       appRoot,
		RuntimeValues: bwcdkbuildspec.DefaultRuntimeValues(),
	})
	if err != nil {
		panic(errors.Wrap(err, "bwcdkhosting: build spec"))
	}
	if missing := missingVariables(env, con.buildSpec.LocatorVariables()); len(missing) > 0 {
		panic(errors.Newf("bwcdkhosting: build environment lacks %s", strings.Join(missing, ", ")))
	}
	buildSpecYAML, err := con.buildSpec.YAML()
	if err != nil {
		panic(errors.Wrap(err, "bwcdkhosting: rendering build spec"))
	}

	con.access = bwcdkaccess.NewRole(scope, bwcdkaccess.Props{
		Secret:     secret,
		Parameters: []bwcdkref.Parameter{anonKey, serviceKey},
	})

	appName := props.AppName
	if appName == nil {
		appName = jsii.String(strings.ReplaceAll(*scope.Node().Path(), "/", ""))
	}

	con.app = awscdkamplifyalpha.NewApp(scope, jsii.String("App"), &awscdkamplifyalpha.AppProps{
		AppName:            appName,
		Role:               con.access.Role(),
		SourceCodeProvider: newSourceCodeProvider(scope, props.Source),
		CustomRules: &[]awscdkamplifyalpha.CustomRule{
			awscdkamplifyalpha.NewCustomRule(&awscdkamplifyalpha.CustomRuleOptions{
				Source: jsii.String("/<*>"),
				Target: jsii.String("/index.html"),
				Status: awscdkamplifyalpha.RedirectStatus_NOT_FOUND_REWRITE,
			}),
		},
	})

	// Added one by one in name order so the rendered list is stable.
	for _, name := range slices.Sorted(maps.Keys(env)) {
		con.app.AddEnvironment(jsii.String(name), jsii.String(env[name]))
	}

	applyOverrides(con.app.Node().DefaultChild(), Overrides{
		{Path: "Platform", Value: "WEB_COMPUTE"},
		{Path: "BuildSpec", Value: string(buildSpecYAML)},
	}, props.AppOverrides)

	con.branch = con.app.AddBranch(jsii.String("ProdBranch"), &awscdkamplifyalpha.BranchOptions{
		BranchName: jsii.String(sourceBranch),
		Stage:      jsii.String(ProdStage),
		AutoBuild:  jsii.Bool(true),
	})
	con.branch.AddEnvironment(jsii.String("NEXT_PUBLIC_SITE_URL"),
		jsii.String(SiteURL(sourceBranch, *con.app.AppId(), PlatformDomain)))

	applyOverrides(con.branch.Node().DefaultChild(), Overrides{
		{Path: "Framework", Value: "Next.js - SSR"},
	}, props.BranchOverrides)

	con.access.AttachLogging(con.app.AppId())
	con.logGroup = bwcdkloggroup.New(scope, "Ssr", bwcdkloggroup.Props{
		Purpose:      jsii.String("server-side rendering of " + *appName),
		LogGroupName: jsii.String(bwcdkaccess.LogGroupPrefix + *con.app.AppId()),
	})

	con.url = jsii.String(BranchURL(*con.branch.BranchName(), *con.app.DefaultDomain()))
	awscdk.NewCfnOutput(scope, jsii.String("ProdBranchURLOutput"), &awscdk.CfnOutputProps{
		Key:         jsii.String(ProdBranchURLOutputKey),
		Description: jsii.String("URL of the production branch"),
		Value:       con.url,
	})

	return con
}

func parameterRef(
	scope constructs.Construct, param awsssm.IStringParameter, region *string,
) (bwcdkref.Parameter, error) {
	if region == nil || *region == "" || param == nil {
		return bwcdkref.FromStringParameter(param)
	}
	return bwcdkref.ParameterInRegion(scope, *param.ParameterName(), *region)
}

func newSourceCodeProvider(scope constructs.Construct, src Source) awscdkamplifyalpha.ISourceCodeProvider {
	if src.Owner == nil || src.Repository == nil {
		panic("bwcdkhosting: Source.Owner and Source.Repository are required")
	}

	token := awssecretsmanager.Secret_FromSecretNameV2(scope, jsii.String("GitHubToken"),
		jsii.String(stringOr(src.TokenSecretName, DefaultTokenSecretName)))

	return awscdkamplifyalpha.NewGitHubSourceCodeProvider(&awscdkamplifyalpha.GitHubSourceCodeProviderProps{
		Owner:      src.Owner,
		Repository: src.Repository,
		OauthToken: token.SecretValue(),
	})
}

// applyOverrides applies the built-in overrides, minus those replaced by user,
// followed by user.
func applyOverrides(child constructs.IConstruct, builtin, user Overrides) {
	res, ok := child.(awscdk.CfnResource)
	if !ok {
		panic("bwcdkhosting: default child is not a CfnResource")
	}
	if err := user.Validate(); err != nil {
		panic(errors.Wrap(err, "bwcdkhosting: user overrides"))
	}

	all := make(Overrides, 0, len(builtin)+len(user))
	for _, ov := range builtin {
		if !user.has(ov.Path) {
			all = append(all, ov)
		}
	}
	all = append(all, user...)
	all.Apply(res)
}

func (s *studio) App() awscdkamplifyalpha.App {
	return s.app
}

func (s *studio) ProdBranch() awscdkamplifyalpha.Branch {
	return s.branch
}

func (s *studio) ProdBranchURL() *string {
	return s.url
}

func (s *studio) Role() awsiam.Role {
	return s.access.Role()
}

func (s *studio) BuildSpec() *bwcdkbuildspec.Spec {
	return s.buildSpec
}

func (s *studio) LogGroup() bwcdkloggroup.LogGroup {
	return s.logGroup
}

func stringOr(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}
