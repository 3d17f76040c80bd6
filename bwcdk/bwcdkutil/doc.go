// Package bwcdkutil provides the app setup, configuration and naming shared by the
// CDK code of the studio hosting project.
//
// # Quick Start
//
// Use [SetupApp] to create one stack per deployment:
//
//	func main() {
//	    defer jsii.Close()
//	    app := awscdk.NewApp(nil)
//
//	    bwcdkutil.SetupApp(app, bwcdkutil.AppConfig{
//	        Prefix:                "bwstudio-",
//	        DeployersGroup:        "bwstudio-deployers",
//	        RestrictedDeployments: []string{"Prod"},
//	    }, func(stack awscdk.Stack, deploymentIdent string) {
//	        cdk.NewDeployment(stack, deploymentIdent)
//	    })
//
//	    app.Synth(nil)
//	}
//
// # CDK Context Configuration
//
// The package reads configuration from CDK context (cdk.json). With prefix "bwstudio-":
//
//	{
//	  "bwstudio-qualifier": "bwstudio",
//	  "bwstudio-region": "eu-central-1",
//	  "bwstudio-deployments": ["Dev", "Prod"],
//	  "bwstudio-supabase-url": "https://supabase.example.com",
//	  "bwstudio-db-secret-name": "supabase/db",
//	  "bwstudio-anon-key-param": "/supabase/anon-key",
//	  "bwstudio-service-key-param": "/supabase/service-role-key",
//	  "bwstudio-source-owner": "apipinic",
//	  "bwstudio-source-repository": "supabase"
//	}
//
// Optional keys: "db-secret-arn" (preferred over "db-secret-name"), "params-region"
// (defaults to "region"), "source-branch", "app-root", "github-token-secret" and
// "deployer-groups".
//
// # Features
//
//   - [SetupApp]: per-deployment app orchestration
//   - [NewStackFromConfig]: stack creation with qualifier and region naming
//   - [ResourceName]: qualified kebab-case resource names
//   - [Config.AllowedDeployments]: group-based deployment authorization
//   - [ExportValue]: stack exports under a predictable name
package bwcdkutil
