package bwcdkutil_test

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkutil"
)

// NewDeployment creates deployment-specific infrastructure.
func NewDeployment(stack awscdk.Stack, deploymentIdent string) {
	// Config is available deep in the construct tree without passing it explicitly.
	cfg := bwcdkutil.ConfigFromScope(stack)
	fmt.Println(deploymentIdent, cfg.SupabaseURL, bwcdkutil.ResourceName(stack, "Studio"))
}

// Example_setupApp demonstrates how to use SetupApp to configure a CDK application
// with one stack per deployment.
//
// The cdk.json context should include:
//
//	{
//	  "myapp-qualifier": "myapp",
//	  "myapp-region": "eu-central-1",
//	  "myapp-deployments": ["Dev", "Prod"],
//	  "myapp-supabase-url": "https://supabase.example.com",
//	  "myapp-db-secret-name": "supabase/db",
//	  "myapp-anon-key-param": "/supabase/anon-key",
//	  "myapp-service-key-param": "/supabase/service-role-key",
//	  "myapp-source-owner": "apipinic",
//	  "myapp-source-repository": "supabase"
//	}
func Example_setupApp() {
	defer jsii.Close()

	ctx := map[string]any{
		"myapp-qualifier":         "myapp",
		"myapp-region":            "eu-central-1",
		"myapp-deployments":       []any{"Dev", "Prod"},
		"myapp-supabase-url":      "https://supabase.example.com",
		"myapp-db-secret-name":    "supabase/db",
		"myapp-anon-key-param":    "/supabase/anon-key",
		"myapp-service-key-param": "/supabase/service-role-key",
		"myapp-source-owner":      "apipinic",
		"myapp-source-repository": "supabase",
	}

	app := awscdk.NewApp(&awscdk.AppProps{
		Context: &ctx,
	})

	bwcdkutil.SetupApp(app, bwcdkutil.AppConfig{
		Prefix: "myapp-",
	}, NewDeployment)
	// Output:
	// Dev https://supabase.example.com myapp-dev-studio
	// Prod https://supabase.example.com myapp-prod-studio
}
