package bwcdkparams_test

import (
	"fmt"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkparams"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkutil"
)

func exampleApp() awscdk.App {
	ctx := map[string]any{
		"myapp-qualifier":         "myapp",
		"myapp-region":            "us-east-1",
		"myapp-deployments":       []any{"Dev", "Prod"},
		"myapp-supabase-url":      "https://supabase.example.com",
		"myapp-db-secret-name":    "supabase/db",
		"myapp-anon-key-param":    "/supabase/anon-key",
		"myapp-service-key-param": "/supabase/service-role-key",
		"myapp-source-owner":      "apipinic",
		"myapp-source-repository": "supabase",
	}

	app := awscdk.NewApp(&awscdk.AppProps{Context: &ctx})
	cfg, err := bwcdkutil.NewConfig(app, bwcdkutil.AppConfig{
		Prefix: "myapp-",
	})
	if err != nil {
		panic(err)
	}
	bwcdkutil.StoreConfig(app, cfg)
	return app
}

// Example_deploymentNamespace demonstrates publishing a value of a deployment.
// The namespace "hosting" groups all hosting-related values together.
func Example_deploymentNamespace() {
	defer jsii.Close()

	app := exampleApp()
	stack := bwcdkutil.NewStackFromConfig(app, bwcdkutil.ConfigFromScope(app), "Prod")

	param := bwcdkparams.Store(stack, "ProdBranchURLParam", "hosting", "prod-branch-url",
		jsii.String("https://main.d1a2b3c4.amplifyapp.com"))
	_ = param

	fmt.Println(*bwcdkparams.ParameterName(stack, "hosting", "prod-branch-url"))
	// Output: /myapp/prod/hosting/prod-branch-url
}

// Example_importExternal demonstrates importing parameters owned by another stack
// or team. Only the name is referenced.
func Example_importExternal() {
	defer jsii.Close()

	app := exampleApp()
	stack := awscdk.NewStack(app, jsii.String("ImportStack"), &awscdk.StackProps{
		Env: &awscdk.Environment{Region: jsii.String("us-east-1")},
	})

	anonKey := bwcdkparams.Import(stack, "AnonKey", "/supabase/anon-key")

	fmt.Println(*anonKey.ParameterName())
	fmt.Println(*bwcdkparams.ParameterName(stack, "hosting", "prod-branch-url"))
	// Output:
	// /supabase/anon-key
	// /myapp/hosting/prod-branch-url
}
