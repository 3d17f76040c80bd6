//nolint:paralleltest // jsii runtime doesn't support parallel tests
package bwcdkutil_test

import (
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkutil"
)

func TestResourceName(t *testing.T) {
	defer jsii.Close()

	tests := []struct {
		name       string
		deployment string
		label      string
		want       string
	}{
		{name: "deployment stack", deployment: "Stag", label: "Studio", want: "testqual-stag-studio"},
		{name: "camel label", deployment: "Prod", label: "SsrLogs", want: "testqual-prod-ssr-logs"},
		{name: "snake label", deployment: "Prod", label: "ssr_logs", want: "testqual-prod-ssr-logs"},
		{name: "outside deployment", label: "BuildCache", want: "testqual-build-cache"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := awscdk.NewApp(nil)
			bwcdkutil.StoreConfig(app, &bwcdkutil.Config{
				Qualifier:   "testqual",
				Region:      "us-east-1",
				Deployments: []string{"Stag", "Prod"},
			})

			stack := awscdk.NewStack(app, jsii.String("TestStack"), &awscdk.StackProps{
				Env: &awscdk.Environment{Region: jsii.String("us-east-1")},
			})
			if tt.deployment != "" {
				bwcdkutil.StoreDeploymentIdent(stack, tt.deployment)
			}

			if got := bwcdkutil.ResourceName(stack, tt.label); got != tt.want {
				t.Errorf("ResourceName() = %q, want %q", got, tt.want)
			}
		})
	}
}
