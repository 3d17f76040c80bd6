//nolint:paralleltest // uses t.Setenv
package resolve

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"go.uber.org/fx"
	"go.uber.org/zap/zapcore"
)

func TestModule_ClientRegions(t *testing.T) {
	t.Setenv("BWSTUDIO_LOG_LEVEL", "debug")
	t.Setenv("BWSTUDIO_TRACE", "true")

	tests := []struct {
		name             string
		paramsRegion     string
		wantParamsRegion string
	}{
		{name: "same region", wantParamsRegion: "us-east-1"},
		{name: "other region", paramsRegion: "eu-west-1", wantParamsRegion: "eu-west-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r *Resolver
			var e Environment
			app := fx.New(
				fx.NopLogger,
				fx.Supply(aws.Config{Region: "ap-southeast-2"}),
				Module(Request{Region: "us-east-1", ParamsRegion: tt.paramsRegion}),
				fx.Populate(&r, &e),
			)
			if err := app.Err(); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if r.secrets.Region != "us-east-1" {
				t.Errorf("secrets region = %q, want us-east-1", r.secrets.Region)
			}
			if r.params.Region != tt.wantParamsRegion {
				t.Errorf("params region = %q, want %q", r.params.Region, tt.wantParamsRegion)
			}
			if !e.Trace {
				t.Error("Trace = false, want true")
			}
			if e.LogLevel != zapcore.DebugLevel {
				t.Errorf("LogLevel = %v, want debug", e.LogLevel)
			}
		})
	}
}
