//nolint:paralleltest // jsii runtime doesn't support parallel tests
package bwcdkutil_test

import (
	"maps"
	"strings"
	"testing"

	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkutil"
)

func validContext() map[string]any {
	return map[string]any{
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
}

func contextWith(set map[string]any, unset ...string) map[string]any {
	ctx := validContext()
	maps.Copy(ctx, set)
	for _, key := range unset {
		delete(ctx, key)
	}
	return ctx
}

func TestNewConfig(t *testing.T) {
	defer jsii.Close()

	tests := []struct {
		name        string
		context     map[string]any
		wantErr     bool
		errContains []string
	}{
		{
			name:    "valid config",
			context: validContext(),
		},
		{
			name: "valid config with secret arn instead of name",
			context: contextWith(map[string]any{
				"myapp-db-secret-arn": "arn:aws:secretsmanager:us-east-1:123456789012:secret:supabase/db-AbCdEf",
			}, "myapp-db-secret-name"),
		},
		{
			name:        "missing qualifier",
			context:     contextWith(nil, "myapp-qualifier"),
			wantErr:     true,
			errContains: []string{"myapp-qualifier", "is not set"},
		},
		{
			name:        "qualifier too long",
			context:     contextWith(map[string]any{"myapp-qualifier": "thisqualifieristoolong"}),
			wantErr:     true,
			errContains: []string{"Qualifier", "exceeds maximum length"},
		},
		{
			name:        "unknown region",
			context:     contextWith(map[string]any{"myapp-region": "unknown-region-1"}),
			wantErr:     true,
			errContains: []string{"unknown region"},
		},
		{
			name:        "lower-case deployment",
			context:     contextWith(map[string]any{"myapp-deployments": []any{"dev"}}),
			wantErr:     true,
			errContains: []string{"upper-case"},
		},
		{
			name:        "invalid supabase url",
			context:     contextWith(map[string]any{"myapp-supabase-url": "supabase.example.com"}),
			wantErr:     true,
			errContains: []string{"SupabaseURL", "http(s) URL"},
		},
		{
			name:        "relative parameter name",
			context:     contextWith(map[string]any{"myapp-anon-key-param": "supabase/anon-key"}),
			wantErr:     true,
			errContains: []string{"AnonKeyParam", "must start with"},
		},
		{
			name:        "no secret name nor arn",
			context:     contextWith(nil, "myapp-db-secret-name"),
			wantErr:     true,
			errContains: []string{"DBSecretName", "DBSecretArn"},
		},
		{
			name:        "multiple errors",
			context:     map[string]any{},
			wantErr:     true,
			errContains: []string{"myapp-qualifier", "myapp-region", "myapp-deployments", "myapp-source-owner"},
		},
		{
			name:        "wrong type for qualifier",
			context:     contextWith(map[string]any{"myapp-qualifier": 123}),
			wantErr:     true,
			errContains: []string{"myapp-qualifier", "must be a string"},
		},
		{
			name:        "wrong type for deployments",
			context:     contextWith(map[string]any{"myapp-deployments": "Dev"}),
			wantErr:     true,
			errContains: []string{"myapp-deployments", "must be an array"},
		},
		{
			name:        "wrong type for optional key",
			context:     contextWith(map[string]any{"myapp-app-root": true}),
			wantErr:     true,
			errContains: []string{"myapp-app-root", "must be a string"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := awscdk.NewApp(&awscdk.AppProps{
				Context: &tt.context,
			})

			cfg, err := bwcdkutil.NewConfig(app, bwcdkutil.AppConfig{Prefix: "myapp-"})

			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got nil")
				}
				for _, contains := range tt.errContains {
					if !strings.Contains(err.Error(), contains) {
						t.Errorf("error %q should contain %q", err.Error(), contains)
					}
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.Qualifier != tt.context["myapp-qualifier"] {
				t.Errorf("Qualifier = %q, want %q", cfg.Qualifier, tt.context["myapp-qualifier"])
			}
			if cfg.Region != tt.context["myapp-region"] {
				t.Errorf("Region = %q, want %q", cfg.Region, tt.context["myapp-region"])
			}
		})
	}
}

func TestNewConfig_ParamsRegionDefaultsToRegion(t *testing.T) {
	defer jsii.Close()

	ctx := validContext()
	app := awscdk.NewApp(&awscdk.AppProps{Context: &ctx})

	cfg, err := bwcdkutil.NewConfig(app, bwcdkutil.AppConfig{Prefix: "myapp-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ParamsRegion != "us-east-1" {
		t.Errorf("ParamsRegion = %q, want us-east-1", cfg.ParamsRegion)
	}
	if cfg.SourceBranch != "" || cfg.AppRoot != "" {
		t.Errorf("optional keys should stay empty, got branch %q app root %q", cfg.SourceBranch, cfg.AppRoot)
	}

	ctx = contextWith(map[string]any{"myapp-params-region": "eu-west-1"})
	app = awscdk.NewApp(&awscdk.AppProps{Context: &ctx})
	cfg, err = bwcdkutil.NewConfig(app, bwcdkutil.AppConfig{Prefix: "myapp-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ParamsRegion != "eu-west-1" {
		t.Errorf("ParamsRegion = %q, want eu-west-1", cfg.ParamsRegion)
	}
}

func TestConfig_RegionIdent(t *testing.T) {
	defer jsii.Close()

	ctx := contextWith(map[string]any{"myapp-region": "eu-central-1"})
	app := awscdk.NewApp(&awscdk.AppProps{Context: &ctx})

	cfg, err := bwcdkutil.NewConfig(app, bwcdkutil.AppConfig{Prefix: "myapp-"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ident := cfg.RegionIdent(); ident != "Euc1" {
		t.Errorf("RegionIdent() = %q, want %q", ident, "Euc1")
	}
}

func TestConfig_AllowedDeployments(t *testing.T) {
	defer jsii.Close()

	tests := []struct {
		name   string
		groups string
		want   []string
	}{
		{name: "no groups", want: []string{"Dev"}},
		{name: "other group", groups: "devs", want: []string{"Dev"}},
		{name: "deployers group", groups: "devs myapp-deployers", want: []string{"Dev", "Prod"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := validContext()
			if tt.groups != "" {
				ctx["myapp-deployer-groups"] = tt.groups
			}
			app := awscdk.NewApp(&awscdk.AppProps{Context: &ctx})

			cfg, err := bwcdkutil.NewConfig(app, bwcdkutil.AppConfig{
				Prefix:                "myapp-",
				DeployersGroup:        "myapp-deployers",
				RestrictedDeployments: []string{"Prod"},
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			got := cfg.AllowedDeployments()
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("AllowedDeployments() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigFromScope_PanicsWithoutConfig(t *testing.T) {
	defer jsii.Close()

	defer func() {
		if r := recover(); r == nil {
			t.Error("expected panic when config is not stored")
		}
	}()

	app := awscdk.NewApp(nil)
	bwcdkutil.ConfigFromScope(app)
}
