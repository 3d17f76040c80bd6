package cdk

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awssecretsmanager"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkhosting"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkparams"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkutil"
)

// Deployment holds the resources of one deployment stack.
type Deployment struct {
	Studio bwcdkhosting.Studio
}

// NewDeployment creates the hosted studio of a deployment from the validated config.
func NewDeployment(stack awscdk.Stack, deploymentIdent string) *Deployment {
	cfg := bwcdkutil.ConfigFromScope(stack)

	var dbSecret awssecretsmanager.ISecret
	if cfg.DBSecretArn != "" {
		dbSecret = awssecretsmanager.Secret_FromSecretCompleteArn(stack, jsii.String("DbSecret"),
			jsii.String(cfg.DBSecretArn))
	} else {
		dbSecret = awssecretsmanager.Secret_FromSecretNameV2(stack, jsii.String("DbSecret"),
			jsii.String(cfg.DBSecretName))
	}

	var paramsRegion *string
	if cfg.ParamsRegion != cfg.Region {
		paramsRegion = jsii.String(cfg.ParamsRegion)
	}

	studio := bwcdkhosting.New(stack, "Studio", bwcdkhosting.Props{
		SupabaseURL:  cfg.SupabaseURLPtr(),
		DBSecret:     dbSecret,
		AnonKey:      bwcdkparams.Import(stack, "AnonKey", cfg.AnonKeyParam),
		ServiceKey:   bwcdkparams.Import(stack, "ServiceKey", cfg.ServiceKeyParam),
		ParamsRegion: paramsRegion,
		Source: bwcdkhosting.Source{
			Owner:           jsii.String(cfg.SourceOwner),
			Repository:      jsii.String(cfg.SourceRepository),
			TokenSecretName: optional(cfg.GitHubTokenSecret),
		},
		SourceBranch: optional(cfg.SourceBranch),
		AppRoot:      optional(cfg.AppRoot),
		AppName:      jsii.String(bwcdkutil.ResourceName(stack, "Studio")),
	})

	bwcdkparams.Store(stack, "ProdBranchURLParam", "hosting", "prod-branch-url", studio.ProdBranchURL())
	bwcdkutil.ExportValue(stack, "AppIdExport", "AppId", studio.App().AppId())

	awscdk.Tags_Of(stack).Add(jsii.String("bwstudio:deployment"), jsii.String(deploymentIdent), nil)

	return &Deployment{Studio: studio}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return jsii.String(s)
}
