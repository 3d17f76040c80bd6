package main

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/jsii-runtime-go"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkutil"
	"github.com/basewarphq/bwstudio/infra/cdk"
	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const projectPrefix = "bwstudio"

type environment struct {
	LogLevel zapcore.Level `env:"BWSTUDIO_LOG_LEVEL" envDefault:"info"`
}

func main() {
	defer jsii.Close()

	e, err := env.ParseAs[environment]()
	if err != nil {
		panic(err)
	}

	// stdout carries the cloud assembly protocol, the development logger writes to stderr.
	logCfg := zap.NewDevelopmentConfig()
	logCfg.Level = zap.NewAtomicLevelAt(e.LogLevel)
	logs, err := logCfg.Build()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logs.Sync() }()

	app := awscdk.NewApp(nil)

	stacks := bwcdkutil.SetupApp(app, bwcdkutil.AppConfig{
		Prefix:                projectPrefix + "-",
		DeployersGroup:        projectPrefix + "-deployers",
		RestrictedDeployments: []string{"Prod"},
	}, func(stack awscdk.Stack, deploymentIdent string) {
		dep := cdk.NewDeployment(stack, deploymentIdent)
		logs.Info("declared deployment stack",
			zap.String("stack", *stack.StackName()),
			zap.String("deployment", deploymentIdent),
			zap.String("prodBranchUrl", *dep.Studio.ProdBranchURL()))
	})
	if len(stacks) == 0 {
		logs.Warn("no deployment is allowed for the current deployer")
	}

	app.Synth(nil)
}
