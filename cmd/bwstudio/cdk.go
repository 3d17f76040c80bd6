package main

import (
	"context"
	"fmt"
	"os"

	"github.com/basewarphq/bwstudio/bwcdk/bwcdkhosting"
	"github.com/basewarphq/bwstudio/cmd/internal/bincheck"
	"github.com/basewarphq/bwstudio/cmd/internal/cdkctx"
	"github.com/basewarphq/bwstudio/cmd/internal/cfnread"
	"github.com/basewarphq/bwstudio/cmd/internal/cmdexec"
	"github.com/basewarphq/bwstudio/cmd/internal/deployer"
	"github.com/basewarphq/bwstudio/cmd/internal/projcfg"
	"github.com/cockroachdb/errors"
)

type SynthCmd struct{}

func (c *SynthCmd) Run(app *App, cfg *projcfg.Config) error {
	ctx := context.Background()
	args, err := cdkArgs(ctx, app, cfg, "synth", "--quiet")
	if err != nil {
		return err
	}
	return cmdexec.Run(ctx, cfg.CdkDir(), "cdk", args...)
}

type DiffCmd struct {
	Deployment string `arg:"" required:"" help:"Deployment name (e.g., Dev, Prod)."`
}

func (c *DiffCmd) Run(app *App, cfg *projcfg.Config) error {
	ctx := context.Background()
	stack, err := stackName(cfg, c.Deployment)
	if err != nil {
		return err
	}
	args, err := cdkArgs(ctx, app, cfg, "diff", stack)
	if err != nil {
		return err
	}
	return cmdexec.Run(ctx, cfg.CdkDir(), "cdk", args...)
}

type DeployCmd struct {
	Deployment string `arg:"" required:"" help:"Deployment name (e.g., Dev, Prod)."`
}

func (c *DeployCmd) Run(app *App, cfg *projcfg.Config) error {
	ctx := context.Background()
	stack, err := stackName(cfg, c.Deployment)
	if err != nil {
		return err
	}
	args, err := cdkArgs(ctx, app, cfg, "deploy", "--require-approval", "never", stack)
	if err != nil {
		return err
	}
	return cmdexec.Run(ctx, cfg.CdkDir(), "cdk", args...)
}

type URLCmd struct {
	Deployment string `arg:"" required:"" help:"Deployment name (e.g., Dev, Prod)."`
}

func (c *URLCmd) Run(cfg *projcfg.Config) error {
	if err := bincheck.Require("aws"); err != nil {
		return err
	}

	cctx, err := loadDeployment(cfg, c.Deployment)
	if err != nil {
		return err
	}

	url, err := cfnread.StackOutput(context.Background(), cctx.Region,
		cctx.StackName(c.Deployment), bwcdkhosting.ProdBranchURLOutputKey)
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, url)
	return nil
}

// cdkArgs prefixes args with the deployer groups of the caller, so the app keeps
// restricted deployments out of reach of everyone else.
func cdkArgs(ctx context.Context, app *App, cfg *projcfg.Config, args ...string) ([]string, error) {
	if err := bincheck.Require("cdk", "aws"); err != nil {
		return nil, err
	}

	groups, err := deployer.Groups(ctx, app.Profile)
	if err != nil {
		return nil, err
	}

	out := []string{args[0], "--context", deployer.ContextArg(cfg.ContextPrefix(), groups)}
	if app.Profile != "" {
		out = append(out, "--profile", app.Profile)
	}
	return append(out, args[1:]...), nil
}

func loadDeployment(cfg *projcfg.Config, deployment string) (*cdkctx.CDKContext, error) {
	cctx, err := cdkctx.Load(cfg.CdkDir(), cfg.ContextPrefix())
	if err != nil {
		return nil, err
	}
	if !cctx.IsValidDeployment(deployment) {
		return nil, errors.Newf("unknown deployment %q, expected one of %v", deployment, cctx.Deployments)
	}
	return cctx, nil
}

func stackName(cfg *projcfg.Config, deployment string) (string, error) {
	cctx, err := loadDeployment(cfg, deployment)
	if err != nil {
		return "", err
	}
	return cctx.StackName(deployment), nil
}
