package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/basewarphq/bwstudio/cmd/internal/projcfg"
)

type App struct {
	Profile string `help:"AWS profile to use for AWS CLI and SDK calls." env:"AWS_PROFILE"`

	Resolve ResolveCmd `cmd:"" help:"Resolve the database secret and key parameters to their ARNs."`
	Render  struct {
		BuildSpec BuildSpecCmd `cmd:"" name:"buildspec" help:"Print the build specification YAML."`
	} `cmd:"" help:"Render commands."`
	Check struct {
		Template TemplateCmd `cmd:"" help:"Validate a synthesized studio template."`
	} `cmd:"" help:"Check commands."`
	Cdk struct {
		Synth  SynthCmd  `cmd:"" help:"Synthesize the CDK stacks."`
		Diff   DiffCmd   `cmd:"" help:"Show CDK diff for a deployment."`
		Deploy DeployCmd `cmd:"" help:"Deploy the CDK stack of a deployment."`
		URL    URLCmd    `cmd:"" name:"url" help:"Show the production URL of a deployment."`
	} `cmd:"" help:"CDK commands."`
}

func main() {
	cfg, err := projcfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	var app App
	ctx := kong.Parse(&app,
		kong.Name("bwstudio"),
		kong.Description("Studio hosting CLI."),
		kong.Bind(cfg),
	)
	if err := ctx.Run(&app); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
