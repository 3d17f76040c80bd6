package main

import (
	"os"

	"github.com/basewarphq/bwstudio/bwcdk/bwcdkbuildspec"
	"github.com/basewarphq/bwstudio/bwcdk/bwcdkhosting"
	"github.com/basewarphq/bwstudio/cmd/internal/projcfg"
)

type BuildSpecCmd struct {
	AppRoot string `help:"Monorepo-relative application root. Defaults to studio.app_root or apps/studio."`
	EnvFile string `help:"File the runtime values are appended to. Defaults to studio.env_file or .env.production."`
}

func (c *BuildSpecCmd) Run(cfg *projcfg.Config) error {
	spec, err := bwcdkbuildspec.New(bwcdkbuildspec.Props{
		AppRoot:       firstNonEmpty(c.AppRoot, cfg.Studio.AppRoot, bwcdkhosting.DefaultAppRoot),
		EnvFile:       firstNonEmpty(c.EnvFile, cfg.Studio.EnvFile),
		RuntimeValues: bwcdkbuildspec.DefaultRuntimeValues(),
	})
	if err != nil {
		return err
	}

	out, err := spec.YAML()
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
