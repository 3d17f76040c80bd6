package main

import (
	"fmt"
	"os"

	"github.com/basewarphq/bwstudio/cmd/internal/cfnvalidate"
)

type TemplateCmd struct {
	File string `arg:"" type:"existingfile" help:"Template file, as written to cdk.out."`
}

func (c *TemplateCmd) Run() error {
	if err := cfnvalidate.StudioTemplate(c.File); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "%s: ok\n", c.File)
	return nil
}
