package main

import (
	"context"
	"fmt"
	"os"

	"github.com/basewarphq/bwstudio/cmd/internal/cdkctx"
	"github.com/basewarphq/bwstudio/cmd/internal/projcfg"
	"github.com/basewarphq/bwstudio/cmd/internal/resolve"
)

type ResolveCmd struct{}

// Run prints the resolved locators as CDK context entries, ready to be pinned in
// cdk.json.
func (c *ResolveCmd) Run(app *App, cfg *projcfg.Config) error {
	cctx, err := cdkctx.Load(cfg.CdkDir(), cfg.ContextPrefix())
	if err != nil {
		return err
	}

	res, err := resolve.Run(context.Background(), resolve.Request{
		Region:       cctx.Region,
		ParamsRegion: cctx.ParamsRegion,
		SecretID:     cctx.DBSecretID(),
		AnonKey:      cctx.AnonKeyParam,
		ServiceKey:   cctx.ServiceKeyParam,
		Profile:      resolve.Profile(app.Profile),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "%q: %q,\n", cctx.Prefix+"db-secret-arn", res.DBSecret.Locator)
	fmt.Fprintf(os.Stdout, "# anon key:    %s\n", res.AnonKey.Locator)
	fmt.Fprintf(os.Stdout, "# service key: %s\n", res.ServiceKey.Locator)
	return nil
}
