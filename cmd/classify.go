package cmd

import (
	"context"
	"fmt"

	"github.com/crumbsapp/crumbs/cmd/common"
	crumbs "github.com/crumbsapp/crumbs/common"
	"github.com/pterm/pterm"
	"github.com/urfave/cli"
)

func classify(ctx *cli.Context) error {
	if ctx.NArg() < 1 || ctx.NArg() > 2 {
		return common.ArgsError(ctx, "expected DOMAIN [COOKIE], got %d arguments", ctx.NArg())
	}
	p := crumbs.ClassifyParams{Domain: ctx.Args().First(), Name: ctx.Args().Get(1)}
	return withEnv(ctx, "classify", func(bg context.Context, env *common.Env) error {
		resp, err := env.Api.Classify(bg, p)
		if err != nil {
			return common.RuntimeErr(ctx, "classify", "classify", err)
		}
		if ctx.Bool("json") {
			return printJSON(resp)
		}
		subject := resp.Domain
		if resp.Name != "" {
			subject = resp.Name + "@" + subject
		}
		fmt.Printf("%s: %s\n", subject, typeLabel(resp.Type))
		if len(resp.Matching) == 0 {
			fmt.Print(pterm.Info.Sprintln("No rule matches; options decide"))
			return nil
		}
		return printRendered(renderRules(resp.Matching))
	})
}
