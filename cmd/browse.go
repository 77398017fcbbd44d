package cmd

import (
	"context"
	"fmt"

	"github.com/crumbsapp/crumbs/cmd/common"
	crumbs "github.com/crumbsapp/crumbs/common"
	"github.com/pterm/pterm"
	"github.com/urfave/cli"
)

var jsonFlag = cli.BoolFlag{
	Name:  "json",
	Usage: "print the result as JSON",
}

var browseFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "cookies-from, f",
		Usage: "read cookies from this store file, or \"auto\" for every installed browser",
	},
	cli.StringSliceFlag{
		Name:  "store, s",
		Usage: "only read the cookie store of this browser (repeatable)",
	},
	cli.StringFlag{
		Name:  "domain, d",
		Usage: "only read cookies of this domain and its subdomains",
	},
	cli.StringFlag{
		Name:  "search, q",
		Usage: "only show domains and cookies containing this text",
	},
	cli.BoolFlag{
		Name:  "flat",
		Usage: "print one table row per cookie instead of a tree",
	},
	jsonFlag,
}

func browseCookies(ctx *cli.Context) error {
	if ctx.Args().First() == "help" {
		return cli.ShowCommandHelp(ctx, ctx.Command.Name)
	}
	if ctx.NArg() > 0 {
		return common.ArgsError(ctx, "unexpected argument %q", ctx.Args().First())
	}
	bg := context.Background()
	env, err := common.NewEnv(bg, nil)
	if err != nil {
		return common.RuntimeErr(ctx, "browse", "load_config", err)
	}
	defer env.Close()

	if from := ctx.String("cookies-from"); from != "" {
		env.Config.CookieFile = from
	}
	resp, err := env.Api.Groups(bg, crumbs.GroupsParams{
		Query:  ctx.String("search"),
		Stores: ctx.StringSlice("store"),
		Domain: ctx.String("domain"),
	})
	if err != nil {
		return common.RuntimeErr(ctx, "browse", "groups", err)
	}

	if ctx.Bool("json") {
		return printJSON(resp)
	}
	for _, src := range resp.Sources {
		fmt.Print(pterm.Info.Sprintfln("%s: %s", src.Browser, src.Path))
	}
	if len(resp.Groups) == 0 {
		fmt.Print(pterm.Info.Sprintln("No cookies found"))
		return nil
	}
	if ctx.Bool("flat") {
		err = printRendered(renderGroupTable(resp))
	} else {
		err = printRendered(renderGroupTree(resp))
	}
	if err != nil {
		return common.RuntimeErr(ctx, "browse", "render", err)
	}
	return nil
}
