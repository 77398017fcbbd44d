package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/crumbsapp/crumbs/cmd/common"
	crumbs "github.com/crumbsapp/crumbs/common"
	"github.com/crumbsapp/crumbs/internal/cleanup"
	"github.com/crumbsapp/crumbs/internal/rules"
	"github.com/pterm/pterm"
	"github.com/urfave/cli"
)

var rulesCommands = []cli.Command{
	{
		Name:               "list",
		Aliases:            []string{"l"},
		Usage:              "list rules and options",
		Action:             listRules,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
		Flags:              []cli.Flag{jsonFlag},
	},
	{
		Name:               "add",
		Aliases:            []string{"a"},
		Usage:              "add or replace a rule",
		UsageText:          "rules add EXPRESSION TYPE",
		Action:             addRule,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
		Flags: []cli.Flag{
			cli.BoolFlag{
				Name:  "temporary, t",
				Usage: "remove the rule with clear-temporary (browser restart)",
			},
			cli.BoolFlag{
				Name:  "replace, r",
				Usage: "overwrite an existing rule with the same expression",
			},
		},
	},
	{
		Name:               "remove",
		Aliases:            []string{"rm"},
		Usage:              "remove a rule",
		UsageText:          "rules remove EXPRESSION",
		Action:             removeRule,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
	},
	{
		Name:               "check",
		Usage:              "validate an expression",
		UsageText:          "rules check EXPRESSION",
		Action:             checkExpression,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
	},
	{
		Name:               "find",
		Usage:              "show the rule with exactly this expression",
		UsageText:          "rules find EXPRESSION",
		Action:             findRule,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
	},
	{
		Name:               "clear-temporary",
		Usage:              "remove every temporary rule",
		Action:             clearTemporary,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
	},
	{
		Name:               "options",
		Usage:              "show or change the options used when no rule matches",
		Action:             ruleOptions,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
		Flags: []cli.Flag{
			cli.StringFlag{
				Name:  "fallback",
				Usage: "cleanup type of domains no rule matches",
			},
			cli.StringFlag{
				Name:  "whitelist-no-tld",
				Usage: "protect hosts without a dot (true or false)",
			},
			cli.StringFlag{
				Name:  "whitelist-file-system",
				Usage: "protect cookies of local files (true or false)",
			},
		},
	},
}

// withEnv runs fn against a freshly opened environment.
func withEnv(ctx *cli.Context, cmd string, fn func(context.Context, *common.Env) error) error {
	bg := context.Background()
	env, err := common.NewEnv(bg, nil)
	if err != nil {
		return common.RuntimeErr(ctx, cmd, "load_config", err)
	}
	defer env.Close()
	return fn(bg, env)
}

// expressionArg returns the single EXPRESSION argument.
func expressionArg(ctx *cli.Context) (string, error) {
	if ctx.NArg() != 1 {
		return "", common.ArgsError(ctx, "expected 1 argument, got %d", ctx.NArg())
	}
	return ctx.Args().First(), nil
}

func listRules(ctx *cli.Context) error {
	return withEnv(ctx, "rules", func(bg context.Context, env *common.Env) error {
		resp, err := env.Api.ListRules(bg)
		if err != nil {
			return common.RuntimeErr(ctx, "rules", "list", err)
		}
		if ctx.Bool("json") {
			return printJSON(resp)
		}
		if len(resp.Rules) == 0 {
			fmt.Print(pterm.Info.Sprintln("No rules"))
		} else if err := printRendered(renderRules(resp.Rules)); err != nil {
			return common.RuntimeErr(ctx, "rules", "render", err)
		}
		return printRendered(renderOptions(resp.Options))
	})
}

func addRule(ctx *cli.Context) error {
	if ctx.NArg() != 2 {
		return common.ArgsError(ctx, "expected 2 arguments, got %d", ctx.NArg())
	}
	t, err := cleanup.ParseType(ctx.Args().Get(1))
	if err != nil {
		return common.ArgsError(ctx, "%v", err)
	}
	return withEnv(ctx, "rules", func(bg context.Context, env *common.Env) error {
		resp, err := env.Api.AddRule(bg, crumbs.RuleParams{
			Expression: ctx.Args().First(),
			Type:       t,
			Temporary:  ctx.Bool("temporary"),
			Replace:    ctx.Bool("replace"),
		})
		if errors.Is(err, rules.ErrRuleExists) {
			fmt.Print(pterm.Warning.Sprintfln("%v; use --replace to overwrite it", err))
			return cli.NewExitError("", 1)
		}
		if err != nil {
			return common.RuntimeErr(ctx, "rules", "add", err)
		}
		if resp.Replaced {
			fmt.Print(pterm.Success.Sprintfln("Replaced %s: %s -> %s", resp.Rule.Expression, *resp.Previous, resp.Rule.Type))
		} else {
			fmt.Print(pterm.Success.Sprintfln("Added %s: %s", resp.Rule.Expression, resp.Rule.Type))
		}
		return nil
	})
}

func removeRule(ctx *cli.Context) error {
	expr, err := expressionArg(ctx)
	if err != nil {
		return err
	}
	return withEnv(ctx, "rules", func(bg context.Context, env *common.Env) error {
		if err := env.Api.RemoveRule(bg, expr); err != nil {
			return common.RuntimeErr(ctx, "rules", "remove", err)
		}
		fmt.Print(pterm.Success.Sprintfln("Removed %s", rules.NormalizeExpression(expr)))
		return nil
	})
}

func checkExpression(ctx *cli.Context) error {
	expr, err := expressionArg(ctx)
	if err != nil {
		return err
	}
	if !rules.IsValidExpression(expr) {
		fmt.Print(pterm.Warning.Sprintfln("%q is not a valid expression", expr))
		return cli.NewExitError("", 1)
	}
	fmt.Print(pterm.Success.Sprintfln("%s is valid", rules.NormalizeExpression(expr)))
	return nil
}

func findRule(ctx *cli.Context) error {
	expr, err := expressionArg(ctx)
	if err != nil {
		return err
	}
	return withEnv(ctx, "rules", func(bg context.Context, env *common.Env) error {
		resp, err := env.Api.FindRule(bg, expr)
		if err != nil {
			return common.RuntimeErr(ctx, "rules", "find", err)
		}
		if !resp.Found {
			fmt.Print(pterm.Info.Sprintfln("No rule for %s", rules.NormalizeExpression(expr)))
			return cli.NewExitError("", 1)
		}
		return printRendered(renderRules([]rules.Rule{*resp.Rule}))
	})
}

func clearTemporary(ctx *cli.Context) error {
	return withEnv(ctx, "rules", func(bg context.Context, env *common.Env) error {
		resp, err := env.Api.ClearTemporary(bg)
		if err != nil {
			return common.RuntimeErr(ctx, "rules", "clear_temporary", err)
		}
		fmt.Print(pterm.Success.Sprintfln("Removed %d temporary rules", resp.Removed))
		return nil
	})
}

func ruleOptions(ctx *cli.Context) error {
	var p crumbs.OptionsParams
	if v := ctx.String("fallback"); v != "" {
		t, err := cleanup.ParseType(v)
		if err != nil {
			return common.ArgsError(ctx, "--fallback: %v", err)
		}
		p.FallbackType = &t
	}
	for name, dst := range map[string]**bool{
		"whitelist-no-tld":      &p.WhitelistNoTLD,
		"whitelist-file-system": &p.WhitelistFileSystem,
	} {
		v := ctx.String(name)
		if v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return common.ArgsError(ctx, "--%s: %v", name, err)
		}
		*dst = &b
	}
	return withEnv(ctx, "rules", func(bg context.Context, env *common.Env) error {
		opts, err := env.Api.SetOptions(bg, p)
		if err != nil {
			return common.RuntimeErr(ctx, "rules", "options", err)
		}
		return printRendered(renderOptions(*opts))
	})
}
