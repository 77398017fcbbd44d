package cmd

import (
	"fmt"
	"os"

	"github.com/crumbsapp/crumbs/cmd/common"
	"github.com/crumbsapp/crumbs/internal/config"
	"github.com/pterm/pterm"
	"github.com/urfave/cli"
)

var configCommands = []cli.Command{
	{
		Name:               "show",
		Usage:              "print the configuration directory and settings",
		Action:             showConfig,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
	},
	{
		Name:               "set",
		Usage:              "store a setting in crumbs.env (an empty value removes it)",
		UsageText:          "config set KEY [VALUE]",
		Action:             setConfig,
		OnUsageError:       common.UsageErrorCallback,
		CustomHelpTemplate: CMD_HELP_TEMPL,
	},
}

var loadConfig = config.Load

func showConfig(ctx *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return common.RuntimeErr(ctx, "config", "load", err)
	}
	file, err := cfg.FileValues()
	if err != nil {
		return common.RuntimeErr(ctx, "config", "read", err)
	}
	fmt.Printf("Directory: %s\nRules:     %s\n", cfg.Dir, cfg.RulesDBPath())

	data := pterm.TableData{{"Key", "Value", "Source"}}
	for _, key := range config.Keys {
		if v, ok := os.LookupEnv(key); ok {
			data = append(data, []string{key, v, "environment"})
		} else if v, ok := file[key]; ok {
			data = append(data, []string{key, v, config.EnvFileName})
		} else {
			data = append(data, []string{key, "", "default"})
		}
	}
	if err := printRendered(pterm.DefaultTable.WithHasHeader().WithData(data).Srender()); err != nil {
		return common.RuntimeErr(ctx, "config", "render", err)
	}
	return nil
}

func setConfig(ctx *cli.Context) error {
	if ctx.NArg() < 1 || ctx.NArg() > 2 {
		return common.ArgsError(ctx, "expected KEY [VALUE], got %d arguments", ctx.NArg())
	}
	cfg, err := loadConfig()
	if err != nil {
		return common.RuntimeErr(ctx, "config", "load", err)
	}
	key, value := ctx.Args().First(), ctx.Args().Get(1)
	if err := cfg.Set(key, value); err != nil {
		return common.RuntimeErr(ctx, "config", "set", err)
	}
	if value == "" {
		fmt.Print(pterm.Success.Sprintfln("Removed %s from %s", key, cfg.EnvFilePath()))
	} else {
		fmt.Print(pterm.Success.Sprintfln("Set %s in %s", key, cfg.EnvFilePath()))
	}
	if _, ok := os.LookupEnv(key); ok {
		fmt.Print(pterm.Warning.Sprintfln("%s is also set in the environment, which takes precedence", key))
	}
	return nil
}
