// Package cmd implements the crumbs command line.
package cmd

import (
	"fmt"
	"runtime"

	"github.com/crumbsapp/crumbs/cmd/common"
	"github.com/crumbsapp/crumbs/cmd/nativehost"
	"github.com/urfave/cli"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

func newApp(bArgs BuildArgs) *cli.App {
	return &cli.App{
		Name:                  "crumbs",
		HelpName:              "crumbs",
		Usage:                 "Browse cookies and manage cleanup rules.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "crumbs <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          common.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:                   "browse",
				Aliases:                []string{"b"},
				Usage:                  "list cookies grouped by domain with their cleanup type",
				Action:                 browseCookies,
				OnUsageError:           common.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            BrowseDescription,
				Flags:                  browseFlags,
				UseShortOptionHandling: true,
			},
			{
				Name:         "rules",
				Aliases:      []string{"r"},
				Usage:        "manage cleanup rules",
				Description:  RulesDescription,
				OnUsageError: common.UsageErrorCallback,
				Subcommands:  rulesCommands,
			},
			{
				Name:               "classify",
				Aliases:            []string{"c"},
				Usage:              "show the cleanup type of a domain or cookie",
				UsageText:          "classify DOMAIN [COOKIE]",
				Action:             classify,
				OnUsageError:       common.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        ClassifyDescription,
				Flags:              []cli.Flag{jsonFlag},
			},
			{
				Name:         "config",
				Usage:        "show or change settings",
				Description:  ConfigDescription,
				OnUsageError: common.UsageErrorCallback,
				Subcommands:  configCommands,
			},
			{
				Name:         "native-host",
				Usage:        "manage browser native messaging integration",
				OnUsageError: common.UsageErrorCallback,
				Subcommands:  nativehost.Commands,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  common.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of crumbs",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             common.GetVersion,
			},
		},
		Action:      common.Help,
		HideHelp:    true,
		HideVersion: true,
	}
}

func Execute(args []string, bArgs BuildArgs) error {
	app := newApp(bArgs)
	common.Version, common.Commit, common.BuildType = bArgs.Version, bArgs.Commit, bArgs.BuildType
	common.VersionCmdStr = fmt.Sprintf("%s %s (%s_%s)\nBuild: %s=%s\n",
		app.Name,
		app.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	return app.Run(args)
}
