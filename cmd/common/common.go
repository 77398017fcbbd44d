// Package common provides the helpers shared by the crumbs CLI commands:
// help and version output, error reporting and the construction of the
// api the commands run against.
package common

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crumbsapp/crumbs/internal/api"
	"github.com/crumbsapp/crumbs/internal/config"
	"github.com/crumbsapp/crumbs/internal/cookies"
	"github.com/crumbsapp/crumbs/internal/rules"
	"github.com/crumbsapp/crumbs/pkg/logger"
	"github.com/urfave/cli"
)

// VersionCmdStr holds the formatted version string displayed by the version command.
// It is populated at runtime by the Execute function with build-time information
// including version, platform, build date, and commit hash.
var VersionCmdStr string

// Build information reported to the extension by the version method.
var (
	Version   string
	Commit    string
	BuildType string
)

var (
	showAppHelpAndExit = cli.ShowAppHelpAndExit
	showCommandHelp    = cli.ShowCommandHelp

	// errOut receives runtime errors. stdout belongs to command output and,
	// for native-host run, to the browser.
	errOut io.Writer = os.Stderr
)

// Env is what a command needs to run: the resolved configuration and the
// api built on it.
type Env struct {
	Config *config.Config
	Api    *api.Api
	Log    logger.Logger
}

// Close releases the rules database and the logger.
func (e *Env) Close() error {
	err := e.Api.Close()
	if lerr := e.Log.Close(); err == nil {
		err = lerr
	}
	return err
}

// NewLogger builds the logger of an Env from the configured debug flag.
type NewLogger func(debug bool) logger.Logger

// StderrLogger logs to stderr, including info messages when debug is set.
func StderrLogger(debug bool) logger.Logger {
	return logger.New(os.Stderr, debug)
}

// NewEnv loads the configuration, opens the rules database and builds the
// api. A nil newLog means StderrLogger. Tests replace NewEnv to point
// commands at a temporary directory.
var NewEnv = func(ctx context.Context, newLog NewLogger) (*Env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if newLog == nil {
		newLog = StderrLogger
	}
	l := newLog(cfg.Debug)
	store, err := rules.OpenSQLiteStore(ctx, cfg.RulesDBPath())
	if err != nil {
		l.Close()
		return nil, err
	}
	a := api.NewApi(l, store, cookies.NewReader(l), cfg)
	a.SetVersion(Version, Commit, BuildType)
	return &Env{Config: cfg, Api: a, Log: l}, nil
}

// Help displays help information for the application or a specific command.
// If no argument is provided or the argument is "help", it displays the
// application-level help and exits. Otherwise, it shows help for the
// specified command name.
func Help(ctx *cli.Context) error {
	arg := ctx.Args().First()
	if arg == "" || arg == "help" {
		fmt.Printf("%s %s\n", ctx.App.Name, ctx.App.Version)
		showAppHelpAndExit(ctx, 0)
		return nil
	}
	err := showCommandHelp(ctx, arg)
	if err != nil {
		return PrintErrWithHelp(ctx, err)
	}
	return nil
}

// GetVersion prints VersionCmdStr.
func GetVersion(ctx *cli.Context) error {
	fmt.Println(VersionCmdStr)
	return nil
}

// PrintRuntimeErr prints "<app>: <cmd>[<action>]: <err>" to stderr. The ctx
// parameter may be nil, in which case the application name is derived from
// os.Args[0].
func PrintRuntimeErr(ctx *cli.Context, cmd, action string, err error) {
	if err == nil {
		fmt.Fprintln(errOut, "err is nil", "[", cmd, "|", action, "]")
		return
	}
	var name string
	if ctx != nil {
		name = ctx.App.HelpName
	} else {
		name = os.Args[0]
	}
	fmt.Fprintf(errOut, "%s: %s[%s]: %s\n", name, cmd, action, err.Error())
}

// RuntimeErr prints err like PrintRuntimeErr and returns an exit error with
// status 1 and no further message.
func RuntimeErr(ctx *cli.Context, cmd, action string, err error) error {
	PrintRuntimeErr(ctx, cmd, action, err)
	return cli.NewExitError("", 1)
}

// PrintErrWithCmdHelp prints the error message followed by the current
// command's help text.
func PrintErrWithCmdHelp(ctx *cli.Context, err error) error {
	return printErrWithCallback(
		ctx,
		err,
		func() {
			err := showCommandHelp(ctx, ctx.Command.Name)
			if err != nil {
				fmt.Println(err.Error())
			}
		},
	)
}

// PrintErrWithHelp prints the error message followed by the application-level
// help text and exits with status code 1.
func PrintErrWithHelp(ctx *cli.Context, err error) error {
	return printErrWithCallback(
		ctx,
		err,
		func() {
			showAppHelpAndExit(ctx, 1)
		},
	)
}

func printErrWithCallback(ctx *cli.Context, err error, callback func()) error {
	if err == nil {
		return nil
	}
	estr := strings.ToLower(err.Error())
	if estr == "flag: help requested" {
		return Help(ctx)
	}
	if strings.Contains(estr, "-version") {
		return GetVersion(ctx)
	}
	fmt.Printf("%s: %s\n\n", ctx.App.HelpName, err.Error())
	callback()
	return nil
}

// UsageErrorCallback is the OnUsageError callback of the app and its
// commands. It shows the command help when a command is active and the
// application help otherwise.
func UsageErrorCallback(ctx *cli.Context, err error, _ bool) error {
	if ctx.Command.Name != "" {
		return PrintErrWithCmdHelp(ctx, err)
	}
	return PrintErrWithHelp(ctx, err)
}

// ArgsError reports missing or extra positional arguments and shows the
// command help.
func ArgsError(ctx *cli.Context, format string, a ...any) error {
	_ = PrintErrWithCmdHelp(ctx, fmt.Errorf(format, a...))
	return cli.NewExitError("", 1)
}
