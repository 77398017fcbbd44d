package cmd

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/crumbsapp/crumbs/cmd/common"
	"github.com/crumbsapp/crumbs/internal/api"
	"github.com/crumbsapp/crumbs/internal/config"
	"github.com/crumbsapp/crumbs/internal/cookies"
	"github.com/crumbsapp/crumbs/internal/rules"
	"github.com/crumbsapp/crumbs/pkg/logger"
	"github.com/pterm/pterm"
	"github.com/urfave/cli"
)

func TestMain(m *testing.M) {
	pterm.DisableStyling()
	os.Exit(m.Run())
}

// captureOutput captures stdout and stderr during function execution.
func captureOutput(f func()) (stdout, stderr string) {
	oldStdout := os.Stdout
	oldStderr := os.Stderr

	rOut, wOut, _ := os.Pipe()
	rErr, wErr, _ := os.Pipe()
	os.Stdout = wOut
	os.Stderr = wErr

	f()

	wOut.Close()
	wErr.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	var bufOut, bufErr bytes.Buffer
	io.Copy(&bufOut, rOut)
	io.Copy(&bufErr, rErr)
	rOut.Close()
	rErr.Close()

	return bufOut.String(), bufErr.String()
}

// assertContains checks if output contains the expected substring.
func assertContains(t *testing.T, output, expected string) {
	t.Helper()
	if !strings.Contains(output, expected) {
		t.Errorf("expected output to contain %q, got:\n%s", expected, output)
	}
}

// assertNotContains checks if output does NOT contain the specified substring.
func assertNotContains(t *testing.T, output, notExpected string) {
	t.Helper()
	if strings.Contains(output, notExpected) {
		t.Errorf("expected output to NOT contain %q, got:\n%s", notExpected, output)
	}
}

func assertExitCode(t *testing.T, err error, code int) {
	t.Helper()
	var exit cli.ExitCoder
	if !errors.As(err, &exit) || exit.ExitCode() != code {
		t.Fatalf("expected exit code %d, got %v", code, err)
	}
}

// newContext builds a command context with flags parsed from args. Only the
// first name of every flag is registered.
func newContext(args []string, name string, flags []cli.Flag) *cli.Context {
	app := cli.NewApp()
	app.Name = "crumbs"
	app.HelpName = "crumbs"
	set := flag.NewFlagSet(name, flag.ContinueOnError)
	for _, f := range flags {
		switch sf := f.(type) {
		case cli.StringFlag:
			set.String(firstName(sf.Name), sf.Value, sf.Usage)
		case cli.BoolFlag:
			set.Bool(firstName(sf.Name), false, sf.Usage)
		case cli.StringSliceFlag:
			v := &cli.StringSlice{}
			set.Var(v, firstName(sf.Name), sf.Usage)
		}
	}
	_ = set.Parse(args)
	ctx := cli.NewContext(app, set, nil)
	ctx.Command = cli.Command{Name: name, CustomHelpTemplate: CMD_HELP_TEMPL}
	return ctx
}

func firstName(name string) string {
	return strings.TrimSpace(strings.Split(name, ",")[0])
}

// writeCookieFile writes a Netscape cookie file with one cookie per
// domain/name pair.
func writeCookieFile(t *testing.T, pairs ...[2]string) string {
	t.Helper()
	exp := time.Now().Add(time.Hour).Unix()
	var b strings.Builder
	b.WriteString("# Netscape HTTP Cookie File\n")
	for _, p := range pairs {
		fmt.Fprintf(&b, "%s\tTRUE\t/\tFALSE\t%d\t%s\ttopsecret\n", p[0], exp, p[1])
	}
	path := filepath.Join(t.TempDir(), "cookies.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write cookie file: %v", err)
	}
	return path
}

// useTestEnv makes every command run against a rules database in a
// temporary directory, reading cookies from cookieFile.
func useTestEnv(t *testing.T, cookieFile string) *logger.MockLogger {
	t.Helper()
	dir := t.TempDir()
	log := logger.NewMockLogger()
	orig := common.NewEnv
	common.NewEnv = func(ctx context.Context, _ common.NewLogger) (*common.Env, error) {
		store, err := rules.OpenSQLiteStore(ctx, filepath.Join(dir, config.RulesDBName))
		if err != nil {
			return nil, err
		}
		cfg := &config.Config{Dir: dir, CookieFile: cookieFile}
		return &common.Env{
			Config: cfg,
			Api:    api.NewApi(log, store, cookies.NewReader(log), cfg),
			Log:    log,
		}, nil
	}
	t.Cleanup(func() { common.NewEnv = orig })
	return log
}

func TestExecuteVersion(t *testing.T) {
	var err error
	stdout, _ := captureOutput(func() {
		err = Execute([]string{"crumbs", "version"}, BuildArgs{
			Version:   "1.0.0",
			BuildType: "release",
			Date:      "2026-10-01",
			Commit:    "deadbeef",
		})
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	assertContains(t, stdout, "crumbs 1.0.0-release")
	assertContains(t, stdout, "2026-10-01=deadbeef")
	if common.Version != "1.0.0" || common.Commit != "deadbeef" {
		t.Errorf("build info not recorded: %q %q", common.Version, common.Commit)
	}
}

func TestExecuteRulesCheck(t *testing.T) {
	var err error
	stdout, _ := captureOutput(func() {
		err = Execute([]string{"crumbs", "rules", "check", " *.Example.COM "}, BuildArgs{})
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	assertContains(t, stdout, "*.example.com is valid")
}

func TestAppCommands(t *testing.T) {
	app := newApp(BuildArgs{Version: "1", BuildType: "dev"})
	for _, name := range []string{"browse", "rules", "classify", "config", "native-host", "help", "version"} {
		if app.Command(name) == nil {
			t.Errorf("command %s not registered", name)
		}
	}
	rulesCmd := app.Command("rules")
	for _, name := range []string{"list", "add", "remove", "check", "find", "clear-temporary", "options"} {
		found := false
		for _, sub := range rulesCmd.Subcommands {
			if sub.Name == name {
				found = true
			}
		}
		if !found {
			t.Errorf("rules %s not registered", name)
		}
	}
	if len(HELP_TEMPL) == 0 || len(CMD_HELP_TEMPL) == 0 {
		t.Error("help templates must not be empty")
	}
}
