package nativehost

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/crumbsapp/crumbs/cmd/common"
	"github.com/crumbsapp/crumbs/internal/nativehost"
	"github.com/urfave/cli"
)

// run serves the extension over stdin/stdout until the browser closes the
// pipe. Anything written to stdout besides responses breaks the channel, so
// diagnostics go to the host logger.
func run(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env, err := common.NewEnv(ctx, hostLogger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to start native host: %v\n", err)
		return cli.NewExitError("failed to start native host", 1)
	}
	defer env.Close()

	host := nativehost.NewHost(env.Api, env.Log)
	env.Log.Info("native host started")
	if err := host.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		env.Log.Error("native host error: %v", err)
		return cli.NewExitError("native host error", 1)
	}
	env.Log.Info("native host stopped")
	return nil
}
