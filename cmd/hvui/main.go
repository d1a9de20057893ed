package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aryankumar/hvui/internal/cli"
	"github.com/aryankumar/hvui/internal/util"
)

// exitConfig is the exit status for unusable configuration, so scripts can
// tell a bad flag or kubeconfig from a failed load
const exitConfig = 2

func main() {
	ctx, stop := util.SetupSignalHandler(context.Background(), nil)

	err := cli.Execute(ctx)
	stop()
	if err != nil {
		err = util.ContextError(err)
		slog.Debug("command failed", "error", err)
		fmt.Fprintln(os.Stderr, "Error:", util.FriendlyError(err))
		if util.IsConfigError(err) {
			os.Exit(exitConfig)
		}
		os.Exit(1)
	}
}
