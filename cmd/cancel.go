package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	cmdCommon "github.com/napgate/napgate/cmd/common"
	"github.com/napgate/napgate/common"
	"github.com/napgate/napgate/internal/ipc"
	"github.com/napgate/napgate/pkg/credstore"
)

// promptPassword reads the password from stdin. Variable for tests.
var promptPassword = func() (string, error) {
	fmt.Print("Password: ")
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// secretConfigured reports whether the armed schedule is password-gated.
// The store is shared through the config directory, so a secondary can
// check without asking the primary.
func secretConfigured() bool {
	cfgDir, err := common.ConfigDir()
	if err != nil {
		return false
	}
	return credstore.New(afero.NewOsFs(), cfgDir).HasSecret()
}

func cancel(ctx *cli.Context) error {
	if !ipc.DetectRunning() {
		fmt.Println("No power-off is armed.")
		return nil
	}

	password := cancelPassword
	if password == "" && secretConfigured() {
		var err error
		password, err = promptPassword()
		if err != nil {
			cmdCommon.PrintRuntimeErr(ctx, "cancel", "prompt", err)
			return nil
		}
	}

	timeout := DEF_AWAIT_TIMEOUT
	if cancelTimeout != "" {
		d, err := time.ParseDuration(cancelTimeout)
		if err != nil {
			return cmdCommon.PrintErrWithCmdHelp(ctx,
				fmt.Errorf("invalid --timeout value %q: %w", cancelTimeout, err))
		}
		timeout = d
	}

	if err := ipc.RequestCancel(password); err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "cancel", "request", err)
		return nil
	}

	switch ipc.AwaitOutcome(timeout) {
	case ipc.OutcomeAck:
		fmt.Println("Schedule cancelled.")
		return nil
	case ipc.OutcomeNack:
		return cli.NewExitError("cancel rejected: wrong password", 1)
	default:
		return cli.NewExitError("no answer from the primary; the schedule may still be armed", 1)
	}
}
