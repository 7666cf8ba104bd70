package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	cmdCommon "github.com/napgate/napgate/cmd/common"
	"github.com/napgate/napgate/common"
	"github.com/napgate/napgate/internal/ipc"
	"github.com/napgate/napgate/pkg/credstore"
)

func confirmUninstall(force bool) bool {
	if force {
		return true
	}
	fmt.Print("Remove the stored password and event history? (yes/no): ")
	var answer string
	_, _ = fmt.Scanf("%s", &answer)
	switch strings.ToLower(answer) {
	case "yes", "y", "true", "1":
		return true
	default:
		fmt.Println("Cancelled uninstall operation!")
		return false
	}
}

func uninstall(ctx *cli.Context) error {
	if ipc.DetectRunning() {
		return cli.NewExitError("a power-off is armed; cancel it before uninstalling", 1)
	}
	if !confirmUninstall(uninstallForce) {
		return nil
	}

	cfgDir, err := common.ConfigDir()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "uninstall", "config-dir", err)
		return nil
	}
	if err := credstore.New(afero.NewOsFs(), cfgDir).Uninstall(); err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "uninstall", "credential", err)
		return nil
	}
	if err := os.Remove(journalPath(cfgDir)); err != nil && !os.IsNotExist(err) {
		cmdCommon.PrintRuntimeErr(ctx, "uninstall", "journal", err)
		return nil
	}
	fmt.Println("Napgate state removed.")
	return nil
}
