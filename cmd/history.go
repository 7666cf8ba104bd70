package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	cmdCommon "github.com/napgate/napgate/cmd/common"
	"github.com/napgate/napgate/common"
	"github.com/napgate/napgate/internal/journal"
)

func history(ctx *cli.Context) error {
	cfgDir, err := common.ConfigDir()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "history", "config-dir", err)
		return nil
	}
	jrnl, err := journal.Open(journalPath(cfgDir))
	if err != nil {
		fmt.Println("No history recorded yet.")
		return nil
	}
	defer jrnl.Close()

	entries, err := jrnl.Recent(historyLimit)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "history", "read", err)
		return nil
	}
	if len(entries) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-12s", e.At.Format("2006-01-02 15:04:05"), e.Kind)
		if e.Detail != "" {
			line += "  " + e.Detail
		}
		fmt.Println(line)
	}
	return nil
}
