package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli"

	cmdCommon "github.com/napgate/napgate/cmd/common"
	"github.com/napgate/napgate/pkg/napcli"
)

func status(ctx *cli.Context) error {
	client, err := napcli.NewClient()
	if err != nil {
		fmt.Println("No power-off is armed.")
		return nil
	}
	defer client.Close()

	qctx, cancelQuery := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelQuery()
	res, err := client.Status(qctx)
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "status", "query", err)
		return nil
	}
	if !res.Active {
		fmt.Println("No power-off is armed.")
		return nil
	}
	remaining := time.Duration(res.RemainingMs) * time.Millisecond
	fmt.Printf("Power-off armed for %s (%s remaining).\n",
		res.FireAt, remaining.Round(time.Second))
	return nil
}
