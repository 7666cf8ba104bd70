package cmd

import (
	"fmt"
	"runtime"

	"github.com/urfave/cli"

	cmdCommon "github.com/napgate/napgate/cmd/common"
)

type BuildArgs struct {
	Version   string
	BuildType string
	Date      string
	Commit    string
}

var currentBuildArgs BuildArgs

func Execute(args []string, bArgs BuildArgs) error {
	currentBuildArgs = bArgs
	cmdCommon.VersionCmdStr = fmt.Sprintf(
		"napgate %s (%s_%s)\nBuild: %s=%s\n",
		bArgs.Version,
		runtime.GOOS,
		runtime.GOARCH,
		bArgs.Date, bArgs.Commit,
	)
	app := cli.App{
		Name:                  "napgate",
		HelpName:              "napgate",
		Usage:                 "A cancellable one-shot power-off timer.",
		Version:               fmt.Sprintf("%s-%s", bArgs.Version, bArgs.BuildType),
		UsageText:             "napgate <command> [arguments...]",
		Description:           DESCRIPTION,
		CustomAppHelpTemplate: HELP_TEMPL,
		OnUsageError:          cmdCommon.UsageErrorCallback,
		Commands: []cli.Command{
			{
				Name:                   "start",
				Aliases:                []string{"s"},
				Usage:                  "arm a one-shot power-off",
				Action:                 start,
				OnUsageError:           cmdCommon.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            StartDescription,
				UseShortOptionHandling: true,
				Flags:                  startFlags,
			},
			{
				Name:                   "cancel",
				Aliases:                []string{"x"},
				Usage:                  "ask the primary to call off the schedule",
				Action:                 cancel,
				OnUsageError:           cmdCommon.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            CancelDescription,
				UseShortOptionHandling: true,
				Flags:                  cancelFlags,
			},
			{
				Name:               "status",
				Aliases:            []string{"i"},
				Usage:              "show the armed schedule, if any",
				Action:             status,
				OnUsageError:       cmdCommon.UsageErrorCallback,
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Description:        StatusDescription,
			},
			{
				Name:                   "history",
				Aliases:                []string{"l"},
				Usage:                  "list recent schedule events",
				Action:                 history,
				OnUsageError:           cmdCommon.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            HistoryDescription,
				UseShortOptionHandling: true,
				Flags:                  historyFlags,
			},
			{
				Name:                   "uninstall",
				Usage:                  "remove stored password and journal",
				Action:                 uninstall,
				OnUsageError:           cmdCommon.UsageErrorCallback,
				CustomHelpTemplate:     CMD_HELP_TEMPL,
				Description:            UninstallDescription,
				UseShortOptionHandling: true,
				Flags:                  uninstallFlags,
			},
			{
				Name:    "help",
				Aliases: []string{"h"},
				Usage:   "prints the help message",
				Action:  cmdCommon.Help,
			},
			{
				Name:               "version",
				Aliases:            []string{"v"},
				Usage:              "prints installed version of napgate",
				UsageText:          " ",
				CustomHelpTemplate: CMD_HELP_TEMPL,
				Action:             cmdCommon.GetVersion,
			},
		},
		HideHelp:    true,
		HideVersion: true,
	}
	return app.Run(args)
}
