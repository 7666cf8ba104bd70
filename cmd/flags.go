package cmd

import "github.com/urfave/cli"

var (
	startMinutes  float64
	startAt       string
	startCron     string
	startPassword string
	startQuiet    bool
)

var startFlags = []cli.Flag{
	cli.Float64Flag{
		Name:        "minutes, m",
		Usage:       "arm the power-off this many minutes from now",
		Destination: &startMinutes,
	},
	cli.StringFlag{
		Name:        "at, t",
		Usage:       "arm the power-off at the next occurrence of HH:MM",
		Destination: &startAt,
	},
	cli.StringFlag{
		Name:        "cron, c",
		Usage:       "arm the power-off at the next tick of a cron expression",
		Destination: &startCron,
	},
	cli.StringFlag{
		Name:        "password, p",
		Usage:       "password required to cancel the schedule",
		EnvVar:      "NAPGATE_PASSWORD",
		Destination: &startPassword,
	},
	cli.BoolFlag{
		Name:        "quiet, q",
		Usage:       "suppress the countdown display",
		Destination: &startQuiet,
	},
}

var (
	cancelPassword string
	cancelTimeout  string
)

var cancelFlags = []cli.Flag{
	cli.StringFlag{
		Name:        "password, p",
		Usage:       "password of the armed schedule (prompted if omitted)",
		EnvVar:      "NAPGATE_PASSWORD",
		Destination: &cancelPassword,
	},
	cli.StringFlag{
		Name:        "timeout, w",
		Usage:       "how long to wait for the primary's answer (e.g. 5s)",
		Destination: &cancelTimeout,
	},
}

var historyLimit int

var historyFlags = []cli.Flag{
	cli.IntFlag{
		Name:        "limit, n",
		Usage:       "number of events to show",
		Value:       DEF_HISTORY_LIMIT,
		Destination: &historyLimit,
	},
}

var uninstallForce bool

var uninstallFlags = []cli.Flag{
	cli.BoolFlag{
		Name:        "force, f",
		Usage:       "skip the confirmation prompt",
		Destination: &uninstallForce,
	},
}
