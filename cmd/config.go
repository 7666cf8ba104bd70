package cmd

import "time"

const (
	// DEF_AWAIT_TIMEOUT bounds how long the cancel command waits for the
	// primary to answer a request.
	DEF_AWAIT_TIMEOUT = 5 * time.Second

	// DEF_HISTORY_LIMIT is how many journal entries history shows.
	DEF_HISTORY_LIMIT = 20
)

const DESCRIPTION = `
Napgate schedules a one-shot system power-off. The first invocation
becomes the primary and arms the countdown; later invocations see the
running primary and can query or cancel it. Cancellation can be gated
behind a password so the timer survives casual interruption.
`

const (
	StartDescription = `The start command arms a one-shot power-off. Exactly one of
--minutes, --at or --cron selects the deadline. An optional
password gates cancellation; without one, any cancel request
is honored.

Example:
        napgate start --minutes 30
        napgate start --at 23:30 --password hunter2

`
	CancelDescription = `The cancel command asks the running primary to call off the
armed power-off. If the primary was started with a password,
the same password must be supplied here.

Example:
        napgate cancel
        napgate cancel --password hunter2

`
	StatusDescription = `The status command shows whether a power-off is armed and how
much time remains.

Example:
        napgate status

`
	HistoryDescription = `The history command lists recent schedule events: arming,
firing, cancellations and cancel attempts.

Example:
        napgate history -n 10

`
	UninstallDescription = `The uninstall command removes napgate's stored state: the
cancellation password and the event journal. It refuses to run
while a schedule is armed.

Example:
        napgate uninstall

`
)
