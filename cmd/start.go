package cmd

import (
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/afero"
	"github.com/urfave/cli"

	cmdCommon "github.com/napgate/napgate/cmd/common"
	"github.com/napgate/napgate/common"
	"github.com/napgate/napgate/internal/ipc"
	"github.com/napgate/napgate/internal/journal"
	"github.com/napgate/napgate/internal/scheduler"
	"github.com/napgate/napgate/internal/server"
	"github.com/napgate/napgate/internal/supervisor"
	"github.com/napgate/napgate/pkg/credstore"
	"github.com/napgate/napgate/pkg/logger"
	"github.com/napgate/napgate/pkg/power"
)

var errNoDeadline = errors.New("one of --minutes, --at or --cron is required")
var errManyDeadlines = errors.New("--minutes, --at and --cron are mutually exclusive")

// resolveTarget turns the deadline flags into an absolute fire time.
// Exactly one selector must be set.
func resolveTarget(now time.Time, minutes float64, at, cron string) (time.Time, error) {
	selectors := 0
	if minutes > 0 {
		selectors++
	}
	if at != "" {
		selectors++
	}
	if cron != "" {
		selectors++
	}
	if selectors == 0 {
		return time.Time{}, errNoDeadline
	}
	if selectors > 1 {
		return time.Time{}, errManyDeadlines
	}
	switch {
	case minutes > 0:
		return now.Add(time.Duration(minutes * float64(time.Minute))), nil
	case at != "":
		clock, err := time.Parse("15:04", at)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --at value %q: want HH:MM", at)
		}
		target := time.Date(now.Year(), now.Month(), now.Day(),
			clock.Hour(), clock.Minute(), 0, 0, now.Location())
		if !target.After(now) {
			target = target.Add(24 * time.Hour)
		}
		return target, nil
	default:
		target, err := scheduler.NextCronOccurrence(cron, now)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --cron value %q: %w", cron, err)
		}
		return target, nil
	}
}

func journalPath(cfgDir string) string {
	return filepath.Join(cfgDir, "journal.db")
}

func reportSecondary() {
	fmt.Println("A power-off is already armed by another napgate instance.")
	fmt.Println("Use \"napgate status\" to inspect it or \"napgate cancel\" to call it off.")
}

func start(ctx *cli.Context) error {
	target, err := resolveTarget(time.Now(), startMinutes, startAt, startCron)
	if err != nil {
		return cmdCommon.PrintErrWithCmdHelp(ctx, err)
	}

	if ipc.DetectRunning() {
		reportSecondary()
		return nil
	}

	cfgDir, err := common.ConfigDir()
	if err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "start", "config-dir", err)
		return nil
	}
	if err := os.MkdirAll(cfgDir, 0700); err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "start", "config-dir", err)
		return nil
	}

	// A credential left behind by a crashed primary must not gate this
	// run, so the store is wiped before the new secret (if any) goes in.
	store := credstore.New(afero.NewOsFs(), cfgDir)
	if err := store.Delete(); err != nil {
		cmdCommon.PrintRuntimeErr(ctx, "start", "credential-cleanup", err)
		return nil
	}
	if startPassword != "" {
		if err := store.Set(startPassword); err != nil {
			cmdCommon.PrintRuntimeErr(ctx, "start", "credential-store", err)
			return nil
		}
	}

	set, err := ipc.CreatePrimary()
	if err != nil {
		if errors.Is(err, ipc.ErrAlreadyRunning) {
			// Lost the arming race to a concurrent start.
			reportSecondary()
			return nil
		}
		cmdCommon.PrintRuntimeErr(ctx, "start", "acquire", err)
		return nil
	}

	lg := logger.NewStandardLogger(log.Default())

	jrnl, err := journal.Open(journalPath(cfgDir))
	if err != nil {
		lg.Warning("journal unavailable: %s", err.Error())
		jrnl = nil
	}
	defer jrnl.Close()

	countdown := scheduler.New(func() {})
	if err := countdown.ScheduleAt(target); err != nil {
		set.Destroy()
		cmdCommon.PrintRuntimeErr(ctx, "start", "schedule", err)
		return nil
	}
	if err := jrnl.Record(journal.KindScheduled, target.Format(time.RFC3339)); err != nil {
		lg.Warning("journal write failed: %s", err.Error())
	}

	srv := server.NewServer(lg, countdown, currentBuildArgs.Version)
	go func() {
		if err := srv.Start(); err != nil {
			lg.Warning("status endpoint failed: %s", err.Error())
		}
	}()

	// An interrupt aborts the countdown; the supervisor then tears the
	// schedule down without powering off.
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		<-sigCh
		countdown.Cancel()
	}()

	if !startQuiet {
		fmt.Printf("Power-off armed for %s.\n", target.Format("2006-01-02 15:04:05"))
		go renderCountdown(countdown)
	}

	sup := supervisor.New(supervisor.Config{
		Set:         set,
		Credentials: store,
		Countdown:   countdown,
		Journal:     jrnl,
		Log:         lg,
		Action:      power.System().PowerOff,
		OnTeardown:  []func(){srv.Shutdown},
	})
	switch sup.Run() {
	case supervisor.ReasonCancelled:
		fmt.Println("Schedule cancelled by request.")
	case supervisor.ReasonAborted:
		fmt.Println("Schedule aborted.")
	case supervisor.ReasonFired:
		// The power-off is already under way; nothing useful to print.
	}
	return nil
}
