package cmd

import (
	"time"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"github.com/napgate/napgate/internal/scheduler"
)

// renderCountdown draws a draining progress bar for the armed schedule
// until it fires or is cancelled.
func renderCountdown(countdown *scheduler.Countdown) {
	remaining, ok := countdown.Remaining()
	if !ok {
		return
	}
	total := remaining

	p := mpb.New(mpb.WithWidth(48))
	barStyle := mpb.BarStyle().Lbound("╢").Filler("█").Tip("█").Padding("░").Rbound("╟")
	bar := p.New(int64(total),
		barStyle,
		mpb.PrependDecorators(
			decor.Name("Power-off in", decor.WC{W: 13, C: decor.DindentRight}),
			decor.Any(func(decor.Statistics) string {
				r, ok := countdown.Remaining()
				if !ok {
					return "0s"
				}
				return r.Round(time.Second).String()
			}, decor.WC{W: 8}),
		),
	)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-countdown.Done():
			if countdown.Fired() {
				bar.SetCurrent(int64(total))
			} else {
				bar.Abort(true)
			}
			p.Wait()
			return
		case <-ticker.C:
			r, ok := countdown.Remaining()
			if !ok {
				r = 0
			}
			bar.SetCurrent(int64(total - r))
		}
	}
}
