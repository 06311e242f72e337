package ux

import (
	"fmt"
	"time"

	"github.com/calebmartin/inkwell/internal/config"
	"github.com/calebmartin/inkwell/internal/rotation"
	"github.com/calebmartin/inkwell/internal/runlog"
)

// RenderStatus prints the full status display: the upcoming topic, the
// gate window, and recent pipeline runs. last and next are zero when the
// pipeline has never run.
func RenderStatus(cfg *config.Config, upcoming rotation.Topic, last, next time.Time, runs []runlog.Run) {
	fmt.Printf("%sSite:%s     %s\n", Bold, Reset, cfg.Name)

	fmt.Printf("%sUpcoming:%s %s\n", Bold, Reset, upcoming.Title)
	fmt.Printf("          %s%s%s\n", Dim, truncate(upcoming.About, 70), Reset)

	if last.IsZero() {
		fmt.Printf("%sGate:%s     %snever ran — next invocation will generate%s\n",
			Bold, Reset, Green, Reset)
	} else {
		fmt.Printf("%sGate:%s     last ran %s\n", Bold, Reset, last.Format("2006-01-02 15:04 MST"))
		if next.After(time.Now()) {
			fmt.Printf("          %snext eligible %s%s\n", Yellow, next.Format("2006-01-02 15:04 MST"), Reset)
		} else {
			fmt.Printf("          %seligible now%s\n", Green, Reset)
		}
	}

	if len(runs) == 0 {
		fmt.Printf("\n%sRuns:%s     %s(none recorded)%s\n", Bold, Reset, Dim, Reset)
		return
	}

	fmt.Printf("\n%sRecent runs:%s\n", Bold, Reset)
	for _, r := range runs {
		fmt.Printf("  %s%s%s  %-30s %s  %s%s%s\n",
			Dim, r.Start.Format("2006-01-02 15:04"), Reset,
			truncate(r.Topic, 30), statusBadge(r.Status),
			Dim, r.Duration, Reset)
	}
	fmt.Println()
}

func statusBadge(status string) string {
	switch status {
	case runlog.StatusWritten:
		return Green + "written " + Reset
	case runlog.StatusFallback:
		return Yellow + "fallback" + Reset
	default:
		return Red + "failed  " + Reset
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
