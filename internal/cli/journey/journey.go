package journey

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/labels"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
	"github.com/julianstephens/boardprep/internal/schedule"
)

type StatusCmd struct{}

func (c *StatusCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	d := t.Document()
	snap := t.Snapshot()

	fmt.Printf("Phase: %s (%s)\n", snap.Phase, labels.Phase(snap.Phase))
	if d.IsStarted {
		fmt.Printf("Journey started %s, on its %s day\n",
			cli.StartedAgo(d, ctx.Now()), humanize.Ordinal(schedule.DayNumber(d.TargetDays, snap.DaysRemaining)))
	} else {
		fmt.Println("Journey not started. Run 'boardprep start' to begin the countdown.")
	}
	fmt.Printf("Days to board: %d of %d (%d passed)\n", snap.DaysRemaining, d.TargetDays, snap.DaysPassed)
	fmt.Printf("Total progress: %s %3d%%  (%d/%d chapters)\n", cli.Bar(snap.Percent, 20), snap.Percent, snap.Completed, snap.Total)
	fmt.Printf("Daily self study: %s\n", constants.DailySelfStudy)
	printStrategicPath(snap.Phase)

	fmt.Println()
	fmt.Println("Subjects:")
	for _, s := range snap.Subjects {
		weak := ""
		if s.IsWeak {
			weak = "  ⚠ weak"
		}
		fmt.Printf("  %-32s %s %3d%%  %d/%d%s\n", s.Name, cli.Bar(s.Percent, 10), s.Percent, s.Completed, s.Total, weak)
	}

	if info := t.LoadInfo(); info.Recovered {
		fmt.Printf("\n⚠ The stored plan was unreadable and has been reset. The old data is kept under %s.\n", constants.CorruptStorageKey)
	}
	return nil
}

func printStrategicPath(phase models.Phase) {
	marker := func(p models.Phase) string {
		if p == phase {
			return "▶"
		}
		return " "
	}
	fmt.Println("Strategic path:")
	fmt.Printf("  %s Syllabus Mode   days 1-%d\n", marker(models.PhaseSyllabus), constants.SyllabusDays)
	fmt.Printf("  %s Solving Mode    last %d days\n", marker(models.PhasePaperSolving), constants.PaperSolvingDays)
}

type StartCmd struct{}

func (c *StartCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	changed, err := t.StartJourney()
	if err != nil {
		return err
	}
	if !changed {
		d := t.Document()
		fmt.Printf("Journey already started %s.\n", cli.StartedAgo(d, ctx.Now()))
		return nil
	}
	fmt.Printf("🚀 Journey started! %d days to the board exams.\n", progress.DaysRemaining(t.Document(), ctx.Now()))
	return nil
}

type ResetCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ResetCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if !c.Yes {
		ok, err := cli.Confirm("Reset all progress?",
			"Chapter statuses, weak subjects, day logs and the journey start will be cleared.")
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("Reset cancelled.")
			return nil
		}
	}

	ctx.PerformAutomaticBackup()
	if err := t.Reset(); err != nil {
		return err
	}
	fmt.Println("✓ Progress reset. Run 'boardprep start' to begin again.")
	return nil
}

type ThemeCmd struct {
	Mode string `arg:"" optional:"" help:"dark, light or toggle. Omit to show the current theme."`
}

func (c *ThemeCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	var theme string
	switch c.Mode {
	case "":
		theme, err = t.Theme()
	case "toggle":
		theme, err = t.ToggleTheme()
	case constants.ThemeDark, constants.ThemeLight:
		theme, err = c.Mode, t.SetTheme(c.Mode)
	default:
		return fmt.Errorf("unknown theme %q (want dark, light or toggle)", c.Mode)
	}
	if err != nil {
		return err
	}
	fmt.Printf("Theme: %s\n", theme)
	return nil
}
