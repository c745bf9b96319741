package plans

import (
	"fmt"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/schedule"
)

type PlanCmd struct{}

func (c *PlanCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	d := t.Document()
	snap := t.Snapshot()

	if d.IsStarted {
		fmt.Printf("Day %d/%d · %s\n", schedule.DayNumber(d.TargetDays, snap.DaysRemaining), d.TargetDays, snap.Phase)
	} else {
		fmt.Printf("Not started · %s\n", snap.Phase)
	}
	fmt.Printf("%d chapters still open\n\n", schedule.IncompleteChapters(d))

	for _, slot := range schedule.PlannerTasks(ctx.Seed.Schedule, snap.Phase) {
		fmt.Printf("  %s  %s\n", slot.TimeRange(), slot.Task)
		if slot.Tip != "" {
			fmt.Printf("                 💡 %s\n", slot.Tip)
		}
	}
	return nil
}

type NowCmd struct{}

func (c *NowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	now := ctx.Now()
	live := schedule.LiveStatus(t.Document().IsStarted, ctx.Seed.Schedule, now)

	fmt.Printf("%s  %s\n", now.Format(constants.TimeFormat), live.Label)
	fmt.Println(live.Title)
	if live.Kind == schedule.LiveBlock {
		fmt.Printf("%s (%s)\n", live.Block.TimeRange(), live.Block.Category)
	}
	return nil
}

type PapersCmd struct{}

func (c *PapersCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	if t.Snapshot().Phase != models.PhasePaperSolving {
		fmt.Printf("🔒 Paper solving mode unlocks in the last %d days. Keep finishing the syllabus!\n\n", constants.PaperSolvingDays)
	}
	fmt.Println("Previous year papers:")
	for _, p := range ctx.Seed.Papers {
		mark := "○"
		if p.Completed {
			mark = "●"
		}
		fmt.Printf("  %s %-28s %s\n", mark, p.Subject, p.Year)
	}
	return nil
}
