package logs

import (
	"fmt"
	"strings"

	"github.com/julianstephens/boardprep/internal/calendar"
	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/labels"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
)

type LogCmd struct {
	Cycle LogCycleCmd `cmd:"" help:"Advance a day's attendance: completed → partial → missed → future."`
	Show  LogShowCmd  `cmd:"" help:"Show a month of attendance." default:"1"`
}

type LogCycleCmd struct {
	Date string `arg:"" optional:"" help:"Date to update (YYYY-MM-DD). Defaults to today."`
}

func (c *LogCycleCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	key := c.Date
	if key == "" || key == "today" {
		key = progress.DateKey(ctx.Now())
	}
	status, err := t.CycleDayLog(key)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s is now %s\n", labels.DayGlyph(status), key, status)
	return nil
}

type LogShowCmd struct {
	Month string `help:"Month to show (YYYY-MM). Defaults to the current month."`
}

func (c *LogShowCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}

	now := ctx.Now()
	ref := now
	if c.Month != "" {
		if ref, err = calendar.ParseMonth(c.Month, now.Location()); err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", c.Month)
		}
	}

	d := t.Document()
	fmt.Print(RenderMonth(calendar.Build(d, ref, now)))
	fmt.Println()
	printLegend(d)
	return nil
}

// RenderMonth draws a month grid with one glyph per logged day
func RenderMonth(m calendar.Month) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", m.Title())
	for _, h := range calendar.WeekdayHeader {
		fmt.Fprintf(&b, " %-4s", h)
	}
	b.WriteString("\n")
	for _, week := range m.Weeks {
		for _, cell := range week {
			if cell.Day == 0 {
				b.WriteString("     ")
				continue
			}
			mark := " "
			if cell.Logged {
				mark = labels.DayGlyph(cell.Status)
			}
			today := " "
			if cell.IsToday {
				today = "*"
			}
			fmt.Fprintf(&b, "%s%2d%s ", today, cell.Day, mark)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func printLegend(d models.UserData) {
	counts := progress.LogCounts(d)
	var parts []string
	for _, e := range labels.Legend() {
		parts = append(parts, fmt.Sprintf("%s %s (%d)", e.Glyph, e.Text, counts[e.Status]))
	}
	fmt.Println(strings.Join(parts, "   "))
	fmt.Println("* today")
}
