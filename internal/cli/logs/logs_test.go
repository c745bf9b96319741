package logs

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/boardprep/internal/calendar"
	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/clock"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
	"github.com/julianstephens/boardprep/internal/seed"
	"github.com/julianstephens/boardprep/internal/storage"
)

func setupTestStore(t *testing.T) (*cli.Context, func()) {
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	ctx := &cli.Context{
		Store: store,
		Seed:  seed.MustLoad(),
		Clock: clock.Fake(time.Date(2025, 3, 14, 21, 0, 0, 0, time.Local)),
	}
	return ctx, func() { store.Close() }
}

func TestLogCycleCmd(t *testing.T) {
	ctx, cleanup := setupTestStore(t)
	defer cleanup()
	tr, _ := ctx.Tracker()

	want := []models.DayStatus{models.DayCompleted, models.DayPartial, models.DayMissed, models.DayFuture, models.DayCompleted}
	for i, w := range want {
		if err := (&LogCycleCmd{}).Run(ctx); err != nil {
			t.Fatalf("cycle %d failed: %v", i, err)
		}
		if got := tr.Document().Logs["2025-03-14"].Status; got != w {
			t.Errorf("cycle %d: status = %q, want %q", i, got, w)
		}
	}

	if err := (&LogCycleCmd{Date: "2025-02-28"}).Run(ctx); err != nil {
		t.Fatalf("cycle with date failed: %v", err)
	}
	if got := tr.Document().Logs["2025-02-28"].Status; got != models.DayCompleted {
		t.Errorf("explicit date status = %q", got)
	}

	if err := (&LogCycleCmd{Date: "14/03/2025"}).Run(ctx); err == nil {
		t.Error("cycle with a malformed date should fail")
	}
}

func TestLogShowCmd(t *testing.T) {
	ctx, cleanup := setupTestStore(t)
	defer cleanup()

	if err := (&LogShowCmd{}).Run(ctx); err != nil {
		t.Errorf("log show failed: %v", err)
	}
	if err := (&LogShowCmd{Month: "2025-04"}).Run(ctx); err != nil {
		t.Errorf("log show --month failed: %v", err)
	}
	if err := (&LogShowCmd{Month: "April"}).Run(ctx); err == nil {
		t.Error("log show with a malformed month should fail")
	}
}

func TestRenderMonth(t *testing.T) {
	d := models.UserData{Logs: map[string]models.DayLog{
		"2025-03-01": {Date: "2025-03-01", Status: models.DayCompleted},
	}}
	m := calendar.Build(d, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC))
	out := RenderMonth(m)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if lines[0] != "March 2025" {
		t.Errorf("title line = %q", lines[0])
	}
	if len(lines) != 2+len(m.Weeks) {
		t.Errorf("got %d lines, want %d", len(lines), 2+len(m.Weeks))
	}
	if !strings.Contains(lines[2], " 1●") {
		t.Errorf("first week should show day 1 as completed: %q", lines[2])
	}
	if !strings.Contains(lines[3], "* 2 ") {
		t.Errorf("second week should mark today: %q", lines[3])
	}
}

func TestCycleHelpFollowsTransitions(t *testing.T) {
	field, ok := reflect.TypeOf(LogCmd{}).FieldByName("Cycle")
	if !ok {
		t.Fatal("LogCmd has no Cycle command")
	}
	help := field.Tag.Get("help")

	steps := []string{string(models.DayCompleted)}
	status := models.DayCompleted
	for i := 0; i < 3; i++ {
		status = progress.NextDayStatus(status, true)
		steps = append(steps, string(status))
	}
	if want := strings.Join(steps, " → "); !strings.Contains(help, want) {
		t.Errorf("help = %q, want it to describe %q", help, want)
	}
}
