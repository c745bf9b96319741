package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/constants"
	"github.com/julianstephens/boardprep/internal/keyring"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/persistence"
	"github.com/julianstephens/boardprep/internal/progress"
	"github.com/julianstephens/boardprep/internal/storage"
)

type DoctorCmd struct{}

type check struct {
	name      string
	needStore bool
	warnOnly  bool
	run       func(ctx *cli.Context) error
}

var errSkipped = errors.New("not applicable")

func checks() []check {
	return []check{
		{name: "Store reachable", run: checkStoreReachable},
		{name: "Schema version", needStore: true, run: checkSchemaVersion},
		{name: "Document decodes", needStore: true, run: checkDocument},
		{name: "Subjects match syllabus", needStore: true, run: checkSubjects},
		{name: "Day log dates", needStore: true, run: checkDayLogs},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Clock/timezone", run: func(*cli.Context) error { return checkClockTimezone(time.Now()) }},
		{name: "Advice key", warnOnly: true, run: checkAdviceKey},
	}
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	for i, c := range checks() {
		if c.needStore && !storeReachable {
			fmt.Printf("⊘ %s: SKIPPED (store not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case errors.Is(err, errSkipped):
			fmt.Printf("⊘ %s: SKIPPED (%v)\n", c.name, err)
		case err != nil && c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		case err != nil:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		default:
			fmt.Printf("✓ %s: OK\n", c.name)
		}

		if i == 0 {
			storeReachable = err == nil
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if _, _, err := ctx.Store.Read(constants.ThemeKey); err != nil {
		return fmt.Errorf("failed to read from store: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	migrator, ok := ctx.Store.(storage.Migrator)
	if !ok {
		return fmt.Errorf("%w: no SQL schema", errSkipped)
	}
	st, err := migrator.MigrationStatus()
	if err != nil {
		return err
	}
	if st.Current > st.Latest {
		return fmt.Errorf("schema version %d is newer than supported version %d", st.Current, st.Latest)
	}
	if len(st.Pending) > 0 {
		return fmt.Errorf("%d pending migration(s), run 'boardprep migrate'", len(st.Pending))
	}
	return nil
}

func loadDocument(ctx *cli.Context) (models.UserData, error) {
	data, found, err := persistence.New(ctx.Store).Raw()
	if err != nil {
		return models.UserData{}, err
	}
	if !found {
		return models.UserData{}, fmt.Errorf("no document stored, run 'boardprep init'")
	}
	d, _, err := persistence.Decode(data)
	return d, err
}

func checkDocument(ctx *cli.Context) error {
	d, err := loadDocument(ctx)
	if err != nil {
		return err
	}
	if d.TargetDays <= 0 {
		return fmt.Errorf("targetDays is %d", d.TargetDays)
	}
	if d.IsStarted && d.JourneyStartedAt == nil {
		return fmt.Errorf("journey is started but has no start time")
	}
	for _, s := range d.Subjects {
		for _, ch := range s.Chapters {
			if !ch.Status.IsValid() {
				return fmt.Errorf("chapter %s/%s has invalid status %q", s.ID, ch.ID, ch.Status)
			}
		}
	}
	return nil
}

// checkSubjects compares the stored syllabus with the shipped one
func checkSubjects(ctx *cli.Context) error {
	d, err := loadDocument(ctx)
	if err != nil {
		return fmt.Errorf("%w: document unreadable", errSkipped)
	}
	return compareSubjects(d.Subjects, ctx.Seed.Subjects)
}

func compareSubjects(stored, shipped []models.Subject) error {
	want := make(map[string]map[string]bool, len(shipped))
	for _, s := range shipped {
		chapters := make(map[string]bool, len(s.Chapters))
		for _, ch := range s.Chapters {
			chapters[ch.ID] = true
		}
		want[s.ID] = chapters
	}

	seen := make(map[string]bool, len(stored))
	for _, s := range stored {
		chapters, ok := want[s.ID]
		if !ok {
			return fmt.Errorf("stored subject %s is not in the syllabus", s.ID)
		}
		seen[s.ID] = true
		if len(s.Chapters) != len(chapters) {
			return fmt.Errorf("subject %s has %d chapters, syllabus has %d", s.ID, len(s.Chapters), len(chapters))
		}
		for _, ch := range s.Chapters {
			if !chapters[ch.ID] {
				return fmt.Errorf("chapter %s/%s is not in the syllabus", s.ID, ch.ID)
			}
		}
	}
	for id := range want {
		if !seen[id] {
			return fmt.Errorf("syllabus subject %s is missing from the document", id)
		}
	}
	return nil
}

func checkDayLogs(ctx *cli.Context) error {
	d, err := loadDocument(ctx)
	if err != nil {
		return fmt.Errorf("%w: document unreadable", errSkipped)
	}
	for key, entry := range d.Logs {
		if _, err := progress.ParseDateKey(key); err != nil {
			return fmt.Errorf("log key %q is not a date", key)
		}
		if entry.Date != key {
			return fmt.Errorf("log %s records date %q", key, entry.Date)
		}
		if !entry.Status.IsValid() {
			return fmt.Errorf("log %s has invalid status %q", key, entry.Status)
		}
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'boardprep backup create'")
	}
	return nil
}

func checkClockTimezone(now time.Time) error {
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if name, offset := now.Zone(); offset < -12*3600 || offset > 14*3600 {
		return fmt.Errorf("timezone %s has an impossible UTC offset of %ds", name, offset)
	}
	return nil
}

func checkAdviceKey(*cli.Context) error {
	if os.Getenv(constants.GeminiAPIKeyEnv) != "" {
		return nil
	}
	if _, err := keyring.GetAPIKey(); err == nil {
		return nil
	}
	return fmt.Errorf("no Gemini API key: set %s or run 'boardprep keyring set-api-key'", constants.GeminiAPIKeyEnv)
}
