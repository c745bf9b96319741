package backups

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/clock"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/seed"
	"github.com/julianstephens/boardprep/internal/storage"
)

func setupTestStore(t *testing.T) (*cli.Context, *clock.FakeClock, func()) {
	store := storage.NewMemoryStore()
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	clk := clock.Fake(time.Date(2025, 4, 2, 18, 30, 0, 0, time.Local))
	ctx := &cli.Context{
		Store:     store,
		Seed:      seed.MustLoad(),
		Clock:     clk,
		BackupDir: filepath.Join(t.TempDir(), "backups"),
	}
	return ctx, clk, func() { store.Close() }
}

func TestBackupCreateAndList(t *testing.T) {
	ctx, clk, cleanup := setupTestStore(t)
	defer cleanup()

	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list on empty dir failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
		clk.Advance(time.Hour)
	}

	mgr, err := ctx.BackupManager()
	if err != nil {
		t.Fatal(err)
	}
	list, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 backups, got %d", len(list))
	}
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

func TestBackupRestore(t *testing.T) {
	ctx, clk, cleanup := setupTestStore(t)
	defer cleanup()

	tr, err := ctx.Tracker()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := tr.SetChapterStatus("science-1", "s1-1", models.ChapterCompleted); err != nil {
		t.Fatal(err)
	}
	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	clk.Advance(time.Minute)

	if err := tr.Reset(); err != nil {
		t.Fatal(err)
	}

	mgr, _ := ctx.BackupManager()
	list, _ := mgr.ListBackups()
	if len(list) != 1 {
		t.Fatalf("expected 1 backup, got %d", len(list))
	}

	cmd := &BackupRestoreCmd{BackupFile: filepath.Base(list[0].Path), Yes: true}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	d := tr.Document()
	s := d.Subjects[d.FindSubject("science-1")]
	if s.Chapters[s.FindChapter("s1-1")].Status != models.ChapterCompleted {
		t.Error("restore did not bring back the completed chapter")
	}

	list, _ = mgr.ListBackups()
	if len(list) != 2 {
		t.Errorf("restore should snapshot the current document first, have %d backups", len(list))
	}
}

func TestBackupRestoreCancelled(t *testing.T) {
	ctx, _, cleanup := setupTestStore(t)
	defer cleanup()

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	mgr, _ := ctx.BackupManager()
	list, _ := mgr.ListBackups()

	orig := cli.Confirm
	cli.Confirm = func(string, string) (bool, error) { return false, nil }
	defer func() { cli.Confirm = orig }()

	if err := (&BackupRestoreCmd{BackupFile: list[0].Path}).Run(ctx); err != nil {
		t.Fatalf("cancelled restore should not fail: %v", err)
	}
	list, _ = mgr.ListBackups()
	if len(list) != 1 {
		t.Errorf("cancelled restore wrote a backup, have %d", len(list))
	}
}

func TestResolveBackupPath(t *testing.T) {
	dir := t.TempDir()
	name := "boardprep-20250402-1830.json"
	full := filepath.Join(dir, name)
	if err := os.WriteFile(full, []byte("{}"), 0600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"absolute", full, full, false},
		{"bare name", name, full, false},
		{"missing absolute", filepath.Join(dir, "nope.json"), "", true},
		{"missing name", "nope.json", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveBackupPath(tt.input, dir)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveBackupPath(%q) error = %v", tt.input, err)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("resolveBackupPath(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if tt.wantErr && !strings.Contains(err.Error(), "not found") {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
