package seed

import (
	"strings"
	"testing"

	"github.com/julianstephens/boardprep/internal/models"
)

func TestLoadEmbedded(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(cfg.Subjects) != 9 {
		t.Errorf("expected 9 subjects, got %d", len(cfg.Subjects))
	}
	if got := cfg.TotalChapters(); got != 113 {
		t.Errorf("expected 113 chapters, got %d", got)
	}
	if len(cfg.Schedule) != 6 {
		t.Errorf("expected 6 schedule blocks, got %d", len(cfg.Schedule))
	}
	if len(cfg.Quotes) != 7 {
		t.Errorf("expected 7 quotes, got %d", len(cfg.Quotes))
	}
	if len(cfg.Papers) != 5 {
		t.Errorf("expected 5 papers, got %d", len(cfg.Papers))
	}

	wantCounts := map[string]int{
		"english-kumarbharati":  30,
		"marathi-aksharbharati": 24,
		"math-algebra":          6,
		"math-geometry":         7,
		"science-1":             10,
		"science-2":             10,
		"history-marathi":       9,
		"geography-marathi":     9,
		"sanskrit-amod":         8,
	}
	for _, s := range cfg.Subjects {
		want, ok := wantCounts[s.ID]
		if !ok {
			t.Errorf("unexpected subject %s", s.ID)
			continue
		}
		if len(s.Chapters) != want {
			t.Errorf("subject %s: expected %d chapters, got %d", s.ID, want, len(s.Chapters))
		}
		for _, ch := range s.Chapters {
			if ch.Status != models.ChapterNotStarted {
				t.Errorf("chapter %s should start as NotStarted, got %q", ch.ID, ch.Status)
			}
		}
		if s.IsWeak {
			t.Errorf("subject %s should not be weak initially", s.ID)
		}
	}
}

func TestLoadReturnsIndependentCopies(t *testing.T) {
	first := MustLoad()
	first.Subjects[0].Chapters[0].Status = models.ChapterCompleted
	first.Quotes[0] = "changed"

	second := MustLoad()
	if second.Subjects[0].Chapters[0].Status != models.ChapterNotStarted {
		t.Error("Load() returned shared chapter data")
	}
	if second.Quotes[0] == "changed" {
		t.Error("Load() returned shared quotes")
	}
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no subjects",
			yaml:    "quotes: [hi]",
			wantErr: "no subjects",
		},
		{
			name: "duplicate subject",
			yaml: `
subjects:
  - {id: a, name: A, medium: English, chapters: [{id: c1, name: C}]}
  - {id: a, name: B, medium: English, chapters: [{id: c1, name: C}]}
quotes: [hi]`,
			wantErr: "duplicate subject id",
		},
		{
			name: "duplicate chapter",
			yaml: `
subjects:
  - {id: a, name: A, medium: English, chapters: [{id: c1, name: C}, {id: c1, name: D}]}
quotes: [hi]`,
			wantErr: "duplicate chapter id",
		},
		{
			name: "empty subject",
			yaml: `
subjects:
  - {id: a, name: A, medium: English, chapters: []}
quotes: [hi]`,
			wantErr: "no chapters",
		},
		{
			name: "bad medium",
			yaml: `
subjects:
  - {id: a, name: A, medium: Hindi, chapters: [{id: c1, name: C}]}
quotes: [hi]`,
			wantErr: "invalid medium",
		},
		{
			name: "inverted block",
			yaml: `
subjects:
  - {id: a, name: A, medium: English, chapters: [{id: c1, name: C}]}
schedule:
  - {start: 10, end: 9, task: Oops, type: study, category: self}
quotes: [hi]`,
			wantErr: "ends before it starts",
		},
		{
			name:    "malformed yaml",
			yaml:    "subjects: [",
			wantErr: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatalf("Parse() expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestRandomQuote(t *testing.T) {
	cfg := MustLoad()
	q := cfg.RandomQuote()
	found := false
	for _, want := range cfg.Quotes {
		if q == want {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("RandomQuote() = %q, not in quote list", q)
	}

	if got := (Config{}).RandomQuote(); got != "" {
		t.Errorf("RandomQuote() on empty config = %q, want empty", got)
	}
}
