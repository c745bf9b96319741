package seed

import (
	_ "embed"
	"fmt"
	"math/rand"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/boardprep/internal/models"
)

//go:embed seed.yaml
var raw []byte

// Config is the static data shipped with the binary: the syllabus, the fixed
// daily timetable, motivational quotes and the previous-year paper list.
type Config struct {
	Subjects []models.Subject       `yaml:"subjects"`
	Schedule []models.ScheduleBlock `yaml:"schedule"`
	Quotes   []string               `yaml:"quotes"`
	Papers   []models.MockPaper     `yaml:"papers"`
}

var (
	once    sync.Once
	cached  Config
	loadErr error
)

// Load returns the embedded configuration. Every call returns a fresh copy so
// callers may mutate the result freely.
func Load() (Config, error) {
	once.Do(func() {
		cached, loadErr = Parse(raw)
	})
	if loadErr != nil {
		return Config{}, loadErr
	}
	return cached.clone(), nil
}

// MustLoad is like Load but panics if the embedded data is invalid.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("seed: %v", err))
	}
	return cfg
}

// Parse decodes and validates a seed document. Chapter statuses are always
// initialised to NotStarted.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse seed data: %w", err)
	}
	for i := range cfg.Subjects {
		for j := range cfg.Subjects[i].Chapters {
			cfg.Subjects[i].Chapters[j].Status = models.ChapterNotStarted
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the application relies on.
func (c Config) Validate() error {
	if len(c.Subjects) == 0 {
		return fmt.Errorf("seed data has no subjects")
	}
	subjectIDs := make(map[string]bool)
	for _, s := range c.Subjects {
		if s.ID == "" {
			return fmt.Errorf("subject %q has an empty id", s.Name)
		}
		if subjectIDs[s.ID] {
			return fmt.Errorf("duplicate subject id: %s", s.ID)
		}
		subjectIDs[s.ID] = true
		if !s.Medium.IsValid() {
			return fmt.Errorf("subject %s has invalid medium %q", s.ID, s.Medium)
		}
		if len(s.Chapters) == 0 {
			return fmt.Errorf("subject %s has no chapters", s.ID)
		}
		chapterIDs := make(map[string]bool)
		for _, ch := range s.Chapters {
			if ch.ID == "" {
				return fmt.Errorf("subject %s has a chapter with an empty id", s.ID)
			}
			if chapterIDs[ch.ID] {
				return fmt.Errorf("duplicate chapter id %s in subject %s", ch.ID, s.ID)
			}
			chapterIDs[ch.ID] = true
		}
	}
	for i, b := range c.Schedule {
		if b.Start >= b.End {
			return fmt.Errorf("schedule block %d (%s) ends before it starts", i, b.Task)
		}
		if b.Start < 0 || b.End > 24 {
			return fmt.Errorf("schedule block %d (%s) is outside the day", i, b.Task)
		}
	}
	if len(c.Quotes) == 0 {
		return fmt.Errorf("seed data has no quotes")
	}
	return nil
}

// RandomQuote picks one motivational quote at random
func (c Config) RandomQuote() string {
	if len(c.Quotes) == 0 {
		return ""
	}
	return c.Quotes[rand.Intn(len(c.Quotes))]
}

// TotalChapters counts chapters across every subject
func (c Config) TotalChapters() int {
	n := 0
	for _, s := range c.Subjects {
		n += len(s.Chapters)
	}
	return n
}

func (c Config) clone() Config {
	out := Config{
		Subjects: make([]models.Subject, len(c.Subjects)),
		Schedule: append([]models.ScheduleBlock(nil), c.Schedule...),
		Quotes:   append([]string(nil), c.Quotes...),
		Papers:   append([]models.MockPaper(nil), c.Papers...),
	}
	for i, s := range c.Subjects {
		out.Subjects[i] = s.Clone()
	}
	return out
}
