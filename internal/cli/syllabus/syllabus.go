package syllabus

import (
	"fmt"

	"github.com/julianstephens/boardprep/internal/cli"
	"github.com/julianstephens/boardprep/internal/labels"
	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
)

type ChapterCmd struct {
	Set  ChapterSetCmd  `cmd:"" help:"Set the status of a chapter."`
	List ChapterListCmd `cmd:"" help:"Show the syllabus checklist." default:"1"`
}

type ChapterSetCmd struct {
	Subject string `arg:"" help:"Subject id."`
	Chapter string `arg:"" help:"Chapter id."`
	Status  string `arg:"" help:"not-started, in-progress or completed."`
}

func (c *ChapterSetCmd) Run(ctx *cli.Context) error {
	status, err := models.ParseChapterStatus(c.Status)
	if err != nil {
		return err
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := cli.LookupSubject(t.Document(), c.Subject)
	if err != nil {
		return err
	}
	chapter, err := cli.LookupChapter(subject, c.Chapter)
	if err != nil {
		return err
	}

	changed, err := t.SetChapterStatus(subject.ID, chapter.ID, status)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Printf("%s is already %s.\n", chapter.Name, status)
		return nil
	}

	d := t.Document()
	stats := progress.ForSubject(d.Subjects[d.FindSubject(subject.ID)])
	fmt.Printf("✓ %s: %s → %s\n", subject.Name, chapter.Name, status)
	fmt.Printf("  %s %d%% (%d/%d)\n", cli.Bar(stats.Percent, 10), stats.Percent, stats.Completed, stats.Total)
	return nil
}

type ChapterListCmd struct {
	Subject string `arg:"" optional:"" help:"Only list this subject."`
}

func (c *ChapterListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	d := t.Document()

	subjects := d.Subjects
	if c.Subject != "" {
		s, err := cli.LookupSubject(d, c.Subject)
		if err != nil {
			return err
		}
		subjects = []models.Subject{s}
	}

	for i, s := range subjects {
		if i > 0 {
			fmt.Println()
		}
		stats := progress.ForSubject(s)
		fmt.Printf("%s [%s] (%s medium) %d%%\n", s.Name, s.ID, s.Medium, stats.Percent)
		for _, ch := range s.Chapters {
			fmt.Printf("  %-5s %-14s %s\n", labels.Chapter(ch.Status, s.Medium), ch.ID, ch.Name)
		}
	}
	return nil
}

type WeakCmd struct {
	Toggle WeakToggleCmd `cmd:"" help:"Flag or unflag a subject as weak."`
	List   WeakListCmd   `cmd:"" help:"List weak subjects." default:"1"`
}

type WeakToggleCmd struct {
	Subject string `arg:"" help:"Subject id."`
}

func (c *WeakToggleCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	subject, err := cli.LookupSubject(t.Document(), c.Subject)
	if err != nil {
		return err
	}
	if _, err := t.ToggleWeakSubject(subject.ID); err != nil {
		return err
	}

	if subject.IsWeak {
		fmt.Printf("✓ %s is no longer marked weak\n", subject.Name)
	} else {
		fmt.Printf("✓ %s marked weak. The mentor will focus on it.\n", subject.Name)
	}
	return nil
}

type WeakListCmd struct{}

func (c *WeakListCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	weak := t.Document().WeakSubjects()
	if len(weak) == 0 {
		fmt.Println("No subjects marked weak")
		return nil
	}
	fmt.Println("Weak subjects:")
	for _, name := range weak {
		fmt.Printf("  ⚠ %s\n", name)
	}
	return nil
}
