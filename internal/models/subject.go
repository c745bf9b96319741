package models

import (
	"fmt"
	"strings"
)

// ChapterStatus is the completion state of a single chapter
type ChapterStatus string

const (
	ChapterNotStarted ChapterStatus = "Not Started"
	ChapterInProgress ChapterStatus = "In Progress"
	ChapterCompleted  ChapterStatus = "Completed"
)

// ChapterStatuses lists every chapter status in display order
var ChapterStatuses = []ChapterStatus{ChapterNotStarted, ChapterInProgress, ChapterCompleted}

func (s ChapterStatus) IsValid() bool {
	switch s {
	case ChapterNotStarted, ChapterInProgress, ChapterCompleted:
		return true
	}
	return false
}

// ParseChapterStatus accepts either the stored value ("In Progress") or a
// command-line friendly slug ("in-progress").
func ParseChapterStatus(s string) (ChapterStatus, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", " ", "_", " ").Replace(norm)
	switch norm {
	case "not started", "todo", "wait":
		return ChapterNotStarted, nil
	case "in progress", "live", "started":
		return ChapterInProgress, nil
	case "completed", "done":
		return ChapterCompleted, nil
	}
	return "", fmt.Errorf("invalid chapter status: %s", s)
}

// Medium is the instruction language of a subject. It only affects labels.
type Medium string

const (
	MediumEnglish  Medium = "English"
	MediumMarathi  Medium = "Marathi"
	MediumSanskrit Medium = "Sanskrit"
)

func (m Medium) IsValid() bool {
	switch m {
	case MediumEnglish, MediumMarathi, MediumSanskrit:
		return true
	}
	return false
}

// Chapter is the smallest trackable syllabus unit
type Chapter struct {
	ID     string        `json:"id" yaml:"id"`
	Name   string        `json:"name" yaml:"name"`
	Status ChapterStatus `json:"status" yaml:"-"`
}

// Subject groups the chapters of one course
type Subject struct {
	ID       string    `json:"id" yaml:"id"`
	Name     string    `json:"name" yaml:"name"`
	Medium   Medium    `json:"medium" yaml:"medium"`
	Chapters []Chapter `json:"chapters" yaml:"chapters"`
	IsWeak   bool      `json:"isWeak,omitempty" yaml:"-"`
}

// Clone returns a copy of the subject that shares no memory with s
func (s Subject) Clone() Subject {
	out := s
	out.Chapters = make([]Chapter, len(s.Chapters))
	copy(out.Chapters, s.Chapters)
	return out
}

// FindChapter returns the index of the chapter with the given id, or -1
func (s Subject) FindChapter(id string) int {
	for i, ch := range s.Chapters {
		if ch.ID == id {
			return i
		}
	}
	return -1
}
