package advice

import (
	"fmt"
	"strings"

	"github.com/julianstephens/boardprep/internal/models"
	"github.com/julianstephens/boardprep/internal/progress"
)

// Stats is everything the mentor prompt is built from
type Stats struct {
	DaysRemaining int
	Phase         models.Phase
	Completed     int
	Total         int
	WeakSubjects  []string
}

// StatsFrom extracts prompt inputs from a derived snapshot
func StatsFrom(snap progress.Snapshot) Stats {
	return Stats{
		DaysRemaining: snap.DaysRemaining,
		Phase:         snap.Phase,
		Completed:     snap.Completed,
		Total:         snap.Total,
		WeakSubjects:  snap.WeakSubjects,
	}
}

// BuildPrompt renders the mentor request for the given stats
func BuildPrompt(s Stats) string {
	weak := strings.Join(s.WeakSubjects, ", ")
	if weak == "" {
		weak = "None specifically marked"
	}

	var b strings.Builder
	b.WriteString("As a supportive and expert Study Mentor for a Maharashtra 10th SSC Board student, give me a quick daily strategy.\n")
	b.WriteString("Context:\n")
	b.WriteString("- Board: Maharashtra State Board (SSC)\n")
	fmt.Fprintf(&b, "- Days Left: %d days\n", s.DaysRemaining)
	fmt.Fprintf(&b, "- Phase: %s\n", s.Phase)
	fmt.Fprintf(&b, "- Overall Progress: %d/%d chapters completed.\n", s.Completed, s.Total)
	fmt.Fprintf(&b, "- Weak Subjects: %s\n", weak)
	b.WriteString("- Available Self-Study Time: ~4.5 hours daily.\n")
	b.WriteString("\nFocus specifically on:\n")
	b.WriteString("1. English Mastery: Suggest 1 daily reading task and 1 writing topic.\n")
	b.WriteString("2. Grammar/Vocabulary: Provide a quick vocabulary challenge or grammar rule to review.\n")
	b.WriteString("3. Today's Focus: 1-2 core subject goals (Math/Science).\n")
	b.WriteString("4. Mentor's Advice: A short motivational tip.\n")
	b.WriteString("\nKeep it concise, encouraging, and in a friendly student-mentor tone. Use emojis.\n")
	return b.String()
}
