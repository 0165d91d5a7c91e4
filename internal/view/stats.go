package view

import "github.com/nissyi-gh/momentum/internal/model"

// Stats summarises completion over a filtered view.
type Stats struct {
	Completed int
	Total     int
	Percent   int
}

// Pending returns the number of tasks not yet completed.
func (s Stats) Pending() int {
	return s.Total - s.Completed
}

// CompletionStats counts completed tasks. Percent is floored and is 0 for an
// empty view.
func CompletionStats(tasks []model.Task) Stats {
	st := Stats{Total: len(tasks)}
	for _, t := range tasks {
		if t.Completed {
			st.Completed++
		}
	}
	if st.Total > 0 {
		st.Percent = st.Completed * 100 / st.Total
	}
	return st
}

// Badge is an achievement tier earned by completing tasks.
type Badge int

const (
	BadgeNone Badge = iota
	BadgeFirstSteps
	BadgeGoGetter
	BadgeAchiever
	BadgeMaster
)

var badgeThresholds = []struct {
	min   int
	badge Badge
}{
	{20, BadgeMaster},
	{10, BadgeAchiever},
	{5, BadgeGoGetter},
	{1, BadgeFirstSteps},
}

// BadgeFor returns the highest tier whose threshold completed reaches.
func BadgeFor(completed int) Badge {
	for _, th := range badgeThresholds {
		if completed >= th.min {
			return th.badge
		}
	}
	return BadgeNone
}

// Title is the short tier name.
func (b Badge) Title() string {
	switch b {
	case BadgeMaster:
		return "Master"
	case BadgeAchiever:
		return "Achiever"
	case BadgeGoGetter:
		return "Go-Getter"
	case BadgeFirstSteps:
		return "First steps"
	}
	return ""
}

// Message is the banner text shown for the tier.
func (b Badge) Message() string {
	switch b {
	case BadgeMaster:
		return "🏆 Master Doer! 20+ tasks done!"
	case BadgeAchiever:
		return "🌟 Achiever! 10+ tasks!"
	case BadgeGoGetter:
		return "✨ Go-Getter! 5+ completed!"
	case BadgeFirstSteps:
		return "👍 First steps! Keep going!"
	}
	return ""
}
