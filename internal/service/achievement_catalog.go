package service

import "github.com/alexanderramin/vocnav/internal/domain"

// countAchievement unlocks once metric reaches goal.
func countAchievement(id, title, description, icon, color string, metric func(domain.Counters) int, goal int) domain.Achievement {
	return domain.Achievement{
		ID: id, Title: title, Description: description, Icon: icon, Color: color,
		Condition: func(c domain.Counters) bool { return metric(c) >= goal },
		Metric:    metric,
		Goal:      goal,
	}
}

// DefaultAchievements is the ordered catalog. Evaluation walks it front to
// back, so earlier entries notify first.
func DefaultAchievements() []domain.Achievement {
	return []domain.Achievement{
		countAchievement("first_step", "First step", "Add your first item to the plan", "🚀", "#fabd2f",
			func(c domain.Counters) int { return c.PlanCount }, 1),
		countAchievement("planner", "Planner", "Keep five items in your plan", "🗂", "#b8bb26",
			func(c domain.Counters) int { return c.PlanCount }, 5),
		{
			ID: "calculated", Title: "Know your score", Description: "Calculate your average grade",
			Icon: "🧮", Color: "#83a598",
			Condition: func(c domain.Counters) bool { return c.HasCalculatedScore },
		},
		countAchievement("quiz_rookie", "Self-discovery", "Finish a career quiz", "🧭", "#d3869b",
			func(c domain.Counters) int { return c.QuizzesPassed }, 1),
		countAchievement("quiz_master", "Quiz master", "Finish three career quizzes", "🎯", "#fb4934",
			func(c domain.Counters) int { return c.QuizzesPassed }, 3),
		countAchievement("explorer", "Explorer", "Open five college pages", "🏫", "#8ec07c",
			func(c domain.Counters) int { return c.CollegesViewed }, 5),
		countAchievement("viewer", "Viewer", "Watch your first short", "🎬", "#fe8019",
			func(c domain.Counters) int { return c.VideosWatched }, 1),
		countAchievement("binge", "Binge watcher", "Watch ten shorts", "📺", "#fe8019",
			func(c domain.Counters) int { return c.VideosWatched }, 10),
		countAchievement("fan", "Fan", "Like five shorts", "❤️", "#cc241d",
			func(c domain.Counters) int { return c.VideosLiked }, 5),
		countAchievement("specialist", "Specialist", "Add three specialties to your plan", "🛠", "#689d6a",
			func(c domain.Counters) int { return c.SpecialtiesInPlan }, 3),
		countAchievement("college_hunter", "College hunter", "Add three colleges to your plan", "🎓", "#458588",
			func(c domain.Counters) int { return c.CollegesInPlan }, 3),
		{
			ID: "analyst", Title: "Analyst", Description: "Compare two options side by side",
			Icon: "⚖️", Color: "#b16286",
			Condition: func(c domain.Counters) bool { return c.HasUsedComparison },
		},
	}
}
