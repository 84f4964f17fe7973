package domain

type ItemType string

const (
	ItemSpecialty ItemType = "specialty"
	ItemCollege   ItemType = "college"
)

// ValidItemTypes is the canonical set of accepted plan item type strings.
var ValidItemTypes = map[string]bool{
	"specialty": true, "college": true,
}

type ChecklistItemType string

const (
	ChecklistInfo       ChecklistItemType = "info"
	ChecklistAction     ChecklistItemType = "action"
	ChecklistLink       ChecklistItemType = "link"
	ChecklistNavigation ChecklistItemType = "navigation"
)

type QuizType string

const (
	QuizClassic QuizType = "classic"
	QuizSwipe   QuizType = "swipe"
	QuizBattle  QuizType = "battle"
)

// ValidQuizTypes is the canonical set of accepted quiz type strings.
var ValidQuizTypes = map[string]bool{
	"classic": true, "swipe": true, "battle": true,
}

type Tab string

const (
	TabHome  Tab = "home"
	TabVideo Tab = "video"
	TabNews  Tab = "news"
)

type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// ValidThemeModes is the canonical set of accepted theme strings.
var ValidThemeModes = map[string]bool{
	"light": true, "dark": true, "system": true,
}
