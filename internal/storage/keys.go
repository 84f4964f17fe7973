package storage

// Stable storage keys. Values are JSON documents except where noted.
const (
	KeyPlan                 = "myPlan"
	KeyPlanOwner            = "planOwner" // plain user id
	KeyAppState             = "appState"
	KeyUnlockedAchievements = "unlockedAchievements"
	KeyTheme                = "app_theme" // plain theme mode
	KeyOnboardingSeen       = "hasSeenOnboarding"
	KeySoundEnabled         = "app_sound_enabled"
	KeyNotificationsEnabled = "app_notifications_enabled"
	KeyIncognito            = "app_incognito_mode"
	KeyCalculatorSubjects   = "calculatorSubjects"
	KeyAverageScore         = "averageScore"
)
