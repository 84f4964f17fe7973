package app

import (
	"sort"

	"github.com/alexanderramin/vocnav/internal/domain"
	"github.com/alexanderramin/vocnav/internal/storage"
)

// Theme returns the stored theme, defaulting to system.
func (s *Shell) Theme() domain.ThemeMode {
	raw, ok := s.store.Get(storage.KeyTheme)
	if !ok || !domain.ValidThemeModes[raw] {
		return domain.ThemeSystem
	}
	return domain.ThemeMode(raw)
}

func (s *Shell) SetTheme(mode domain.ThemeMode) error {
	if !domain.ValidThemeModes[string(mode)] {
		return ErrInvalidTheme
	}
	s.store.Set(storage.KeyTheme, string(mode))
	return nil
}

// Setting names a boolean preference.
type Setting string

const (
	SettingSound         Setting = "sound"
	SettingNotifications Setting = "notifications"
	SettingIncognito     Setting = "incognito"
)

type settingSpec struct {
	key string
	def bool
}

var settings = map[Setting]settingSpec{
	SettingSound:         {storage.KeySoundEnabled, true},
	SettingNotifications: {storage.KeyNotificationsEnabled, true},
	SettingIncognito:     {storage.KeyIncognito, false},
}

// Settings lists every setting name in a stable order.
func Settings() []Setting {
	out := make([]Setting, 0, len(settings))
	for k := range settings {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s *Shell) Setting(name Setting) (bool, error) {
	st, ok := settings[name]
	if !ok {
		return false, ErrUnknownSetting
	}
	return storage.GetBool(s.store, st.key, st.def), nil
}

func (s *Shell) SetSetting(name Setting, v bool) error {
	st, ok := settings[name]
	if !ok {
		return ErrUnknownSetting
	}
	storage.SetBool(s.store, st.key, v)
	return nil
}

// SoundEnabled reports whether unlocks should make a sound.
func (s *Shell) SoundEnabled() bool {
	v, _ := s.Setting(SettingSound)
	return v
}

// Onboarding action names.
const (
	OnboardingDashboard = "dashboard"
	OnboardingQuiz      = "quiz"
)

// ShowOnboarding reports whether onboarding should be shown: on first run
// or after a replay request in this session.
func (s *Shell) ShowOnboarding() bool {
	s.mu.Lock()
	replay := s.replay
	s.mu.Unlock()
	return replay || !storage.GetBool(s.store, storage.KeyOnboardingSeen, false)
}

// CompleteOnboarding records onboarding as seen and opens the quiz
// selection for the quiz action or the dashboard otherwise.
func (s *Shell) CompleteOnboarding(action string) {
	storage.SetBool(s.store, storage.KeyOnboardingSeen, true)
	s.mu.Lock()
	s.replay = false
	s.mu.Unlock()

	if action == OnboardingQuiz {
		s.NavigateTo(domain.QuizView{})
		return
	}
	s.NavigateTo(domain.DashboardView{})
}

// ReplayOnboarding shows onboarding again for this session.
func (s *Shell) ReplayOnboarding() {
	s.mu.Lock()
	s.replay = true
	s.mu.Unlock()
}

// ResetData wipes every stored key and returns all components to their
// first-run state. A signed-in session stays signed in.
func (s *Shell) ResetData() {
	s.mu.Lock()
	s.stopWatchLocked()
	s.compare = nil
	s.replay = false
	s.mu.Unlock()

	s.store.Clear()
	s.achievements.Reload()
	s.plan.Reload()
	s.calc.Reload()
	s.nav.Reset()
}
