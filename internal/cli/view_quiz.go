package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/vocnav/internal/catalog"
	"github.com/alexanderramin/vocnav/internal/cli/formatter"
	"github.com/alexanderramin/vocnav/internal/domain"
)

// quizOrder is the order quizzes are offered in.
var quizOrder = []domain.QuizType{domain.QuizClassic, domain.QuizSwipe, domain.QuizBattle}

func newQuizSelectionScreen(s *SharedState) screen {
	cat := s.App.Shell.Catalog()
	var items []menuItem
	for _, t := range quizOrder {
		q, ok := cat.Quiz(t)
		if !ok {
			continue
		}
		items = append(items, navItem(q.Title, fmt.Sprintf("%d questions", len(q.Questions)), domain.QuizView{Type: t}))
	}
	return newMenuScreen(s, domain.ViewQuiz, func() string {
		return formatter.Header("Career quizzes") + "\n" +
			formatter.Dim(fmt.Sprintf("Passed so far: %d", s.App.Shell.Counters().QuizzesPassed)) + "\n"
	}, items...)
}

// quizScreen walks through the questions of one quiz. Finishing it opens
// the result, which is what counts the quiz as passed.
type quizScreen struct {
	state   *SharedState
	quiz    catalog.Quiz
	found   bool
	answers []int
	list    cursorList
}

func newQuizScreen(s *SharedState, t domain.QuizType) screen {
	q, ok := s.App.Shell.Catalog().Quiz(t)
	v := &quizScreen{state: s, quiz: q, found: ok}
	v.resetOptions()
	return v
}

func (v *quizScreen) question() (catalog.Question, bool) {
	if len(v.answers) >= len(v.quiz.Questions) {
		return catalog.Question{}, false
	}
	return v.quiz.Questions[len(v.answers)], true
}

func (v *quizScreen) resetOptions() {
	q, _ := v.question()
	v.list = newCursorList(len(q.Options), 0)
}

func (v *quizScreen) ShortHelp() []key.Binding {
	keys := []key.Binding{binding("enter", "answer"), binding("backspace", "previous")}
	if v.quiz.Type == domain.QuizSwipe {
		keys = append(keys, binding("←/→", "swipe"))
	}
	return keys
}

func (v *quizScreen) Update(msg tea.KeyMsg) tea.Cmd {
	q, ok := v.question()
	if !ok {
		return nil
	}
	if v.list.move(msg.String()) {
		return nil
	}
	switch msg.String() {
	case "enter":
		return v.answer(v.list.cursor)
	case "backspace":
		if len(v.answers) > 0 {
			prev := v.answers[len(v.answers)-1]
			v.answers = v.answers[:len(v.answers)-1]
			v.resetOptions()
			v.list.cursor = prev
		}
	case "right":
		if v.quiz.Type == domain.QuizSwipe && len(q.Options) > 0 {
			return v.answer(0)
		}
	case "left":
		if v.quiz.Type == domain.QuizSwipe && len(q.Options) > 1 {
			return v.answer(1)
		}
	}
	return nil
}

func (v *quizScreen) answer(choice int) tea.Cmd {
	v.answers = append(v.answers, choice)
	if len(v.answers) < len(v.quiz.Questions) {
		v.resetOptions()
		return nil
	}
	return navigate(domain.QuizResultView{Scores: catalog.Score(v.quiz, v.answers), Type: v.quiz.Type})
}

func (v *quizScreen) View() string {
	if !v.found {
		return formatter.Dim("This quiz is not available.")
	}
	q, ok := v.question()
	if !ok {
		return ""
	}
	var b strings.Builder
	n, total := len(v.answers)+1, len(v.quiz.Questions)
	b.WriteString(formatter.ProgressBar(float64(n-1)/float64(total), 20) + " " + formatter.Dim(fmt.Sprintf("%d/%d", n, total)) + "\n\n")
	if len(v.answers) == 0 && v.quiz.Intro != "" {
		b.WriteString(formatter.Dim(v.quiz.Intro) + "\n\n")
	}
	b.WriteString(formatter.Bold(q.Text) + "\n\n")
	rows := make([]string, len(q.Options))
	for i, o := range q.Options {
		rows[i] = o.Text
	}
	b.WriteString(v.list.render(rows, len(rows)))
	return b.String()
}

// quizResultScreen shows the ranked categories and matching specialties.
type quizResultScreen struct {
	state   *SharedState
	typ     domain.QuizType
	ranked  []catalog.CategoryScore
	matches []catalog.Specialty
	list    cursorList
}

func newQuizResultScreen(s *SharedState, t domain.QuizType, scores domain.QuizScores) screen {
	matches := s.App.Shell.Catalog().Recommend(scores, 3)
	return &quizResultScreen{
		state:   s,
		typ:     t,
		ranked:  catalog.Ranked(scores),
		matches: matches,
		list:    newCursorList(len(matches), 0),
	}
}

func (v *quizResultScreen) ShortHelp() []key.Binding {
	return []key.Binding{binding("enter", "details"), binding("a", "plan"), binding("r", "retake")}
}

func (v *quizResultScreen) Update(msg tea.KeyMsg) tea.Cmd {
	if v.list.move(msg.String()) {
		return nil
	}
	if msg.String() == "r" {
		return navigate(domain.QuizView{Type: v.typ})
	}
	if len(v.matches) == 0 {
		return nil
	}
	id := v.matches[v.list.cursor].ID
	switch msg.String() {
	case "enter":
		return navigate(domain.ProfessionDetailView{ID: id})
	case "a":
		return togglePlan(v.state, id)
	}
	return nil
}

func (v *quizResultScreen) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header("Your result") + "\n")
	if len(v.ranked) == 0 {
		b.WriteString(formatter.Dim("No clear preference yet. Press r to try again.") + "\n")
		return b.String()
	}
	top := v.ranked[0].Points
	for _, r := range v.ranked {
		b.WriteString(fmt.Sprintf("%-16s %s %d\n", r.Category, formatter.ProgressBar(float64(r.Points)/float64(top), 20), r.Points))
	}
	if len(v.matches) > 0 {
		b.WriteString("\n" + formatter.Bold("Specialties that suit you") + "\n")
		rows := make([]string, len(v.matches))
		for i, sp := range v.matches {
			rows[i] = planMarker(v.state, sp.ID) + sp.Title
		}
		b.WriteString(v.list.render(rows, v.state.ContentHeight()-len(v.ranked)-3))
	}
	return b.String()
}
