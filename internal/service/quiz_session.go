package service

import "cosmic_quiz_backend/internal/model"

type SessionState string

const (
	SessionSetup    SessionState = "setup"
	SessionPlaying  SessionState = "playing"
	SessionAnswered SessionState = "answered"
	SessionFinished SessionState = "finished"
)

// PlayableOption is an answer option with the correctness flag stripped, so
// the playing client cannot see the answer.
type PlayableOption struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	OptionOrder int    `json:"optionOrder"`
}

type PlayableQuestion struct {
	ID           string                `json:"id"`
	QuestionText string                `json:"questionText"`
	CategoryName string                `json:"categoryName,omitempty"`
	Difficulty   model.DifficultyLevel `json:"difficulty"`
	Points       int                   `json:"points"`
	Options      []PlayableOption      `json:"options"`
}

// QuizSession is the whole state of one playthrough, serializable as JSON.
// There is no ambient session state anywhere else; callers pass the session
// (by id) into every operation.
type QuizSession struct {
	ID               string             `json:"id"`
	UserID           string             `json:"userId"`
	Username         string             `json:"username"`
	DisplayName      string             `json:"displayName"`
	State            SessionState       `json:"state"`
	Questions        []PlayableQuestion `json:"questions"`
	CurrentIndex     int                `json:"currentIndex"`
	SelectedOptionID string             `json:"selectedOptionId,omitempty"`
	Score            int                `json:"score"`
	TotalPoints      int                `json:"totalPoints"`
	Message          string             `json:"message,omitempty"`
}

// Current returns the question the session is on, or nil outside a run.
func (s *QuizSession) Current() *PlayableQuestion {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Questions) {
		return nil
	}
	return &s.Questions[s.CurrentIndex]
}

func (s *QuizSession) onLastQuestion() bool {
	return s.CurrentIndex >= len(s.Questions)-1
}

// reset clears everything back to setup for a fresh run.
func (s *QuizSession) reset() {
	s.UserID = ""
	s.Username = ""
	s.DisplayName = ""
	s.State = SessionSetup
	s.Questions = nil
	s.CurrentIndex = 0
	s.SelectedOptionID = ""
	s.Score = 0
	s.TotalPoints = 0
	s.Message = ""
}

func toPlayable(q *model.Question) PlayableQuestion {
	options := make([]PlayableOption, len(q.AnswerOptions))
	for i, opt := range q.AnswerOptions {
		options[i] = PlayableOption{
			ID:          opt.ID,
			Text:        opt.OptionText,
			OptionOrder: opt.OptionOrder,
		}
	}
	categoryName := ""
	if q.Category != nil {
		categoryName = q.Category.Name
	}
	return PlayableQuestion{
		ID:           q.ID,
		QuestionText: q.QuestionText,
		CategoryName: categoryName,
		Difficulty:   q.Difficulty,
		Points:       q.Points,
		Options:      options,
	}
}
