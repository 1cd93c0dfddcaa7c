package service

import (
	"cosmic_quiz_backend/internal/model"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"
	"cosmic_quiz_backend/pkg/logger"
	"cosmic_quiz_backend/pkg/monitoring"
	"strings"

	"go.uber.org/zap"
)

// DifficultyPoints fixes a question's value at creation time.
var DifficultyPoints = map[model.DifficultyLevel]int{
	model.DifficultyEasy:   10,
	model.DifficultyMedium: 25,
	model.DifficultyHard:   50,
}

type QuestionService struct {
	QuestionRepo *repository.QuestionRepository
	UserRepo     *repository.UserRepository
	Users        *UserService
	listeners    []PointsListener
}

func NewQuestionService(
	questionRepo *repository.QuestionRepository,
	userRepo *repository.UserRepository,
	users *UserService,
) *QuestionService {
	return &QuestionService{
		QuestionRepo: questionRepo,
		UserRepo:     userRepo,
		Users:        users,
	}
}

func (s *QuestionService) AddPointsListener(l PointsListener) {
	s.listeners = append(s.listeners, l)
}

type OptionInput struct {
	Text      string `json:"text"`
	IsCorrect bool   `json:"isCorrect"`
}

type CreateQuestionRequest struct {
	Username     string                `json:"username"`
	QuestionText string                `json:"questionText"`
	CategoryID   string                `json:"categoryId"`
	Difficulty   model.DifficultyLevel `json:"difficulty"`
	Options      []OptionInput         `json:"options"`
}

// validate runs the authoring checks in order and stops at the first failure.
// Empty option slots are allowed in the request; only filled ones count.
func (req *CreateQuestionRequest) validate() ([]OptionInput, error) {
	if strings.TrimSpace(req.Username) == "" {
		return nil, util.NewValidationError(util.ReasonUsernameRequired, "Username is required")
	}
	if strings.TrimSpace(req.QuestionText) == "" {
		return nil, util.NewValidationError(util.ReasonQuestionTextRequired, "Question text is required")
	}
	if req.CategoryID == "" {
		return nil, util.NewValidationError(util.ReasonCategoryRequired, "A category must be selected")
	}

	var filled []OptionInput
	for _, opt := range req.Options {
		if strings.TrimSpace(opt.Text) != "" {
			filled = append(filled, opt)
		}
	}
	if len(filled) < 2 {
		return nil, util.NewValidationError(util.ReasonMinOptions, "At least 2 answer options are required")
	}

	correct := 0
	for _, opt := range filled {
		if opt.IsCorrect {
			correct++
		}
	}
	if correct != 1 {
		return nil, util.NewValidationError(util.ReasonExactlyOneCorrect, "Exactly 1 option must be marked correct")
	}

	return filled, nil
}

// CreateQuestion validates the submission, resolves or creates the author,
// persists the question as pending with its options, and credits the flat
// authoring bonus. The bonus is not contingent on later approval. Partial
// writes are not rolled back.
func (s *QuestionService) CreateQuestion(req CreateQuestionRequest) (*model.Question, error) {
	filled, err := req.validate()
	if err != nil {
		return nil, err
	}

	author, err := s.Users.GetOrCreateByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}

	difficulty := req.Difficulty
	if _, ok := DifficultyPoints[difficulty]; !ok {
		difficulty = model.DifficultyMedium
	}

	question := &model.Question{
		UserID:       author.ID,
		CategoryID:   req.CategoryID,
		QuestionText: strings.TrimSpace(req.QuestionText),
		Difficulty:   difficulty,
		Points:       DifficultyPoints[difficulty],
		Status:       model.StatusPending,
	}
	if err := s.QuestionRepo.Create(question); err != nil {
		return nil, util.NewPersistenceError("question create", err)
	}
	monitoring.QuestionsCreated.Inc()

	options := make([]model.AnswerOption, len(filled))
	for i, opt := range filled {
		options[i] = model.AnswerOption{
			QuestionID:  question.ID,
			OptionText:  strings.TrimSpace(opt.Text),
			IsCorrect:   opt.IsCorrect,
			OptionOrder: i,
		}
	}
	if err := s.QuestionRepo.CreateOptions(options); err != nil {
		// The question row stays; there is no rollback path.
		return nil, util.NewPersistenceError("options create", err)
	}
	question.AnswerOptions = options

	if err := s.UserRepo.AddPoints(author.ID, util.AuthoringBonusPoints); err != nil {
		logger.Log.Error("authoring bonus credit failed",
			zap.String("userId", author.ID), zap.Error(err))
	} else {
		for _, l := range s.listeners {
			l.PointsChanged(author.ID)
		}
	}

	return question, nil
}

func (s *QuestionService) ListByAuthor(username string) ([]model.Question, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		return nil, util.ErrUserNotFound
	}
	return s.QuestionRepo.FindByAuthor(user.ID)
}
