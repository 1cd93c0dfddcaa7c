package service

import (
	"context"
	"cosmic_quiz_backend/internal/model"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

// QuizService drives the session state machine. Sessions live in Redis as
// JSON under quiz:session:<id> with a sliding TTL, so any instance can serve
// any step of a run.
type QuizService struct {
	Users        *UserService
	QuestionRepo *repository.QuestionRepository
	AnswerRepo   *repository.AnswerRepository
	Answers      *AnswerService
	Redis        *redis.Client
	SessionTTL   time.Duration
}

func NewQuizService(
	users *UserService,
	questionRepo *repository.QuestionRepository,
	answerRepo *repository.AnswerRepository,
	answers *AnswerService,
	rdb *redis.Client,
	sessionTTL time.Duration,
) *QuizService {
	return &QuizService{
		Users:        users,
		QuestionRepo: questionRepo,
		AnswerRepo:   answerRepo,
		Answers:      answers,
		Redis:        rdb,
		SessionTTL:   sessionTTL,
	}
}

func sessionKey(id string) string {
	return "quiz:session:" + id
}

func (s *QuizService) saveSession(ctx context.Context, session *QuizSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return err
	}
	if err := s.Redis.Set(ctx, sessionKey(session.ID), payload, s.SessionTTL).Err(); err != nil {
		return util.NewPersistenceError("session write", err)
	}
	return nil
}

func (s *QuizService) loadSession(ctx context.Context, id string) (*QuizSession, error) {
	payload, err := s.Redis.Get(ctx, sessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, util.ErrSessionNotFound
		}
		return nil, util.NewPersistenceError("session read", err)
	}
	var session QuizSession
	if err := json.Unmarshal([]byte(payload), &session); err != nil {
		return nil, util.NewPersistenceError("session decode", err)
	}
	return &session, nil
}

// StartSession resolves or creates the player, fetches a batch of approved
// questions the player has not answered, and moves the session to playing.
// An empty batch is not an error: the session stays in setup with an
// informational message.
func (s *QuizService) StartSession(username string) (*QuizSession, error) {
	if username == "" {
		return nil, util.ErrInvalidInput
	}

	user, err := s.Users.GetOrCreateByUsername(username)
	if err != nil {
		return nil, err
	}

	answeredIDs, err := s.AnswerRepo.AnsweredQuestionIDs(user.ID)
	if err != nil {
		return nil, util.NewPersistenceError("answered lookup", err)
	}

	questions, err := s.QuestionRepo.FindApprovedExcluding(answeredIDs, util.QuizBatchSize)
	if err != nil {
		return nil, util.NewPersistenceError("question batch", err)
	}

	session := &QuizSession{
		ID:          model.GenerateUUID(),
		UserID:      user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		TotalPoints: user.TotalPoints,
		State:       SessionSetup,
	}

	if len(questions) == 0 {
		session.Message = "You have answered every available question. Come back when new ones are approved, or create your own."
	} else {
		session.State = SessionPlaying
		session.Questions = make([]PlayableQuestion, len(questions))
		for i := range questions {
			session.Questions[i] = toPlayable(&questions[i])
		}
	}

	if err := s.saveSession(context.Background(), session); err != nil {
		return nil, err
	}
	return session, nil
}

// SubmitCurrent answers the question the session is on. Requires a selected
// option and the playing state; delegates the write to the answer service and
// moves to answered.
func (s *QuizService) SubmitCurrent(sessionID, selectedOptionID string) (*QuizSession, *SubmitResult, error) {
	ctx := context.Background()
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	if session.State != SessionPlaying {
		return nil, nil, util.ErrSessionWrongState
	}
	if selectedOptionID == "" {
		return nil, nil, util.ErrSessionNoSelection
	}
	current := session.Current()
	if current == nil {
		return nil, nil, util.ErrSessionWrongState
	}

	result, err := s.Answers.SubmitAnswer(session.UserID, current.ID, selectedOptionID)
	if err != nil {
		return nil, nil, err
	}

	session.SelectedOptionID = selectedOptionID
	session.State = SessionAnswered
	if result.IsCorrect {
		session.Score++
		session.TotalPoints = result.NewTotalPoints
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, nil, err
	}
	return session, result, nil
}

// Advance moves an answered session to the next question, or to finished
// after the last one. The final score counts correct answers out of the
// fetched batch only.
func (s *QuizService) Advance(sessionID string) (*QuizSession, error) {
	ctx := context.Background()
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.State != SessionAnswered {
		return nil, util.ErrSessionWrongState
	}

	if session.onLastQuestion() {
		session.State = SessionFinished
	} else {
		session.CurrentIndex++
		session.SelectedOptionID = ""
		session.State = SessionPlaying
	}

	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Reset clears the session back to setup for a fresh run.
func (s *QuizService) Reset(sessionID string) (*QuizSession, error) {
	ctx := context.Background()
	session, err := s.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	session.reset()
	if err := s.saveSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *QuizService) GetSession(sessionID string) (*QuizSession, error) {
	return s.loadSession(context.Background(), sessionID)
}
