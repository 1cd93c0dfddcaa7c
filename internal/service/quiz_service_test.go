package service

import (
	"encoding/json"
	"testing"
	"time"

	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuizService(t *testing.T) (*QuizService, sqlmock.Sqlmock, *miniredis.Miniredis) {
	db, mock := newMockDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	userRepo := repository.NewUserRepository(db)
	answerRepo := repository.NewAnswerRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	badges := NewBadgeService(repository.NewBadgeRepository(db))
	users := NewUserService(userRepo, answerRepo, questionRepo, badges, nil, 0)
	answers := NewAnswerService(questionRepo, answerRepo, userRepo, badges)

	return NewQuizService(users, questionRepo, answerRepo, answers, rdb, time.Minute), mock, mr
}

func seedSession(t *testing.T, mr *miniredis.Miniredis, session *QuizSession) {
	t.Helper()
	payload, err := json.Marshal(session)
	require.NoError(t, err)
	require.NoError(t, mr.Set(sessionKey(session.ID), string(payload)))
}

func playingSession() *QuizSession {
	return &QuizSession{
		ID:       "s1",
		UserID:   "u1",
		Username: "nova",
		State:    SessionPlaying,
		Questions: []PlayableQuestion{{
			ID:           "q1",
			QuestionText: "What is the closest star to Earth?",
			Points:       10,
			Options: []PlayableOption{
				{ID: "opt-sun", Text: "The Sun", OptionOrder: 0},
				{ID: "opt-moon", Text: "The Moon", OptionOrder: 1},
			},
		}},
	}
}

func TestStartSessionServesUnansweredBatch(t *testing.T) {
	svc, mock, mr := newQuizService(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("nova", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name", "total_points"}).
			AddRow("u1", "nova", "Nova", 40))
	mock.ExpectQuery("SELECT (.+) FROM `user_answers`").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"question_id"}).AddRow("q-old"))
	mock.ExpectQuery("SELECT (.+) FROM `questions`").
		WithArgs("approved", "q-old", util.QuizBatchSize).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "question_text", "points", "status", "difficulty"}).
			AddRow("q1", "What is the closest star to Earth?", 10, "approved", "easy").
			AddRow("q2", "Which planet has the most moons?", 25, "approved", "medium"))
	mock.ExpectQuery("SELECT (.+) FROM `answer_options`").
		WithArgs("q1", "q2").
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "question_id", "option_text", "is_correct", "option_order"}).
			AddRow("opt-sun", "q1", "The Sun", true, 0).
			AddRow("opt-moon", "q1", "The Moon", false, 1).
			AddRow("opt-saturn", "q2", "Saturn", true, 0).
			AddRow("opt-mars", "q2", "Mars", false, 1))

	session, err := svc.StartSession("nova")
	require.NoError(t, err)
	assert.Equal(t, SessionPlaying, session.State)
	require.Len(t, session.Questions, 2)
	assert.Zero(t, session.CurrentIndex)
	assert.Equal(t, 40, session.TotalPoints)

	// Correctness flags never reach the stored session.
	payload, err := mr.Get(sessionKey(session.ID))
	require.NoError(t, err)
	assert.NotContains(t, payload, "isCorrect")

	ttl := mr.TTL(sessionKey(session.ID))
	assert.Equal(t, time.Minute, ttl)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartSessionWithNothingLeftStaysInSetup(t *testing.T) {
	svc, mock, _ := newQuizService(t)

	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("nova", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "display_name", "total_points"}).
			AddRow("u1", "nova", "Nova", 40))
	mock.ExpectQuery("SELECT (.+) FROM `user_answers`").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"question_id"}))
	mock.ExpectQuery("SELECT (.+) FROM `questions`").
		WithArgs("approved", util.QuizBatchSize).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	session, err := svc.StartSession("nova")
	require.NoError(t, err)
	assert.Equal(t, SessionSetup, session.State)
	assert.Empty(t, session.Questions)
	assert.Contains(t, session.Message, "answered every available question")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStartSessionRequiresUsername(t *testing.T) {
	svc, _, _ := newQuizService(t)

	_, err := svc.StartSession("")
	assert.ErrorIs(t, err, util.ErrInvalidInput)
}

func TestSubmitCurrentThenAdvanceFinishes(t *testing.T) {
	svc, mock, mr := newQuizService(t)
	seedSession(t, mr, playingSession())

	questionWithOptions(mock, "q1", 10)
	mock.ExpectExec("INSERT INTO `user_answers`").
		WillReturnResult(sqlmock.NewResult(1, 1))

	session, result, err := svc.SubmitCurrent("s1", "opt-moon")
	require.NoError(t, err)
	assert.Equal(t, SessionAnswered, session.State)
	assert.False(t, result.IsCorrect)
	assert.Zero(t, session.Score)
	assert.Equal(t, "opt-moon", session.SelectedOptionID)

	// The only question was answered, so advancing finishes the run.
	session, err = svc.Advance("s1")
	require.NoError(t, err)
	assert.Equal(t, SessionFinished, session.State)

	_, err = svc.Advance("s1")
	assert.ErrorIs(t, err, util.ErrSessionWrongState)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitCurrentCorrectBumpsScore(t *testing.T) {
	svc, mock, mr := newQuizService(t)
	seedSession(t, mr, playingSession())

	questionWithOptions(mock, "q1", 10)
	mock.ExpectExec("INSERT INTO `user_answers`").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT (.+) FROM `users`").
		WithArgs("u1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "total_points"}).
			AddRow("u1", "nova", 40))
	mock.ExpectExec("UPDATE `users`").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM `badges`").
		WithArgs(50).
		WillReturnRows(badgeRows())
	mock.ExpectQuery("SELECT (.+) FROM `user_badges`").
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"badge_id"}))

	session, result, err := svc.SubmitCurrent("s1", "opt-sun")
	require.NoError(t, err)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, 1, session.Score)
	assert.Equal(t, 50, session.TotalPoints)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubmitCurrentRequiresSelection(t *testing.T) {
	svc, _, mr := newQuizService(t)
	seedSession(t, mr, playingSession())

	_, _, err := svc.SubmitCurrent("s1", "")
	assert.ErrorIs(t, err, util.ErrSessionNoSelection)
}

func TestSubmitCurrentOutsidePlayingState(t *testing.T) {
	svc, _, mr := newQuizService(t)
	session := playingSession()
	session.State = SessionAnswered
	seedSession(t, mr, session)

	_, _, err := svc.SubmitCurrent("s1", "opt-sun")
	assert.ErrorIs(t, err, util.ErrSessionWrongState)
}

func TestSessionNotFound(t *testing.T) {
	svc, _, _ := newQuizService(t)

	_, err := svc.GetSession("missing")
	assert.ErrorIs(t, err, util.ErrSessionNotFound)
}

func TestResetReturnsSessionToSetup(t *testing.T) {
	svc, _, mr := newQuizService(t)
	session := playingSession()
	session.State = SessionFinished
	session.Score = 1
	seedSession(t, mr, session)

	fresh, err := svc.Reset("s1")
	require.NoError(t, err)
	assert.Equal(t, SessionSetup, fresh.State)
	assert.Zero(t, fresh.Score)
	assert.Empty(t, fresh.Questions)
	assert.Empty(t, fresh.SelectedOptionID)
}
