package service

import (
	"context"
	"cosmic_quiz_backend/internal/model"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"
	"cosmic_quiz_backend/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type UserService struct {
	UserRepo     *repository.UserRepository
	AnswerRepo   *repository.AnswerRepository
	QuestionRepo *repository.QuestionRepository
	Badges       *BadgeService
	Redis        *redis.Client
	cacheTTL     time.Duration
}

func NewUserService(
	userRepo *repository.UserRepository,
	answerRepo *repository.AnswerRepository,
	questionRepo *repository.QuestionRepository,
	badges *BadgeService,
	rdb *redis.Client,
	leaderboardCacheTTL time.Duration,
) *UserService {
	return &UserService{
		UserRepo:     userRepo,
		AnswerRepo:   answerRepo,
		QuestionRepo: questionRepo,
		Badges:       badges,
		Redis:        rdb,
		cacheTTL:     leaderboardCacheTTL,
	}
}

// GetOrCreateByUsername resolves a player by username, creating the record on
// first contact with display name = username and zero points.
func (s *UserService) GetOrCreateByUsername(username string) (*model.User, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NewPersistenceError("user lookup", err)
	}

	user = &model.User{
		Username:    username,
		DisplayName: username,
		TotalPoints: 0,
	}
	if err := s.UserRepo.Create(user); err != nil {
		return nil, util.NewPersistenceError("user create", err)
	}
	logger.Log.Info("user created", zap.String("username", username))
	return user, nil
}

type Profile struct {
	User     *model.User        `json:"user"`
	Badges   []model.UserBadge  `json:"badges"`
	Answers  []model.UserAnswer `json:"recentAnswers"`
	Authored []model.Question   `json:"authoredQuestions"`
}

// GetProfile aggregates the profile page views. The three collection reads
// are unrelated, so they run concurrently.
func (s *UserService) GetProfile(username string) (*Profile, error) {
	user, err := s.UserRepo.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, util.NewPersistenceError("user lookup", err)
	}

	type badgesRes struct {
		grants []model.UserBadge
		err    error
	}
	type answersRes struct {
		answers []model.UserAnswer
		err     error
	}
	type authoredRes struct {
		questions []model.Question
		err       error
	}

	badgesCh := make(chan badgesRes, 1)
	answersCh := make(chan answersRes, 1)
	authoredCh := make(chan authoredRes, 1)

	go func() {
		grants, err := s.Badges.GetUserBadges(user.ID)
		badgesCh <- badgesRes{grants, err}
	}()
	go func() {
		answers, err := s.AnswerRepo.FindByUser(user.ID, 20)
		answersCh <- answersRes{answers, err}
	}()
	go func() {
		questions, err := s.QuestionRepo.FindByAuthor(user.ID)
		authoredCh <- authoredRes{questions, err}
	}()

	badges := <-badgesCh
	answers := <-answersCh
	authored := <-authoredCh
	if badges.err != nil {
		return nil, util.NewPersistenceError("badge history", badges.err)
	}
	if answers.err != nil {
		return nil, util.NewPersistenceError("answer history", answers.err)
	}
	if authored.err != nil {
		return nil, util.NewPersistenceError("authored questions", authored.err)
	}

	return &Profile{
		User:     user,
		Badges:   badges.grants,
		Answers:  answers.answers,
		Authored: authored.questions,
	}, nil
}

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
	TotalPoints int    `json:"totalPoints"`
}

func leaderboardCacheKey(limit int) string {
	return fmt.Sprintf("leaderboard:top:%d", limit)
}

// GetLeaderboard serves the top list from Redis when fresh, falling back to
// the database on any cache problem. Cache failures are logged, never fatal.
func (s *UserService) GetLeaderboard(limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 {
		limit = util.DefaultLeaderboardLimit
	}
	ctx := context.Background()
	key := leaderboardCacheKey(limit)

	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, key).Result(); err == nil {
			var entries []LeaderboardEntry
			if err := json.Unmarshal([]byte(cached), &entries); err == nil {
				return entries, nil
			}
		}
	}

	users, err := s.UserRepo.FindTopByPoints(limit)
	if err != nil {
		return nil, util.NewPersistenceError("leaderboard read", err)
	}

	entries := make([]LeaderboardEntry, len(users))
	for i, user := range users {
		entries[i] = LeaderboardEntry{
			Rank:        i + 1,
			Username:    user.Username,
			DisplayName: user.DisplayName,
			TotalPoints: user.TotalPoints,
		}
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(entries); err == nil {
			if err := s.Redis.Set(ctx, key, payload, s.cacheTTL).Err(); err != nil {
				logger.Log.Warn("leaderboard cache write failed", zap.Error(err))
			}
		}
	}

	return entries, nil
}

// PointsChanged implements PointsListener: any point change makes every
// cached top list stale.
func (s *UserService) PointsChanged(userID string) {
	if s.Redis == nil {
		return
	}
	ctx := context.Background()
	iter := s.Redis.Scan(ctx, 0, "leaderboard:top:*", 0).Iterator()
	for iter.Next(ctx) {
		if err := s.Redis.Del(ctx, iter.Val()).Err(); err != nil {
			logger.Log.Warn("leaderboard cache invalidation failed",
				zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	if err := iter.Err(); err != nil {
		logger.Log.Warn("leaderboard cache scan failed", zap.Error(err))
	}
}
