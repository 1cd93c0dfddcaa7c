package service

import (
	"cosmic_quiz_backend/internal/model"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"
	"cosmic_quiz_backend/pkg/logger"
	"cosmic_quiz_backend/pkg/monitoring"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type BadgeService struct {
	BadgeRepo *repository.BadgeRepository
}

func NewBadgeService(badgeRepo *repository.BadgeRepository) *BadgeService {
	return &BadgeService{BadgeRepo: badgeRepo}
}

// EvaluateBadges grants every badge whose threshold is within totalPoints and
// that the user does not already hold. Grants are independent: a failed insert
// is collected into the returned error but does not stop the remaining
// grants. Already-held badges are never re-granted, and nothing is ever
// revoked, even if a threshold were somehow no longer met.
func (s *BadgeService) EvaluateBadges(userID string, totalPoints int) ([]model.Badge, error) {
	qualifying, err := s.BadgeRepo.FindQualifying(totalPoints)
	if err != nil {
		return nil, util.NewPersistenceError("badge lookup", err)
	}

	heldIDs, err := s.BadgeRepo.GrantedBadgeIDs(userID)
	if err != nil {
		return nil, util.NewPersistenceError("user badge lookup", err)
	}

	held := make(map[string]bool, len(heldIDs))
	for _, id := range heldIDs {
		held[id] = true
	}

	var granted []model.Badge
	var grantErrs []error
	for _, badge := range qualifying {
		if held[badge.ID] {
			continue
		}
		grant := &model.UserBadge{
			UserID:   userID,
			BadgeID:  badge.ID,
			EarnedAt: time.Now(),
		}
		if err := s.BadgeRepo.CreateGrant(grant); err != nil {
			grantErrs = append(grantErrs, util.NewPersistenceError("badge grant", err))
			continue
		}
		monitoring.BadgesAwarded.Inc()
		logger.Log.Info("badge granted",
			zap.String("userId", userID),
			zap.String("badge", badge.Name),
			zap.Int("requiredPoints", badge.RequiredPoints),
		)
		granted = append(granted, badge)
	}

	return granted, errors.Join(grantErrs...)
}

func (s *BadgeService) ListBadges() ([]model.Badge, error) {
	return s.BadgeRepo.FindAll()
}

func (s *BadgeService) GetUserBadges(userID string) ([]model.UserBadge, error) {
	return s.BadgeRepo.FindUserBadges(userID)
}

type BadgeRequest struct {
	Name           string `json:"name" binding:"required"`
	Description    string `json:"description"`
	RequiredPoints int    `json:"requiredPoints" binding:"required,min=1"`
	Color          string `json:"color"`
}

func (s *BadgeService) CreateBadge(req BadgeRequest) (*model.Badge, error) {
	badge := &model.Badge{
		Name:           req.Name,
		Description:    req.Description,
		RequiredPoints: req.RequiredPoints,
		Color:          req.Color,
	}
	if err := s.BadgeRepo.Create(badge); err != nil {
		return nil, util.NewPersistenceError("badge create", err)
	}
	return badge, nil
}

func (s *BadgeService) SetIcon(badgeID, iconURL string) (*model.Badge, error) {
	badge, err := s.BadgeRepo.FindByID(badgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrBadgeNotFound
		}
		return nil, util.NewPersistenceError("badge lookup", err)
	}
	badge.Icon = iconURL
	if err := s.BadgeRepo.Update(badge); err != nil {
		return nil, util.NewPersistenceError("badge update", err)
	}
	return badge, nil
}
