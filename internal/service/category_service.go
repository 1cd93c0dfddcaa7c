package service

import (
	"cosmic_quiz_backend/internal/model"
	"cosmic_quiz_backend/internal/repository"
	"cosmic_quiz_backend/internal/util"
	"errors"

	"gorm.io/gorm"
)

type CategoryService struct {
	CategoryRepo *repository.CategoryRepository
}

func NewCategoryService(categoryRepo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{CategoryRepo: categoryRepo}
}

func (s *CategoryService) ListCategories() ([]model.Category, error) {
	return s.CategoryRepo.FindAll()
}

type CategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func (s *CategoryService) CreateCategory(req CategoryRequest) (*model.Category, error) {
	category := &model.Category{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.CategoryRepo.Create(category); err != nil {
		return nil, util.NewPersistenceError("category create", err)
	}
	return category, nil
}

func (s *CategoryService) SetIcon(categoryID, iconURL string) (*model.Category, error) {
	category, err := s.CategoryRepo.FindByID(categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCategoryNotFound
		}
		return nil, util.NewPersistenceError("category lookup", err)
	}
	category.Icon = iconURL
	if err := s.CategoryRepo.Update(category); err != nil {
		return nil, util.NewPersistenceError("category update", err)
	}
	return category, nil
}
