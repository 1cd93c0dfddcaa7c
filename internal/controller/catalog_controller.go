package controller

import (
	"cosmic_quiz_backend/internal/service"
	"cosmic_quiz_backend/internal/util"
	"errors"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// CatalogController serves the category and badge catalogs plus their
// moderator-only admin operations.
type CatalogController struct {
	CategoryService *service.CategoryService
	BadgeService    *service.BadgeService
	Storage         *service.StorageService
}

func NewCatalogController(
	categoryService *service.CategoryService,
	badgeService *service.BadgeService,
	storage *service.StorageService,
) *CatalogController {
	return &CatalogController{
		CategoryService: categoryService,
		BadgeService:    badgeService,
		Storage:         storage,
	}
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/categories [get]
func (c *CatalogController) ListCategories(ctx *gin.Context) {
	categories, err := c.CategoryService.ListCategories()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, categories)
}

// @Summary List badges
// @Tags catalog
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/badges [get]
func (c *CatalogController) ListBadges(ctx *gin.Context) {
	badges, err := c.BadgeService.ListBadges()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, badges)
}

// @Summary Create a category
// @Tags catalog
// @Accept json
// @Produce json
// @Security ModeratorKey
// @Param body body service.CategoryRequest true "Category"
// @Success 201 {object} util.Response
// @Router /api/admin/categories [post]
func (c *CatalogController) CreateCategory(ctx *gin.Context) {
	var req service.CategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	category, err := c.CategoryService.CreateCategory(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, category)
}

// @Summary Create a badge
// @Tags catalog
// @Accept json
// @Produce json
// @Security ModeratorKey
// @Param body body service.BadgeRequest true "Badge"
// @Success 201 {object} util.Response
// @Router /api/admin/badges [post]
func (c *CatalogController) CreateBadge(ctx *gin.Context) {
	var req service.BadgeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	badge, err := c.BadgeService.CreateBadge(req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, badge)
}

// uploadIcon stores the multipart "icon" file and returns its URL.
func (c *CatalogController) uploadIcon(ctx *gin.Context, prefix, id string) (string, error) {
	file, err := ctx.FormFile("icon")
	if err != nil {
		return "", util.ErrInvalidInput
	}

	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, util.MimeImage) {
		return "", util.ErrUnsupportedIconType
	}

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := prefix + "/" + id + filepath.Ext(file.Filename)
	return c.Storage.UploadIcon(ctx.Request.Context(), filename, src, file.Size, contentType)
}

// @Summary Upload a badge icon
// @Tags catalog
// @Accept mpfd
// @Produce json
// @Security ModeratorKey
// @Param id path string true "Badge ID"
// @Param icon formData file true "Icon image"
// @Success 200 {object} util.Response
// @Router /api/admin/badges/{id}/icon [post]
func (c *CatalogController) UploadBadgeIcon(ctx *gin.Context) {
	id := ctx.Param("id")
	url, err := c.uploadIcon(ctx, "badges", id)
	if err != nil {
		c.respondIconError(ctx, err)
		return
	}

	badge, err := c.BadgeService.SetIcon(id, url)
	if err != nil {
		if errors.Is(err, util.ErrBadgeNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, badge)
}

// @Summary Upload a category icon
// @Tags catalog
// @Accept mpfd
// @Produce json
// @Security ModeratorKey
// @Param id path string true "Category ID"
// @Param icon formData file true "Icon image"
// @Success 200 {object} util.Response
// @Router /api/admin/categories/{id}/icon [post]
func (c *CatalogController) UploadCategoryIcon(ctx *gin.Context) {
	id := ctx.Param("id")
	url, err := c.uploadIcon(ctx, "categories", id)
	if err != nil {
		c.respondIconError(ctx, err)
		return
	}

	category, err := c.CategoryService.SetIcon(id, url)
	if err != nil {
		if errors.Is(err, util.ErrCategoryNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, category)
}

func (c *CatalogController) respondIconError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidInput):
		util.BadRequest(ctx, "icon file is required")
	case errors.Is(err, util.ErrUnsupportedIconType):
		util.BadRequest(ctx, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
