package controller

import (
	"cosmic_quiz_backend/internal/service"
	"cosmic_quiz_backend/internal/util"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService *service.UserService
	Hub         *service.LeaderboardHub
}

func NewUserController(userService *service.UserService, hub *service.LeaderboardHub) *UserController {
	return &UserController{UserService: userService, Hub: hub}
}

// @Summary User profile
// @Description User record, earned badges, recent answers, and authored questions
// @Tags users
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/users/{username}/profile [get]
func (c *UserController) GetProfile(ctx *gin.Context) {
	profile, err := c.UserService.GetProfile(ctx.Param("username"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, profile)
}

// @Summary Leaderboard
// @Tags users
// @Produce json
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {object} util.Response
// @Router /api/leaderboard [get]
func (c *UserController) GetLeaderboard(ctx *gin.Context) {
	limit := util.DefaultLeaderboardLimit
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil {
			limit = l
		}
	}

	entries, err := c.UserService.GetLeaderboard(limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, entries)
}
