package controller

import (
	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/service"
	"quantum_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AdminController struct {
	UserRepo         *repository.UserRepository
	LessonService    *service.LessonService
	AnalyticsService *service.AnalyticsService
}

func NewAdminController(userRepo *repository.UserRepository, lessonService *service.LessonService, analyticsService *service.AnalyticsService) *AdminController {
	return &AdminController{
		UserRepo:         userRepo,
		LessonService:    lessonService,
		AnalyticsService: analyticsService,
	}
}

// ListUsers godoc
// @Summary All registered users, newest first
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (c *AdminController) ListUsers(ctx *gin.Context) {
	users, err := c.UserRepo.FindAll()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"users": users})
}

type CreateLessonRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Discipline  string `json:"discipline" binding:"required"`
	Level       string `json:"level" binding:"required"`
	Content     string `json:"content"`
	XPReward    int    `json:"xp_reward" binding:"gte=0"`
}

// CreateLesson godoc
// @Summary Create a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body CreateLessonRequest true "lesson payload"
// @Success 201 {object} util.Response
// @Router /api/admin/lessons [post]
func (c *AdminController) CreateLesson(ctx *gin.Context) {
	var req CreateLessonRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lesson := &model.Lesson{
		Title:       req.Title,
		Description: req.Description,
		Discipline:  req.Discipline,
		Level:       req.Level,
		Content:     req.Content,
		XPReward:    req.XPReward,
	}

	if err := c.LessonService.CreateLesson(lesson); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"lesson": lesson})
}

// GetAnalytics godoc
// @Summary Platform-wide usage analytics
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/analytics [get]
func (c *AdminController) GetAnalytics(ctx *gin.Context) {
	analytics, err := c.AnalyticsService.GetPlatformAnalytics()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"analytics": analytics})
}
