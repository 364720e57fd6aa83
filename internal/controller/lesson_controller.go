package controller

import (
	"errors"
	"strconv"

	"quantum_edu_backend/internal/service"
	"quantum_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService   *service.LessonService
	ProgressService *service.ProgressService
}

func NewLessonController(lessonService *service.LessonService, progressService *service.ProgressService) *LessonController {
	return &LessonController{
		LessonService:   lessonService,
		ProgressService: progressService,
	}
}

func lessonIDParam(ctx *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return 0, false
	}
	return uint(id), true
}

// ListLessons godoc
// @Summary Lesson catalog ordered by discipline and level
// @Tags lessons
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/lessons [get]
func (c *LessonController) ListLessons(ctx *gin.Context) {
	lessons, err := c.LessonService.ListLessons()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"lessons": lessons})
}

// GetLesson godoc
// @Summary Lesson detail including content
// @Tags lessons
// @Produce json
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/lessons/{id} [get]
func (c *LessonController) GetLesson(ctx *gin.Context) {
	id, ok := lessonIDParam(ctx)
	if !ok {
		return
	}

	lesson, err := c.LessonService.GetLesson(id)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"lesson": lesson})
}

// GetProgress godoc
// @Summary Current user's progress for a lesson
// @Tags lessons
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/progress [get]
func (c *LessonController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := lessonIDParam(ctx)
	if !ok {
		return
	}

	progress, err := c.ProgressService.GetProgress(user.UserID, id)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"progress": progress})
}

type SubmitProgressRequest struct {
	Progress  int  `json:"progress"`
	Completed bool `json:"completed"`
}

// SubmitProgress godoc
// @Summary Submit progress for a lesson (upsert)
// @Tags lessons
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "lesson id"
// @Param body body SubmitProgressRequest true "progress payload"
// @Success 200 {object} util.Response
// @Router /api/lessons/{id}/progress [post]
func (c *LessonController) SubmitProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	id, ok := lessonIDParam(ctx)
	if !ok {
		return
	}

	var req SubmitProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	progress, err := c.ProgressService.SubmitProgress(user.UserID, id, req.Progress, req.Completed)
	if err != nil {
		if errors.Is(err, util.ErrLessonNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"progress": progress})
}
