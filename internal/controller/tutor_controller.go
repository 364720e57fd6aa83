package controller

import (
	"errors"
	"strconv"

	"quantum_edu_backend/internal/service"
	"quantum_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type TutorController struct {
	TutorService *service.TutorService
}

func NewTutorController(tutorService *service.TutorService) *TutorController {
	return &TutorController{TutorService: tutorService}
}

type AskRequest struct {
	Question            string                `json:"question" binding:"required"`
	LessonID            *uint                 `json:"lessonId"`
	ConversationHistory []service.ChatMessage `json:"conversationHistory"`
}

// Ask godoc
// @Summary Ask the AI tutor a question
// @Description Forwards the question with conversation history to the completion provider. Exchanges with a lessonId are persisted.
// @Tags tutor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body AskRequest true "question payload"
// @Success 200 {object} util.Response
// @Router /api/tutor/ask [post]
func (c *TutorController) Ask(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req AskRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.TutorService.AskQuestion(ctx.Request.Context(), user.UserID, req.LessonID, req.Question, req.ConversationHistory)
	if err != nil {
		if errors.Is(err, util.ErrQuestionRequired) {
			util.BadRequest(ctx, "Question is required")
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// GetHistory godoc
// @Summary Recent tutor exchanges for a lesson, oldest first
// @Tags tutor
// @Produce json
// @Security ApiKeyAuth
// @Param lessonId path int true "lesson id"
// @Success 200 {object} util.Response
// @Router /api/tutor/history/{lessonId} [get]
func (c *TutorController) GetHistory(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	lessonID, err := strconv.ParseUint(ctx.Param("lessonId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid lesson id")
		return
	}

	history, err := c.TutorService.GetHistory(user.UserID, uint(lessonID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"history": history})
}

type ExercisesRequest struct {
	Topic string `json:"topic" binding:"required"`
	Level string `json:"level" binding:"required"`
}

// GenerateExercises godoc
// @Summary Generate three practice exercises for a topic
// @Tags tutor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ExercisesRequest true "topic and level"
// @Success 200 {object} util.Response
// @Router /api/tutor/exercises [post]
func (c *TutorController) GenerateExercises(ctx *gin.Context) {
	var req ExercisesRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exercises, err := c.TutorService.GenerateExercises(ctx.Request.Context(), req.Topic, req.Level)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"exercises": exercises})
}

type ExplainRequest struct {
	Concept    string `json:"concept" binding:"required"`
	Discipline string `json:"discipline" binding:"required"`
	Level      string `json:"level" binding:"required"`
}

// ExplainConcept godoc
// @Summary Explain a concept at the requested level
// @Tags tutor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ExplainRequest true "concept payload"
// @Success 200 {object} util.Response
// @Router /api/tutor/explain [post]
func (c *TutorController) ExplainConcept(ctx *gin.Context) {
	var req ExplainRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	explanation, err := c.TutorService.ExplainConcept(ctx.Request.Context(), req.Concept, req.Discipline, req.Level)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"explanation": explanation})
}

type EvaluateRequest struct {
	Question       string `json:"question" binding:"required"`
	StudentAnswer  string `json:"studentAnswer" binding:"required"`
	ExpectedAnswer string `json:"expectedAnswer" binding:"required"`
	Discipline     string `json:"discipline" binding:"required"`
}

// EvaluateAnswer godoc
// @Summary Evaluate a student answer against the expected one
// @Tags tutor
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body EvaluateRequest true "evaluation payload"
// @Success 200 {object} util.Response
// @Router /api/tutor/evaluate [post]
func (c *TutorController) EvaluateAnswer(ctx *gin.Context) {
	var req EvaluateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	feedback, err := c.TutorService.EvaluateAnswer(ctx.Request.Context(), req.Question, req.StudentAnswer, req.ExpectedAnswer, req.Discipline)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"feedback": feedback})
}
