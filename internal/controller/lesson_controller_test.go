package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/internal/repository"
	"quantum_edu_backend/internal/service"
	"quantum_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLessonRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	progressRepo := repository.NewProgressRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	badgeSvc := service.NewBadgeService(repository.NewBadgeRepository(db), progressRepo)
	lessonCtrl := NewLessonController(
		service.NewLessonService(lessonRepo),
		service.NewProgressService(progressRepo, lessonRepo, badgeSvc),
	)

	// Stand-in for the auth middleware.
	asUser := func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: 1, Role: model.Student})
	}

	router := gin.New()
	router.GET("/api/lessons", lessonCtrl.ListLessons)
	router.GET("/api/lessons/:id", lessonCtrl.GetLesson)
	router.GET("/api/lessons/:id/progress", asUser, lessonCtrl.GetProgress)
	router.POST("/api/lessons/:id/progress", asUser, lessonCtrl.SubmitProgress)
	return router, db
}

func seedLesson(t *testing.T, db *gorm.DB) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		Title:      "Limits and Continuity",
		Discipline: "Mathematics",
		Level:      "Intermediate",
		Content:    "lesson body",
		XPReward:   100,
	}
	require.NoError(t, db.Create(lesson).Error)
	return lesson
}

func getJSON(t *testing.T, router *gin.Engine, path string) (*httptest.ResponseRecorder, util.Response) {
	t.Helper()
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp util.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestListLessonsOmitsContent(t *testing.T) {
	router, db := newLessonRouter(t)
	seedLesson(t, db)

	w, resp := getJSON(t, router, "/api/lessons")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]interface{})
	lessons := data["lessons"].([]interface{})
	require.Len(t, lessons, 1)

	item := lessons[0].(map[string]interface{})
	assert.Equal(t, "Limits and Continuity", item["title"])
	assert.NotContains(t, item, "content")
}

func TestGetLessonIncludesContent(t *testing.T) {
	router, db := newLessonRouter(t)
	lesson := seedLesson(t, db)

	w, resp := getJSON(t, router, "/api/lessons/1")
	require.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]interface{})
	got := data["lesson"].(map[string]interface{})
	assert.Equal(t, lesson.Title, got["title"])
	assert.Equal(t, "lesson body", got["content"])
}

func TestGetLessonNotFound(t *testing.T) {
	router, _ := newLessonRouter(t)

	w, _ := getJSON(t, router, "/api/lessons/999")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetLessonInvalidID(t *testing.T) {
	router, _ := newLessonRouter(t)

	w, _ := getJSON(t, router, "/api/lessons/abc")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProgressRoundTrip(t *testing.T) {
	router, db := newLessonRouter(t)
	seedLesson(t, db)

	// Nothing submitted yet; the default record comes back.
	w, resp := getJSON(t, router, "/api/lessons/1/progress")
	require.Equal(t, http.StatusOK, w.Code)
	progress := resp.Data.(map[string]interface{})["progress"].(map[string]interface{})
	assert.Equal(t, float64(0), progress["progress"])
	assert.Equal(t, false, progress["completed"])

	w = postJSON(t, router, "/api/lessons/1/progress", gin.H{
		"progress": 100, "completed": true,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = getJSON(t, router, "/api/lessons/1/progress")
	require.Equal(t, http.StatusOK, w.Code)
	progress = resp.Data.(map[string]interface{})["progress"].(map[string]interface{})
	assert.Equal(t, float64(100), progress["progress"])
	assert.Equal(t, true, progress["completed"])
	assert.Equal(t, float64(100), progress["xpEarned"])
}

func TestSubmitProgressUnknownLesson(t *testing.T) {
	router, _ := newLessonRouter(t)

	w := postJSON(t, router, "/api/lessons/42/progress", gin.H{
		"progress": 10, "completed": false,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
