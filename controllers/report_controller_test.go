package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MildKid/DegReviews/config"
	"github.com/MildKid/DegReviews/middleware"
	"github.com/MildKid/DegReviews/models"
	"github.com/MildKid/DegReviews/services"
	"github.com/MildKid/DegReviews/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newReportRouter(t *testing.T) (*gin.Engine, *services.ReviewService) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, config.MigrateDB(db))
	reviews := services.NewReviewService(db, time.UTC)

	utils.InitJWT("test-secret")
	reportController := NewReportController(reviews)

	r := gin.New()
	private := r.Group("/api/v1/report")
	private.Use(middleware.AuthMiddleware())
	private.GET("/wordfreq", reportController.GetWordFrequencies)
	private.GET("/reviews", reportController.ListReviews)
	return r, reviews
}

func seedReviews(t *testing.T, reviews *services.ReviewService) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	reqs := []models.SubmitReviewRequest{
		{Rating: 5, Liked: "Fresh bread and fresh salad", Disliked: "Nothing"},
		{Rating: 2, Liked: "The fresh fruit", Disliked: "Cold soup"},
	}
	for i, req := range reqs {
		_, err := reviews.Append(fmt.Sprintf("user-%d", i), "Lunch", now, req)
		assert.NoError(t, err)
	}
}

func authedGet(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("GET", path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestReportRequiresAuth(t *testing.T) {
	r, _ := newReportRouter(t)

	w := authedGet(r, "/api/v1/report/wordfreq", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = authedGet(r, "/api/v1/report/wordfreq", "not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWordFreqEndpoint(t *testing.T) {
	r, reviews := newReportRouter(t)
	seedReviews(t, reviews)

	token, err := utils.GenerateToken("admin")
	assert.NoError(t, err)

	w := authedGet(r, "/api/v1/report/wordfreq?field=liked", token)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "liked", body["field"])
	words := body["words"].([]interface{})
	top := words[0].(map[string]interface{})
	assert.Equal(t, "fresh", top["word"])
	assert.Equal(t, float64(3), top["count"])

	// 不支持的列直接400
	w = authedGet(r, "/api/v1/report/wordfreq?field=user_uuid", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = authedGet(r, "/api/v1/report/wordfreq?field=liked&limit=abc", token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListReviewsEndpoint(t *testing.T) {
	r, reviews := newReportRouter(t)
	seedReviews(t, reviews)

	token, err := utils.GenerateToken("admin")
	assert.NoError(t, err)

	w := authedGet(r, "/api/v1/report/reviews", token)
	assert.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	list := body["reviews"].([]interface{})
	assert.Len(t, list, 2)
	first := list[0].(map[string]interface{})
	assert.Equal(t, float64(1), first["id"])
	assert.Equal(t, "Lunch", first["meal"])
}
