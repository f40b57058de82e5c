package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/MildKid/DegReviews/config"
	"github.com/MildKid/DegReviews/models"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestReviewService(t *testing.T) *ReviewService {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	assert.NoError(t, err)
	assert.NoError(t, config.MigrateDB(db))
	return NewReviewService(db, time.UTC)
}

func sampleRequest() models.SubmitReviewRequest {
	return models.SubmitReviewRequest{
		Rating:      5,
		Liked:       "Food was great and fresh",
		Disliked:    "Too salty",
		WhatTheyAte: "Pasta with meatballs",
	}
}

func TestAppendRoundTrip(t *testing.T) {
	rs := newTestReviewService(t)
	now := time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC)

	review, err := rs.Append("user-1", "Lunch", now, sampleRequest())
	assert.NoError(t, err)
	assert.Equal(t, uint(1), review.ID)
	assert.Equal(t, "2024-05-01 12:30:45", review.Timestamp)

	dinner := sampleRequest()
	dinner.Liked = "Great roast chicken tonight"
	review2, err := rs.Append("user-1", "Dinner", now.Add(6*time.Hour), dinner)
	assert.NoError(t, err)
	assert.Greater(t, review2.ID, review.ID)

	all, err := rs.All()
	assert.NoError(t, err)
	assert.Len(t, all, 2)
	// 按插入顺序返回，字段原样读回
	assert.Equal(t, "Lunch", all[0].Meal)
	assert.Equal(t, "Food was great and fresh", all[0].Liked)
	assert.Equal(t, "Too salty", all[0].Disliked)
	assert.Equal(t, "Pasta with meatballs", all[0].WhatTheyAte)
	assert.Equal(t, 5, all[0].Rating)
	assert.Equal(t, "user-1", all[0].UserUUID)
	assert.Equal(t, "Dinner", all[1].Meal)
}

func TestAppendDuplicateSameMealSameDay(t *testing.T) {
	rs := newTestReviewService(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := rs.Append("user-1", "Lunch", now, sampleRequest())
	assert.NoError(t, err)

	// 唯一索引兜底：同身份同日期同餐段的第二条按已提交处理
	_, err = rs.Append("user-1", "Lunch", now.Add(10*time.Minute), sampleRequest())
	assert.ErrorIs(t, err, ErrAlreadySubmitted)

	all, err := rs.All()
	assert.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAppendSameMealNextDayAllowed(t *testing.T) {
	rs := newTestReviewService(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := rs.Append("user-1", "Lunch", now, sampleRequest())
	assert.NoError(t, err)

	_, err = rs.Append("user-1", "Lunch", now.AddDate(0, 0, 1), sampleRequest())
	assert.NoError(t, err)

	// 不同身份同餐段也互不影响
	_, err = rs.Append("user-2", "Lunch", now, sampleRequest())
	assert.NoError(t, err)
}

func TestWordFrequencies(t *testing.T) {
	rs := newTestReviewService(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	reqs := []models.SubmitReviewRequest{
		{Rating: 5, Liked: "Fresh salad, fresh bread!", Disliked: "Nothing today"},
		{Rating: 3, Liked: "The bread was fresh", Disliked: "Soup too salty"},
	}
	for i, req := range reqs {
		_, err := rs.Append(fmt.Sprintf("user-%d", i), "Lunch", now, req)
		assert.NoError(t, err)
	}

	words, err := rs.WordFrequencies("liked", 0)
	assert.NoError(t, err)
	// fresh 出现3次排第一，标点和大小写被归一
	assert.Equal(t, models.WordCount{Word: "fresh", Count: 3}, words[0])
	assert.Equal(t, models.WordCount{Word: "bread", Count: 2}, words[1])

	top1, err := rs.WordFrequencies("liked", 1)
	assert.NoError(t, err)
	assert.Len(t, top1, 1)

	disliked, err := rs.WordFrequencies("disliked", 0)
	assert.NoError(t, err)
	assert.NotEmpty(t, disliked)

	// 只开放 liked/disliked 两列
	_, err = rs.WordFrequencies("user_uuid", 0)
	assert.Error(t, err)
}
