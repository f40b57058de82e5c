package controllers

import (
	"net/http"
	"strconv"

	"github.com/MildKid/DegReviews/models"
	"github.com/MildKid/DegReviews/services"

	"github.com/gin-gonic/gin"
)

// ReportController 报表控制器，词云页面的数据源，只读
type ReportController struct {
	reviews *services.ReviewService
}

func NewReportController(reviews *services.ReviewService) *ReportController {
	return &ReportController{reviews: reviews}
}

// GetWordFrequencies 返回指定列的词频统计
func (rc *ReportController) GetWordFrequencies(c *gin.Context) {
	field := c.DefaultQuery("field", "liked")

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		var err error
		limit, err = strconv.Atoi(raw)
		if err != nil || limit < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "无效的limit参数"})
			return
		}
	}

	words, err := rc.reviews.WordFrequencies(field, limit)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, models.WordFreqResponse{
		Field: field,
		Words: words,
	})
}

// ListReviews 按插入顺序返回全部评价
func (rc *ReportController) ListReviews(c *gin.Context) {
	reviews, err := rc.reviews.All()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询评价失败"})
		return
	}

	responses := make([]models.ReviewResponse, len(reviews))
	for i, r := range reviews {
		responses[i] = models.ReviewResponse{
			ID:          r.ID,
			UserUUID:    r.UserUUID,
			Timestamp:   r.Timestamp,
			Meal:        r.Meal,
			Rating:      r.Rating,
			Liked:       r.Liked,
			Disliked:    r.Disliked,
			WhatTheyAte: r.WhatTheyAte,
		}
	}

	c.JSON(http.StatusOK, gin.H{"reviews": responses})
}
