package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/MildKid/DegReviews/models"
	"gorm.io/gorm"
)

// TimestampLayout 与历史数据一致的时间戳格式
const TimestampLayout = "2006-01-02 15:04:05"

// ReviewService 评价存储：只追加，不更新不删除
type ReviewService struct {
	db  *gorm.DB
	loc *time.Location
}

func NewReviewService(db *gorm.DB, loc *time.Location) *ReviewService {
	return &ReviewService{db: db, loc: loc}
}

// Append 落库一条评价，单事务，ID由数据库分配
// 撞到 (user_uuid, review_date, meal) 唯一索引说明并发重复提交，按已提交处理
func (s *ReviewService) Append(userUUID, meal string, now time.Time, req models.SubmitReviewRequest) (*models.Review, error) {
	local := now.In(s.loc)
	review := models.Review{
		UserUUID:    userUUID,
		Timestamp:   local.Format(TimestampLayout),
		ReviewDate:  local.Format("2006-01-02"),
		Meal:        meal,
		Rating:      req.Rating,
		Liked:       req.Liked,
		Disliked:    req.Disliked,
		WhatTheyAte: req.WhatTheyAte,
	}

	// 开启事务
	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Create(&review).Error; err != nil {
		tx.Rollback()
		if isDuplicateKeyErr(err) {
			return nil, ErrAlreadySubmitted
		}
		return nil, fmt.Errorf("评价写入失败: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, fmt.Errorf("评价写入失败: %w", err)
	}

	return &review, nil
}

func isDuplicateKeyErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// All 按插入顺序返回全部评价
func (s *ReviewService) All() ([]models.Review, error) {
	var reviews []models.Review
	if err := s.db.Order("id asc").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("查询评价失败: %w", err)
	}
	return reviews, nil
}

// 词云数据只开放这两列
var wordFreqColumns = map[string]bool{
	"liked":    true,
	"disliked": true,
}

// WordFrequencies 统计指定列的词频，按次数降序，limit<=0表示不截断
func (s *ReviewService) WordFrequencies(column string, limit int) ([]models.WordCount, error) {
	if !wordFreqColumns[column] {
		return nil, fmt.Errorf("不支持的词频列: %s", column)
	}

	var texts []string
	if err := s.db.Model(&models.Review{}).Pluck(column, &texts).Error; err != nil {
		return nil, fmt.Errorf("查询评价文本失败: %w", err)
	}

	counts := make(map[string]int)
	for _, text := range texts {
		for _, word := range strings.Fields(strings.ToLower(text)) {
			word = strings.Trim(word, ".,!?;:\"'()[]")
			if word == "" {
				continue
			}
			counts[word]++
		}
	}

	words := make([]models.WordCount, 0, len(counts))
	for w, c := range counts {
		words = append(words, models.WordCount{Word: w, Count: c})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})

	if limit > 0 && len(words) > limit {
		words = words[:limit]
	}
	return words, nil
}
