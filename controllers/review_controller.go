package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/MildKid/DegReviews/config"
	"github.com/MildKid/DegReviews/models"
	"github.com/MildKid/DegReviews/services"
	"github.com/MildKid/DegReviews/utils"

	"github.com/gin-gonic/gin"
)

// ReviewController 评价表单控制器，串起 闸门→校验→落库→标记 的提交流程
type ReviewController struct {
	schedule  *services.ScheduleService
	gate      *services.GateService
	validator *services.ValidatorService
	reviews   *services.ReviewService
	cookies   *utils.CookieManager
	now       func() time.Time // 测试时可替换
}

func NewReviewController(
	schedule *services.ScheduleService,
	gate *services.GateService,
	validator *services.ValidatorService,
	reviews *services.ReviewService,
	cookies *utils.CookieManager,
) *ReviewController {
	return &ReviewController{
		schedule:  schedule,
		gate:      gate,
		validator: validator,
		reviews:   reviews,
		cookies:   cookies,
		now:       time.Now,
	}
}

// GetFormState 返回表单渲染状态：当前餐段、闸门状态、字段边界
func (rc *ReviewController) GetFormState(c *gin.Context) {
	now := rc.now()
	userUUID := rc.cookies.ResolveIdentity(c)
	meal := rc.schedule.CurrentMeal(now)
	date := rc.gate.DateKey(now)

	cookieMarker := meal != "" && rc.cookies.HasMarker(c, date, meal)
	state := rc.gate.CanSubmit(c.Request.Context(), userUUID, meal, now, cookieMarker)

	rules := rc.validator.Rules()
	resp := models.FormStateResponse{
		CurrentMeal:    meal,
		GateState:      state,
		FieldsDisabled: state != services.GateAllowed,
		RatingMin:      rules.RatingMin,
		RatingMax:      rules.RatingMax,
		LikedMaxLen:    rules.Liked.Max,
		DislikedMaxLen: rules.Disliked.Max,
		AteListEnabled: rules.AteListEnabled,
	}
	if rules.AteListEnabled {
		resp.AteListMaxLen = rules.AteList.Max
	}

	switch state {
	case services.GateNotMealtime:
		resp.Title = "Submit a Review"
		resp.Message = "It's not mealtime. You can't submit a review right now. Come back later!"
	case services.GateAlreadySubmitted:
		resp.Title = fmt.Sprintf("Submit a Review for %s!", meal)
		resp.Message = fmt.Sprintf("You have already submitted a review for %s today.", strings.ToLower(meal))
	default:
		resp.Title = fmt.Sprintf("Submit a Review for %s!", meal)
	}

	c.JSON(http.StatusOK, resp)
}

// SubmitReview 提交一条评价
// 标记只在落库成功后写，落库失败不留任何痕迹，用户可以重试
func (rc *ReviewController) SubmitReview(c *gin.Context) {
	var req models.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := rc.now()
	userUUID := rc.cookies.ResolveIdentity(c)
	meal := rc.schedule.CurrentMeal(now)
	date := rc.gate.DateKey(now)

	cookieMarker := meal != "" && rc.cookies.HasMarker(c, date, meal)
	switch rc.gate.CanSubmit(c.Request.Context(), userUUID, meal, now, cookieMarker) {
	case services.GateNotMealtime:
		c.JSON(http.StatusForbidden, gin.H{
			"gateState": services.GateNotMealtime,
			"error":     "It's not mealtime. You can't submit a review right now.",
		})
		return
	case services.GateAlreadySubmitted:
		c.JSON(http.StatusConflict, gin.H{
			"gateState": services.GateAlreadySubmitted,
			"error":     "You have already submitted a review for this meal today.",
		})
		return
	}

	if err := rc.validator.Validate(c.Request.Context(), req); err != nil {
		var vErr *services.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":  validationMessage(vErr),
				"reason": vErr.Reason,
				"field":  vErr.Field,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Submission failed. Please try again."})
		return
	}

	review, err := rc.reviews.Append(userUUID, meal, now, req)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubmitted) {
			// 并发重复提交撞了唯一索引，库里已经有这条餐段的评价，补上标记
			rc.writeMarkers(c, userUUID, date, meal, now)
			c.JSON(http.StatusConflict, gin.H{
				"gateState": services.GateAlreadySubmitted,
				"error":     "You have already submitted a review for this meal today.",
			})
			return
		}
		config.Logger.Errorw("评价落库失败",
			"error", err,
			"userUUID", userUUID,
			"meal", meal,
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Submission failed. Please try again."})
		return
	}

	rc.writeMarkers(c, userUUID, date, meal, now)

	config.Logger.Infow("评价提交成功",
		"reviewID", review.ID,
		"userUUID", userUUID,
		"meal", meal,
	)
	c.JSON(http.StatusCreated, gin.H{
		"message": fmt.Sprintf("Review submitted successfully for %s!", meal),
		"review": models.ReviewResponse{
			ID:          review.ID,
			UserUUID:    review.UserUUID,
			Timestamp:   review.Timestamp,
			Meal:        review.Meal,
			Rating:      review.Rating,
			Liked:       review.Liked,
			Disliked:    review.Disliked,
			WhatTheyAte: review.WhatTheyAte,
		},
	})
}

// writeMarkers 落库成功后写服务端和客户端两份提交标记
func (rc *ReviewController) writeMarkers(c *gin.Context, userUUID, date, meal string, now time.Time) {
	if err := rc.gate.MarkSubmitted(c.Request.Context(), userUUID, meal, now); err != nil {
		// 评价已落库，标记写失败只记日志，唯一索引仍能兜底
		config.Logger.Warnw("写服务端提交标记失败",
			"error", err,
			"userUUID", userUUID,
			"meal", meal,
		)
	}
	rc.cookies.SetMarker(c, date, meal, rc.gate.UntilMidnight(now))
}

func validationMessage(vErr *services.ValidationError) string {
	switch vErr.Reason {
	case services.ReasonRating:
		return "Please select a rating within the allowed range."
	case services.ReasonLength:
		return "Your feedback must be within the allowed length."
	case services.ReasonLanguage:
		return "Your feedback contains inappropriate language."
	case services.ReasonIllegible:
		return "Your feedback could not be read. Please write it in plain language."
	default:
		return "Your feedback could not be accepted."
	}
}
