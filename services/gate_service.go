package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MildKid/DegReviews/config"
	"github.com/go-redis/redis/v8"
)

// 提交闸门的三种状态
const (
	GateAllowed          = "allowed"
	GateAlreadySubmitted = "already_submitted"
	GateNotMealtime      = "not_mealtime"
)

var (
	// ErrNotMealtime 当前不在任何餐段内
	ErrNotMealtime = errors.New("当前不在用餐时间")
	// ErrAlreadySubmitted 今天该餐段已提交过
	ErrAlreadySubmitted = errors.New("该餐段今天已提交过评价")
)

// GateService 提交闸门：按 (身份, 日期, 餐段) 判断能否提交
// 客户端Cookie标记是弱信号，Redis标记是服务端的二次把关
type GateService struct {
	rdb *redis.Client
	loc *time.Location
}

func NewGateService(rdb *redis.Client, loc *time.Location) *GateService {
	return &GateService{rdb: rdb, loc: loc}
}

// DateKey 返回now在食堂时区下的日历日，作为标记键的一部分
func (s *GateService) DateKey(now time.Time) string {
	return now.In(s.loc).Format("2006-01-02")
}

// MarkerKey 服务端提交标记的Redis键
func MarkerKey(userUUID, date, meal string) string {
	return fmt.Sprintf("review_marker:%s:%s:%s", userUUID, date, meal)
}

// CanSubmit 判断该身份此刻能否提交当前餐段的评价
// cookieMarker 表示客户端 {date}_{meal} Cookie 是否存在
func (s *GateService) CanSubmit(ctx context.Context, userUUID, meal string, now time.Time, cookieMarker bool) string {
	if meal == "" {
		return GateNotMealtime
	}
	if cookieMarker {
		return GateAlreadySubmitted
	}

	exists, err := s.rdb.Exists(ctx, MarkerKey(userUUID, s.DateKey(now), meal)).Result()
	if err != nil {
		// Redis不可用时退回客户端信号，不挡提交
		config.Logger.Warnw("查询提交标记失败",
			"error", err,
			"userUUID", userUUID,
			"meal", meal,
		)
		return GateAllowed
	}
	if exists > 0 {
		return GateAlreadySubmitted
	}
	return GateAllowed
}

// MarkSubmitted 写入服务端提交标记，只能在评价落库成功之后调用
func (s *GateService) MarkSubmitted(ctx context.Context, userUUID, meal string, now time.Time) error {
	key := MarkerKey(userUUID, s.DateKey(now), meal)
	if err := s.rdb.Set(ctx, key, "submitted", s.UntilMidnight(now)).Err(); err != nil {
		return fmt.Errorf("写入提交标记失败: %w", err)
	}
	return nil
}

// UntilMidnight 返回now到食堂时区下一个午夜的时长，作为标记TTL
// 至少覆盖到当天结束，日期翻篇后同一餐段重新可提交
func (s *GateService) UntilMidnight(now time.Time) time.Duration {
	local := now.In(s.loc)
	midnight := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, s.loc).AddDate(0, 0, 1)
	d := midnight.Sub(local)
	if d < time.Minute {
		d = time.Minute
	}
	return d
}
