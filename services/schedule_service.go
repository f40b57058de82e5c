package services

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// MealWindowConfig 时间表文件里的单个窗口
// days 形如 "Mon - Fri" 或 "Fri"，start/end 用12小时制，如 "11:00AM"
type MealWindowConfig struct {
	Days  string `mapstructure:"days"`
	Start string `mapstructure:"start"`
	End   string `mapstructure:"end"`
}

// MealConfig 时间表文件里的单个餐段，声明顺序即优先级
type MealConfig struct {
	Name    string             `mapstructure:"name"`
	Windows []MealWindowConfig `mapstructure:"windows"`
}

// mealWindow 解析后的窗口，秒粒度，两端闭区间
type mealWindow struct {
	days     [7]bool // 下标为 time.Weekday
	startSec int
	endSec   int
}

type mealDef struct {
	name    string
	windows []mealWindow
}

// ScheduleService 按墙钟时间解析当前餐段
type ScheduleService struct {
	loc   *time.Location
	meals []mealDef
}

var weekdayAbbr = map[string]time.Weekday{
	"Sun": time.Sunday,
	"Mon": time.Monday,
	"Tue": time.Tuesday,
	"Wed": time.Wednesday,
	"Thu": time.Thursday,
	"Fri": time.Friday,
	"Sat": time.Saturday,
}

// NewScheduleService 从yaml时间表文件加载餐段配置
func NewScheduleService(timezone, scheduleFile string) (*ScheduleService, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("无效的时区 %s: %v", timezone, err)
	}

	v := viper.New()
	v.SetConfigFile(scheduleFile)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取餐段时间表失败: %v", err)
	}

	var mealConfigs []MealConfig
	if err := v.UnmarshalKey("meals", &mealConfigs); err != nil {
		return nil, fmt.Errorf("解析餐段时间表失败: %v", err)
	}

	return NewScheduleFromMeals(loc, mealConfigs)
}

// NewScheduleFromMeals 直接用餐段配置构建，加载时做全部校验
func NewScheduleFromMeals(loc *time.Location, mealConfigs []MealConfig) (*ScheduleService, error) {
	if len(mealConfigs) == 0 {
		return nil, fmt.Errorf("餐段时间表为空")
	}

	seen := make(map[string]bool)
	meals := make([]mealDef, 0, len(mealConfigs))
	for _, mc := range mealConfigs {
		if mc.Name == "" {
			return nil, fmt.Errorf("餐段名不能为空")
		}
		if seen[mc.Name] {
			return nil, fmt.Errorf("餐段名重复: %s", mc.Name)
		}
		seen[mc.Name] = true

		var covered [7]bool
		windows := make([]mealWindow, 0, len(mc.Windows))
		for _, wc := range mc.Windows {
			w, err := parseWindow(wc)
			if err != nil {
				return nil, fmt.Errorf("餐段 %s: %v", mc.Name, err)
			}
			// 同一餐段内同一天只能出现在一个窗口里
			for d := 0; d < 7; d++ {
				if w.days[d] && covered[d] {
					return nil, fmt.Errorf("餐段 %s 的窗口在 %s 上重叠", mc.Name, time.Weekday(d))
				}
				if w.days[d] {
					covered[d] = true
				}
			}
			windows = append(windows, w)
		}
		meals = append(meals, mealDef{name: mc.Name, windows: windows})
	}

	return &ScheduleService{loc: loc, meals: meals}, nil
}

func parseWindow(wc MealWindowConfig) (mealWindow, error) {
	var w mealWindow

	days, err := parseDayGroup(wc.Days)
	if err != nil {
		return w, err
	}
	w.days = days

	start, err := parseClock(wc.Start)
	if err != nil {
		return w, err
	}
	end, err := parseClock(wc.End)
	if err != nil {
		return w, err
	}
	// 不支持跨午夜和零长度窗口
	if start >= end {
		return w, fmt.Errorf("窗口 %s-%s 起始时间必须早于结束时间", wc.Start, wc.End)
	}
	w.startSec = start
	w.endSec = end
	return w, nil
}

// parseDayGroup 解析 "Mon - Fri" / "Sat - Sun" / "Fri" 这类写法
// 范围按起始日向后数到结束日（含两端），允许跨周（Sat - Sun）
func parseDayGroup(s string) ([7]bool, error) {
	var days [7]bool
	parts := strings.Split(s, "-")
	switch len(parts) {
	case 1:
		d, ok := weekdayAbbr[strings.TrimSpace(parts[0])]
		if !ok {
			return days, fmt.Errorf("无效的星期: %s", s)
		}
		days[d] = true
	case 2:
		from, ok1 := weekdayAbbr[strings.TrimSpace(parts[0])]
		to, ok2 := weekdayAbbr[strings.TrimSpace(parts[1])]
		if !ok1 || !ok2 {
			return days, fmt.Errorf("无效的星期范围: %s", s)
		}
		d := from
		for {
			days[d] = true
			if d == to {
				break
			}
			d = (d + 1) % 7
		}
	default:
		return days, fmt.Errorf("无效的星期范围: %s", s)
	}
	return days, nil
}

// parseClock 解析 "3:04PM" 形式的时刻，返回当天秒数
func parseClock(s string) (int, error) {
	t, err := time.Parse("3:04PM", strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("无效的时刻 %s: %v", s, err)
	}
	return t.Hour()*3600 + t.Minute()*60, nil
}

// CurrentMeal 返回now所处的餐段名，不在任何餐段内返回空串
// 窗口重叠时按餐段声明顺序取第一个命中的
func (s *ScheduleService) CurrentMeal(now time.Time) string {
	local := now.In(s.loc)
	sec := local.Hour()*3600 + local.Minute()*60 + local.Second()
	wd := int(local.Weekday())

	for _, m := range s.meals {
		for _, w := range m.windows {
			if w.days[wd] && sec >= w.startSec && sec <= w.endSec {
				return m.name
			}
		}
	}
	return ""
}

// Location 返回食堂所在时区
func (s *ScheduleService) Location() *time.Location {
	return s.loc
}

// MealNames 按声明顺序返回全部餐段名
func (s *ScheduleService) MealNames() []string {
	names := make([]string, len(s.meals))
	for i, m := range s.meals {
		names[i] = m.name
	}
	return names
}
