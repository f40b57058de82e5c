package services

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/MildKid/DegReviews/config"
	"github.com/MildKid/DegReviews/models"
)

// 校验失败原因，按规则应用顺序排列
const (
	ReasonRating    = "rating"
	ReasonLength    = "length"
	ReasonLanguage  = "language"
	ReasonIllegible = "illegible"
)

// ValidationError 校验失败，用户改完输入后可重试
type ValidationError struct {
	Reason string
	Field  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("校验失败: %s (%s)", e.Reason, e.Field)
}

// FieldRule 单个自由文本字段的长度边界，闭区间
type FieldRule struct {
	Min int
	Max int
}

// ValidationRules 全部校验规则，均来自配置
type ValidationRules struct {
	RatingMin int
	RatingMax int

	Liked          FieldRule
	Disliked       FieldRule
	AteListEnabled bool
	AteList        FieldRule

	ProhibitedTerms  []string
	ExpectedLanguage string // 空串表示不做语言可读性检查
}

// RulesFromConfig 从配置构建校验规则并加载违禁词表
func RulesFromConfig(conf config.Config) (ValidationRules, error) {
	terms, err := LoadProhibitedTerms(conf.ProhibitedWordFile)
	if err != nil {
		return ValidationRules{}, err
	}

	expected := ""
	if conf.LanguageCheckEnabled {
		expected = conf.ExpectedLanguage
	}

	return ValidationRules{
		RatingMin:        conf.RatingMin,
		RatingMax:        conf.RatingMax,
		Liked:            FieldRule{Min: conf.LikedMinLen, Max: conf.LikedMaxLen},
		Disliked:         FieldRule{Min: conf.DislikedMinLen, Max: conf.DislikedMaxLen},
		AteListEnabled:   conf.AteListEnabled,
		AteList:          FieldRule{Min: conf.AteListMinLen, Max: conf.AteListMaxLen},
		ProhibitedTerms:  terms,
		ExpectedLanguage: expected,
	}, nil
}

// LoadProhibitedTerms 从外部文件加载违禁词，一行一个，#开头为注释
// 词表属于运营配置，代码里不内置任何样例词
func LoadProhibitedTerms(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("读取违禁词表失败: %v", err)
	}

	var terms []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		terms = append(terms, strings.ToLower(line))
	}
	return terms, nil
}

// LanguageDetector 语言可读性检查的外部协作方
type LanguageDetector interface {
	DetectLanguage(ctx context.Context, text string) (string, error)
}

// ValidatorService 表单内容校验，纯校验，不碰存储和Cookie
type ValidatorService struct {
	rules    ValidationRules
	detector LanguageDetector
}

func NewValidatorService(rules ValidationRules, detector LanguageDetector) *ValidatorService {
	return &ValidatorService{rules: rules, detector: detector}
}

// Rules 返回当前生效的校验规则
func (s *ValidatorService) Rules() ValidationRules {
	return s.rules
}

type textField struct {
	name  string
	value string
	rule  FieldRule
}

func (s *ValidatorService) textFields(req models.SubmitReviewRequest) []textField {
	fields := []textField{
		{name: "liked", value: req.Liked, rule: s.rules.Liked},
		{name: "disliked", value: req.Disliked, rule: s.rules.Disliked},
	}
	if s.rules.AteListEnabled {
		fields = append(fields, textField{name: "whatTheyAte", value: req.WhatTheyAte, rule: s.rules.AteList})
	}
	return fields
}

// Validate 按顺序应用规则：评分范围 → 长度 → 违禁词 → 语言可读性
// 任何一条不过立即返回，不产生任何副作用
func (s *ValidatorService) Validate(ctx context.Context, req models.SubmitReviewRequest) error {
	if req.Rating < s.rules.RatingMin || req.Rating > s.rules.RatingMax {
		return &ValidationError{Reason: ReasonRating, Field: "rating"}
	}

	fields := s.textFields(req)

	for _, f := range fields {
		n := utf8.RuneCountInString(f.value)
		if n < f.rule.Min || n > f.rule.Max {
			return &ValidationError{Reason: ReasonLength, Field: f.name}
		}
	}

	for _, f := range fields {
		lower := strings.ToLower(f.value)
		for _, term := range s.rules.ProhibitedTerms {
			if strings.Contains(lower, term) {
				return &ValidationError{Reason: ReasonLanguage, Field: f.name}
			}
		}
	}

	if s.rules.ExpectedLanguage != "" && s.detector != nil {
		for _, f := range fields {
			lang, err := s.detector.DetectLanguage(ctx, f.value)
			if err != nil {
				// 检测服务不可用时放行，食堂表单不能被LLM故障卡死
				config.Logger.Warnw("语言检测失败，跳过该规则",
					"error", err,
					"field", f.name,
				)
				return nil
			}
			if !strings.EqualFold(lang, s.rules.ExpectedLanguage) {
				return &ValidationError{Reason: ReasonIllegible, Field: f.name}
			}
		}
	}

	return nil
}
