package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/schema"
)

// languagePrompt 语言判定提示词，只要求返回语言代码
const languagePrompt = `你是一个语言识别器。判断用户文本主要使用的自然语言，` +
	`只返回ISO 639-1两位语言代码（如 en、zh、es），不要任何其他内容。` +
	`如果文本是乱码或无法判断，返回 und。`

// LanguageService 用LLM判断文本语言，供校验器的可读性规则使用
type LanguageService struct {
	client *DeepseekClient
}

func NewLanguageService(client *DeepseekClient) *LanguageService {
	return &LanguageService{client: client}
}

// DetectLanguage 返回文本的语言代码，无法判断时返回 "und"
func (s *LanguageService) DetectLanguage(ctx context.Context, text string) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  schema.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{llms.TextPart(languagePrompt)},
		},
		{
			Role:  schema.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{llms.TextPart(text)},
		},
	}

	resp, err := s.client.DsChat.GenerateContent(ctx, messages, llms.WithTemperature(0))
	if err != nil {
		return "", fmt.Errorf("语言检测调用失败: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("语言检测无返回")
	}

	lang := strings.ToLower(strings.TrimSpace(resp.Choices[0].Content))
	if lang == "" {
		lang = "und"
	}
	return lang, nil
}
