package extractor

import (
	"context"
	"strings"

	"room-allocator/internal/config"
	"room-allocator/internal/models"
)

// KeywordExtractor 关键词约束提取器
// 纯函数实现，无外部依赖，始终可用
type KeywordExtractor struct {
	phrases []string
}

// NewKeywordExtractor 创建关键词提取器
// phrases 为空时使用内置触发短语
func NewKeywordExtractor(phrases []string) *KeywordExtractor {
	if len(phrases) == 0 {
		phrases = config.DefaultExtractionConfig().TriggerPhrases
	}
	return &KeywordExtractor{phrases: phrases}
}

// Extract 对备注做小写子串匹配
func (e *KeywordExtractor) Extract(ctx context.Context, notes string) models.Constraints {
	if strings.TrimSpace(notes) == "" {
		return models.Constraints{}
	}

	lower := strings.ToLower(notes)
	for _, phrase := range e.phrases {
		if strings.Contains(lower, phrase) {
			return models.Constraints{NoStairs: true}
		}
	}

	return models.Constraints{}
}
