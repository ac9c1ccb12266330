package extractor

import (
	"context"
	"time"

	"room-allocator/internal/config"
	"room-allocator/internal/models"

	"go.uber.org/zap"
)

// Extractor 约束提取器接口
// 从预订备注中提取结构化排房约束；提取永远不失败，
// 后端不可用时由实现内部降级，调用方只感知结果
type Extractor interface {
	Extract(ctx context.Context, notes string) models.Constraints
}

// NewFromConfig 按配置创建提取器
// mode=llm 时模型提取器包装关键词提取器作为回退目标，
// 其余情况只用关键词提取器
func NewFromConfig(cfg *config.Config, extraction config.ExtractionConfig, logger *zap.Logger) Extractor {
	keyword := NewKeywordExtractor(extraction.TriggerPhrases)

	if cfg.Extractor.Mode != "llm" {
		return keyword
	}

	client := NewOpenAIClient(cfg.Extractor.BaseURL, cfg.Extractor.APIKey)
	timeout := time.Duration(cfg.Extractor.TimeoutSeconds) * time.Second

	return NewLLMExtractor(client, cfg.Extractor.Model, extraction, timeout, keyword, logger)
}
