package extractor

import (
	"context"
	"fmt"
	"strings"
	"time"

	"room-allocator/internal/config"
	"room-allocator/internal/models"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ChatClient 抽象的聊天补全客户端（用于在单元测试中替换 OpenAI）
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewOpenAIClient 创建 OpenAI 兼容客户端
// baseURL 指向 Ollama 的 /v1 端点时可直连本地模型
func NewOpenAIClient(baseURL, apiKey string) *openai.Client {
	clientCfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		clientCfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(clientCfg)
}

// LLMExtractor 模型约束提取器
// 任何失败（端点不可达、超时、响应为空或不可解析）都回退到
// 包装的关键词提取器，不向调用方传播错误
type LLMExtractor struct {
	client      ChatClient
	model       string
	prompt      string
	temperature float32
	timeout     time.Duration
	fallback    Extractor
	logger      *zap.Logger
}

// NewLLMExtractor 创建模型提取器
func NewLLMExtractor(
	client ChatClient,
	model string,
	extraction config.ExtractionConfig,
	timeout time.Duration,
	fallback Extractor,
	logger *zap.Logger,
) *LLMExtractor {
	return &LLMExtractor{
		client:      client,
		model:       model,
		prompt:      extraction.Prompt,
		temperature: float32(extraction.Temperature),
		timeout:     timeout,
		fallback:    fallback,
		logger:      logger,
	}
}

// Extract 调用模型提取约束，失败时回退关键词匹配
func (e *LLMExtractor) Extract(ctx context.Context, notes string) models.Constraints {
	// 空备注快速路径，不发起外部调用
	if strings.TrimSpace(notes) == "" {
		return models.Constraints{}
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.client.CreateChatCompletion(callCtx, openai.ChatCompletionRequest{
		Model: e.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf(e.prompt, notes),
			},
		},
		Temperature: e.temperature,
	})
	if err != nil {
		e.logger.Warn("LLM extraction failed, falling back to keyword matching",
			zap.Error(err),
		)
		return e.fallback.Extract(ctx, notes)
	}

	if len(resp.Choices) == 0 {
		e.logger.Warn("LLM returned no choices, falling back to keyword matching")
		return e.fallback.Extract(ctx, notes)
	}

	content := strings.ToLower(strings.TrimSpace(resp.Choices[0].Message.Content))
	if content == "" {
		e.logger.Warn("LLM returned empty content, falling back to keyword matching")
		return e.fallback.Extract(ctx, notes)
	}

	// 响应按小写扫描肯定 token（模型被要求只返回 {"no_stairs": boolean}）
	return models.Constraints{NoStairs: strings.Contains(content, "true")}
}
