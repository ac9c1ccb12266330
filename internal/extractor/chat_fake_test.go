package extractor_test

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

// fakeChatClient 仅用于单元测试（固定响应或错误）
type fakeChatClient struct {
	content string
	err     error
	calls   int
}

func (f *fakeChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	if f.content == "" {
		return openai.ChatCompletionResponse{}, nil
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{
			{Message: openai.ChatCompletionMessage{Content: f.content}},
		},
	}, nil
}

// blockingChatClient 阻塞到 ctx 超时为止（模拟慢后端）
type blockingChatClient struct {
	calls int
}

func (b *blockingChatClient) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	b.calls++
	<-ctx.Done()
	return openai.ChatCompletionResponse{}, ctx.Err()
}
