package chain

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"wordsalad/internal/ai/component"
	"wordsalad/internal/config"
)

// ParagraphChain 段落生成链
// 工作流: System 指令 + Prompt -> ChatModel(max_tokens=预算) -> 段落文本
type ParagraphChain struct {
	chatModel    model.BaseChatModel
	systemPrompt string
	provider     string
	modelName    string
}

// NewParagraphChain 根据 AI 配置创建段落生成链
func NewParagraphChain(ctx context.Context, cfg *config.AIConfig, systemPrompt string) (*ParagraphChain, error) {
	chatModel, err := component.NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return NewParagraphChainWithModel(chatModel, systemPrompt, cfg.Provider, cfg.Model), nil
}

// NewParagraphChainWithModel 使用已有的 ChatModel 创建段落生成链
func NewParagraphChainWithModel(chatModel model.BaseChatModel, systemPrompt, provider, modelName string) *ParagraphChain {
	return &ParagraphChain{
		chatModel:    chatModel,
		systemPrompt: systemPrompt,
		provider:     provider,
		modelName:    modelName,
	}
}

// Generate 根据提示词与 token 预算生成文本
func (c *ParagraphChain) Generate(ctx context.Context, prompt string, tokenBudget int) (string, error) {
	messages := make([]*schema.Message, 0, 2)
	if c.systemPrompt != "" {
		messages = append(messages, schema.SystemMessage(c.systemPrompt))
	}
	messages = append(messages, schema.UserMessage(prompt))

	var opts []model.Option
	if tokenBudget > 0 {
		opts = append(opts, model.WithMaxTokens(tokenBudget))
	}

	resp, err := c.chatModel.Generate(ctx, messages, opts...)
	if err != nil {
		return "", fmt.Errorf("chat model generate: %w", err)
	}
	if resp == nil {
		return "", fmt.Errorf("empty response from chat model")
	}

	if resp.ResponseMeta != nil && resp.ResponseMeta.Usage != nil {
		log.Debug().
			Str("provider", c.provider).
			Str("model", c.modelName).
			Int("prompt_tokens", resp.ResponseMeta.Usage.PromptTokens).
			Int("completion_tokens", resp.ResponseMeta.Usage.CompletionTokens).
			Str("finish_reason", resp.ResponseMeta.FinishReason).
			Msg("chat model usage")
	}

	return resp.Content, nil
}
