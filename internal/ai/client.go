package ai

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"wordsalad/internal/ai/chain"
	"wordsalad/internal/config"
)

// Generator 文本生成能力: prompt + token 预算 -> 文本
type Generator interface {
	Generate(ctx context.Context, prompt string, tokenBudget int) (string, error)
}

// NewGenerator 按 provider 创建生成器
// provider=demo 时不需要 API Key
func NewGenerator(ctx context.Context, aiCfg *config.AIConfig, genCfg *config.GenerationConfig) (Generator, error) {
	if aiCfg.Provider == "demo" {
		log.Warn().Msg("AI provider is demo, paragraphs are placeholder text")
		return chain.NewDemoGenerator(genCfg.TokenMultiplier), nil
	}

	if aiCfg.APIKey == "" {
		return nil, fmt.Errorf("ai.api_key is required for provider %q (or use provider demo)", aiCfg.Provider)
	}

	paragraphChain, err := chain.NewParagraphChain(ctx, aiCfg, genCfg.SystemPrompt)
	if err != nil {
		return nil, fmt.Errorf("failed to create paragraph chain: %w", err)
	}

	log.Info().Str("provider", aiCfg.Provider).Str("model", aiCfg.Model).Msg("initialized paragraph chain")
	return paragraphChain, nil
}
