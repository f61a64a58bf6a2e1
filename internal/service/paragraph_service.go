package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"wordsalad/internal/config"
	"wordsalad/internal/pkg/command"
	"wordsalad/internal/pkg/logger"
	"wordsalad/internal/pkg/metrics"
	"wordsalad/internal/pkg/textutil"
	"wordsalad/internal/pkg/tracer"
)

// ErrGenerationFailed 生成器调用失败
var ErrGenerationFailed = errors.New("paragraph generation failed")

// ContextProvider 知识源: 返回主题摘要，不存在时 ok=false
type ContextProvider interface {
	Summary(ctx context.Context, topic string) (summary string, ok bool, err error)
}

// Generator 文本生成器: prompt + token 预算 -> 文本
type Generator interface {
	Generate(ctx context.Context, prompt string, tokenBudget int) (string, error)
}

// GenerationResult 段落生成结果
// WordCount 为请求的字数，不校验实际输出长度
type GenerationResult struct {
	Paragraph   string
	Topic       string
	WordCount   int
	UsedContext bool
}

// ParagraphService 段落生成服务
// 请求之间不共享可变状态
type ParagraphService struct {
	contextProvider ContextProvider
	generator       Generator
	policy          config.GenerationConfig
}

// NewParagraphService 创建段落生成服务
// contextProvider 可为 nil，此时始终以无上下文方式生成
func NewParagraphService(contextProvider ContextProvider, generator Generator, policy config.GenerationConfig) *ParagraphService {
	return &ParagraphService{
		contextProvider: contextProvider,
		generator:       generator,
		policy:          policy,
	}
}

// Limits 字数范围
func (s *ParagraphService) Limits() command.Limits {
	return command.Limits{
		MinWords: s.policy.MinWords,
		MaxWords: s.policy.MaxWords,
	}
}

// Generate 解析并校验指令，然后生成段落
// 校验失败时不会调用任何外部依赖
func (s *ParagraphService) Generate(ctx context.Context, input string) (*GenerationResult, error) {
	req, err := command.Validate(input, s.Limits())
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(metrics.StatusRejected).Inc()
		logger.FromContext(ctx).Info().Str("input", input).Err(err).Msg("command rejected")
		return nil, err
	}

	return s.Orchestrate(ctx, req.Topic, req.WordCount)
}

// Orchestrate 获取上下文（尽力而为）后调用生成器
func (s *ParagraphService) Orchestrate(ctx context.Context, topic string, wordCount int) (*GenerationResult, error) {
	ctx, span := tracer.Start(ctx, "paragraph.orchestrate")
	defer span.End()
	span.SetAttributes(
		attribute.String("paragraph.topic", topic),
		attribute.Int("paragraph.word_count", wordCount),
	)

	l := logger.FromContext(ctx).With().Str("topic", topic).Int("word_count", wordCount).Logger()
	start := time.Now()
	metrics.RequestedWordCount.Observe(float64(wordCount))

	contextText, hasContext := s.fetchContext(ctx, topic)
	span.SetAttributes(attribute.Bool("paragraph.used_context", hasContext))

	prompt := BuildPrompt(topic, wordCount, contextText, hasContext)
	tokenBudget := s.TokenBudget(wordCount)

	text, err := s.generate(ctx, prompt, tokenBudget)
	if err != nil {
		metrics.GenerationTotal.WithLabelValues(metrics.StatusFailed).Inc()
		span.RecordError(err)
		span.SetStatus(codes.Error, "generation failed")
		l.Error().Err(err).Bool("used_context", hasContext).Msg("paragraph generation failed")
		return nil, err
	}

	metrics.GenerationTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	metrics.GenerationDuration.Observe(time.Since(start).Seconds())

	l.Info().
		Bool("used_context", hasContext).
		Int("token_budget", tokenBudget).
		Dur("latency", time.Since(start)).
		Msg("paragraph generated")

	return &GenerationResult{
		Paragraph:   strings.TrimSpace(text),
		Topic:       topic,
		WordCount:   wordCount,
		UsedContext: hasContext,
	}, nil
}

// TokenBudget token 预算 = 字数 × 倍数
func (s *ParagraphService) TokenBudget(wordCount int) int {
	return wordCount * s.policy.TokenMultiplier
}

// fetchContext 获取上下文，任何错误（含 panic）都降级为无上下文
func (s *ParagraphService) fetchContext(ctx context.Context, topic string) (contextText string, ok bool) {
	if s.contextProvider == nil {
		return "", false
	}

	ctx, span := tracer.Start(ctx, "paragraph.fetch_context")
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			metrics.ContextLookupTotal.WithLabelValues(metrics.ContextError).Inc()
			logger.FromContext(ctx).Warn().Interface("panic", r).Str("topic", topic).Msg("context provider panicked, generating without context")
			contextText, ok = "", false
		}
	}()

	summary, found, err := s.contextProvider.Summary(ctx, topic)
	if err != nil {
		metrics.ContextLookupTotal.WithLabelValues(metrics.ContextError).Inc()
		span.RecordError(err)
		logger.FromContext(ctx).Warn().Err(err).Str("topic", topic).Msg("context lookup failed, generating without context")
		return "", false
	}

	summary = strings.TrimSpace(summary)
	if !found || summary == "" {
		metrics.ContextLookupTotal.WithLabelValues(metrics.ContextAbsent).Inc()
		return "", false
	}

	metrics.ContextLookupTotal.WithLabelValues(metrics.ContextFound).Inc()
	// 上限对所有知识源生效，不依赖其自行截断
	return textutil.TruncateRunes(summary, s.policy.ContextMaxChars), true
}

// generate 调用生成器，错误直接向上传递
func (s *ParagraphService) generate(ctx context.Context, prompt string, tokenBudget int) (string, error) {
	ctx, span := tracer.Start(ctx, "paragraph.generate")
	defer span.End()
	span.SetAttributes(attribute.Int("paragraph.token_budget", tokenBudget))

	text, err := s.generator.Generate(ctx, prompt, tokenBudget)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	return text, nil
}

// BuildPrompt 构建生成提示词
// 有上下文时要求基于上下文写作，否则省略上下文段落
func BuildPrompt(topic string, wordCount int, contextText string, hasContext bool) string {
	if hasContext {
		return fmt.Sprintf(`Based on the following information about %s:

%s

Write a coherent, informative paragraph about %s in exactly %d words.
The paragraph should be factual, well-written, and maintain the word count precisely.`,
			topic, contextText, topic, wordCount)
	}

	return fmt.Sprintf(`Write a coherent, informative paragraph about %s in exactly %d words.
The paragraph should be factual and well-written.`,
		topic, wordCount)
}
