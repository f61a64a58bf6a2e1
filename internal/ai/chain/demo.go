package chain

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var demoTopicPattern = regexp.MustCompile(`paragraph about (.+?) in exactly`)

// DemoGenerator 无需 API Key 的演示生成器
// 用模板句子填充到请求的字数
type DemoGenerator struct {
	tokenMultiplier int
}

// NewDemoGenerator 创建演示生成器，tokenMultiplier 用于从 token 预算反推字数
func NewDemoGenerator(tokenMultiplier int) *DemoGenerator {
	if tokenMultiplier <= 0 {
		tokenMultiplier = 1
	}
	return &DemoGenerator{tokenMultiplier: tokenMultiplier}
}

// Generate 生成演示段落
func (g *DemoGenerator) Generate(ctx context.Context, prompt string, tokenBudget int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	topic := "this topic"
	if m := demoTopicPattern.FindStringSubmatch(prompt); m != nil {
		topic = m[1]
	}

	wordCount := tokenBudget / g.tokenMultiplier
	if wordCount <= 0 {
		return "", fmt.Errorf("token budget %d too small", tokenBudget)
	}

	sentence := fmt.Sprintf("This is a demonstration paragraph about %s. ", topic)
	sentenceWords := len(strings.Fields(sentence))
	repeat := wordCount/sentenceWords + 1

	words := strings.Fields(strings.Repeat(sentence, repeat))
	return strings.Join(words[:wordCount], " "), nil
}
