package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"wordsalad/internal/config"
	"wordsalad/internal/pkg/command"
)

type stubContextProvider struct {
	summary string
	found   bool
	err     error
	panics  bool
	calls   int
}

func (p *stubContextProvider) Summary(ctx context.Context, topic string) (string, bool, error) {
	p.calls++
	if p.panics {
		panic("provider exploded")
	}
	return p.summary, p.found, p.err
}

type stubGenerator struct {
	reply       string
	err         error
	prompt      string
	tokenBudget int
	calls       int
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string, tokenBudget int) (string, error) {
	g.calls++
	g.prompt = prompt
	g.tokenBudget = tokenBudget
	return g.reply, g.err
}

func TestParagraphService_Orchestrate(t *testing.T) {
	Convey("Orchestrate 合并上下文并调用生成器", t, func() {
		ctx := context.Background()
		policy := config.DefaultGeneration()
		gen := &stubGenerator{reply: "  The Moon is bright.\n"}

		Convey("有上下文时 prompt 包含上下文且 used_context=true", func() {
			provider := &stubContextProvider{summary: "The Moon is Earth's only natural satellite.", found: true}
			svc := NewParagraphService(provider, gen, policy)

			result, err := svc.Orchestrate(ctx, "moon", 30)
			So(err, ShouldBeNil)
			So(result.UsedContext, ShouldBeTrue)
			So(result.Paragraph, ShouldEqual, "The Moon is bright.")
			So(result.Topic, ShouldEqual, "moon")
			So(result.WordCount, ShouldEqual, 30)
			So(gen.prompt, ShouldContainSubstring, "Based on the following information about moon:")
			So(gen.prompt, ShouldContainSubstring, "The Moon is Earth's only natural satellite.")
			So(gen.prompt, ShouldContainSubstring, "in exactly 30 words")
			So(gen.prompt, ShouldContainSubstring, "factual")
			So(gen.tokenBudget, ShouldEqual, 90)
		})

		Convey("上下文不存在时 prompt 不含上下文块", func() {
			provider := &stubContextProvider{found: false}
			svc := NewParagraphService(provider, gen, policy)

			result, err := svc.Orchestrate(ctx, "moon", 30)
			So(err, ShouldBeNil)
			So(result.UsedContext, ShouldBeFalse)
			So(gen.prompt, ShouldNotContainSubstring, "Based on the following information")
			So(gen.prompt, ShouldContainSubstring, "paragraph about moon in exactly 30 words")
			So(gen.prompt, ShouldContainSubstring, "factual")
		})

		Convey("知识源报错时降级为无上下文生成", func() {
			provider := &stubContextProvider{err: errors.New("dial tcp: network is unreachable")}
			svc := NewParagraphService(provider, gen, policy)

			result, err := svc.Orchestrate(ctx, "moon", 30)
			So(err, ShouldBeNil)
			So(result.UsedContext, ShouldBeFalse)
			So(gen.calls, ShouldEqual, 1)
			So(gen.prompt, ShouldNotContainSubstring, "Based on the following information")
		})

		Convey("知识源 panic 也被吞掉", func() {
			provider := &stubContextProvider{panics: true}
			svc := NewParagraphService(provider, gen, policy)

			result, err := svc.Orchestrate(ctx, "moon", 30)
			So(err, ShouldBeNil)
			So(result.UsedContext, ShouldBeFalse)
		})

		Convey("空白摘要视为无上下文", func() {
			provider := &stubContextProvider{summary: "   ", found: true}
			svc := NewParagraphService(provider, gen, policy)

			result, err := svc.Orchestrate(ctx, "moon", 30)
			So(err, ShouldBeNil)
			So(result.UsedContext, ShouldBeFalse)
		})

		Convey("未配置知识源时直接无上下文生成", func() {
			svc := NewParagraphService(nil, gen, policy)

			result, err := svc.Orchestrate(ctx, "moon", 30)
			So(err, ShouldBeNil)
			So(result.UsedContext, ShouldBeFalse)
		})

		Convey("上下文超过上限时被截断", func() {
			policy.ContextMaxChars = 10
			provider := &stubContextProvider{summary: strings.Repeat("x", 50), found: true}
			svc := NewParagraphService(provider, gen, policy)

			_, err := svc.Orchestrate(ctx, "moon", 30)
			So(err, ShouldBeNil)
			So(gen.prompt, ShouldContainSubstring, strings.Repeat("x", 10))
			So(gen.prompt, ShouldNotContainSubstring, strings.Repeat("x", 11))
		})

		Convey("token 倍数可配置", func() {
			policy.TokenMultiplier = 5
			svc := NewParagraphService(nil, gen, policy)

			_, err := svc.Orchestrate(ctx, "moon", 20)
			So(err, ShouldBeNil)
			So(gen.tokenBudget, ShouldEqual, 100)
		})

		Convey("生成器报错时向上传递且无结果", func() {
			provider := &stubContextProvider{summary: "ctx", found: true}
			failing := &stubGenerator{err: errors.New("insufficient_quota")}
			svc := NewParagraphService(provider, failing, policy)

			result, err := svc.Orchestrate(ctx, "moon", 30)
			So(result, ShouldBeNil)
			So(errors.Is(err, ErrGenerationFailed), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "insufficient_quota")
		})
	})
}

func TestParagraphService_Generate(t *testing.T) {
	Convey("Generate 校验失败时不调用任何外部依赖", t, func() {
		ctx := context.Background()
		provider := &stubContextProvider{summary: "ctx", found: true}
		gen := &stubGenerator{reply: "paragraph"}
		svc := NewParagraphService(provider, gen, config.DefaultGeneration())

		Convey("格式错误", func() {
			for _, input := range []string{"", "moon", "123", "123abc"} {
				_, err := svc.Generate(ctx, input)
				So(errors.Is(err, command.ErrInvalidFormat), ShouldBeTrue)
			}
			So(provider.calls, ShouldEqual, 0)
			So(gen.calls, ShouldEqual, 0)
		})

		Convey("字数越界", func() {
			_, err := svc.Generate(ctx, "moon5")
			So(errors.Is(err, command.ErrWordCountOutOfRange), ShouldBeTrue)
			_, err = svc.Generate(ctx, "moon501")
			So(errors.Is(err, command.ErrWordCountOutOfRange), ShouldBeTrue)
			So(provider.calls, ShouldEqual, 0)
			So(gen.calls, ShouldEqual, 0)
		})

		Convey("合法指令", func() {
			result, err := svc.Generate(ctx, "artificial intelligence100")
			So(err, ShouldBeNil)
			So(result.Topic, ShouldEqual, "artificial intelligence")
			So(result.WordCount, ShouldEqual, 100)
			So(result.UsedContext, ShouldBeTrue)
			So(gen.tokenBudget, ShouldEqual, 300)
		})
	})
}

func TestBuildPrompt(t *testing.T) {
	Convey("BuildPrompt 两种形式共享主题、字数与事实性要求", t, func() {
		with := BuildPrompt("moon", 30, "Some facts.", true)
		without := BuildPrompt("moon", 30, "", false)

		for _, p := range []string{with, without} {
			So(p, ShouldContainSubstring, "paragraph about moon in exactly 30 words")
			So(p, ShouldContainSubstring, "factual")
		}
		So(with, ShouldStartWith, "Based on the following information about moon:\n\nSome facts.\n\n")
		So(without, ShouldNotContainSubstring, "Some facts.")
	})
}
