package component

import (
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"wordsalad/internal/config"
)

func TestNewChatModel(t *testing.T) {
	Convey("NewChatModel 按 provider 创建模型", t, func() {
		ctx := context.Background()

		Convey("未知 provider 返回错误", func() {
			m, err := NewChatModel(ctx, &config.AIConfig{Provider: "llama"})
			So(m, ShouldBeNil)
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "llama")
		})

		Convey("azure 缺少 base_url 返回错误", func() {
			_, err := NewChatModel(ctx, &config.AIConfig{Provider: "azure", APIKey: "k", Model: "gpt"})
			So(err, ShouldNotBeNil)
		})

		Convey("openai 配置齐全时创建成功", func() {
			m, err := NewChatModel(ctx, &config.AIConfig{
				Provider: "openai",
				APIKey:   "sk-test",
				Options:  config.AIOptionsConfig{Temperature: 0.7},
			})
			So(err, ShouldBeNil)
			So(m, ShouldNotBeNil)
		})
	})
}
