package config

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestConfig_Validate(t *testing.T) {
	Convey("Validate 校验服务与生成策略", t, func() {
		cfg := Default()

		Convey("默认配置合法", func() {
			So(cfg.Validate(), ShouldBeNil)
			So(cfg.Generation.MinWords, ShouldEqual, 10)
			So(cfg.Generation.MaxWords, ShouldEqual, 500)
			So(cfg.Generation.TokenMultiplier, ShouldEqual, 3)
			So(cfg.Generation.ContextMaxChars, ShouldEqual, 500)
		})

		Convey("端口越界", func() {
			cfg.Server.Port = 70000
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("未知运行模式", func() {
			cfg.Server.Mode = "prod"
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("字数上限小于下限", func() {
			cfg.Generation.MinWords = 100
			cfg.Generation.MaxWords = 50
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("token 倍数必须为正", func() {
			cfg.Generation.TokenMultiplier = 0
			So(cfg.Validate(), ShouldNotBeNil)
		})

		Convey("上下文长度不能为负", func() {
			cfg.Generation.ContextMaxChars = -1
			So(cfg.Validate(), ShouldNotBeNil)
		})
	})
}
