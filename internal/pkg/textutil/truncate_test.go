package textutil

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTruncateRunes(t *testing.T) {
	Convey("TruncateRunes 按字符截断", t, func() {
		So(TruncateRunes("hello world", 5), ShouldEqual, "hello")
		So(TruncateRunes("hello", 10), ShouldEqual, "hello")
		So(TruncateRunes("月球是地球唯一的天然卫星", 2), ShouldEqual, "月球")

		Convey("n <= 0 时原样返回", func() {
			So(TruncateRunes("hello", 0), ShouldEqual, "hello")
			So(TruncateRunes("hello", -1), ShouldEqual, "hello")
		})
	})
}
