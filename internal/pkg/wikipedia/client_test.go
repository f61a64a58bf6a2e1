package wikipedia

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	. "github.com/smartystreets/goconvey/convey"

	"wordsalad/internal/config"
)

func newTestClient(handler http.HandlerFunc, maxChars int) (*Client, func()) {
	srv := httptest.NewServer(handler)
	client := NewClient(&config.WikipediaConfig{
		BaseURL:   srv.URL,
		UserAgent: "WordSaladTest/1.0",
	}, maxChars)
	return client, srv.Close
}

func TestClient_Summary(t *testing.T) {
	Convey("Summary 查询主题摘要", t, func() {
		ctx := context.Background()

		Convey("页面存在时返回摘要并发送查询参数", func() {
			client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				q := r.URL.Query()
				if q.Get("titles") != "moon" || q.Get("prop") != "extracts" || r.Header.Get("User-Agent") != "WordSaladTest/1.0" {
					w.WriteHeader(http.StatusBadRequest)
					return
				}
				_, _ = w.Write([]byte(`{"query":{"pages":{"19331":{"pageid":19331,"title":"Moon","extract":"  The Moon is Earth's only natural satellite.  "}}}}`))
			}, 500)
			defer closeFn()

			summary, ok, err := client.Summary(ctx, "moon")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(summary, ShouldEqual, "The Moon is Earth's only natural satellite.")
		})

		Convey("页面不存在时返回 absent", func() {
			client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"query":{"pages":{"-1":{"ns":0,"title":"Xyzzyq","missing":""}}}}`))
			}, 500)
			defer closeFn()

			summary, ok, err := client.Summary(ctx, "xyzzyq")
			So(err, ShouldBeNil)
			So(ok, ShouldBeFalse)
			So(summary, ShouldBeEmpty)
		})

		Convey("摘要按字符截断", func() {
			long := strings.Repeat("é", 800)
			client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"query":{"pages":{"1":{"pageid":1,"title":"Long","extract":"` + long + `"}}}}`))
			}, 500)
			defer closeFn()

			summary, ok, err := client.Summary(ctx, "long")
			So(err, ShouldBeNil)
			So(ok, ShouldBeTrue)
			So(utf8.RuneCountInString(summary), ShouldEqual, 500)
		})

		Convey("非 200 状态返回错误", func() {
			client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
			}, 500)
			defer closeFn()

			_, ok, err := client.Summary(ctx, "moon")
			So(err, ShouldNotBeNil)
			So(ok, ShouldBeFalse)
		})

		Convey("API 错误体返回错误", func() {
			client, closeFn := newTestClient(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"error":{"code":"badvalue","info":"Unrecognized value"}}`))
			}, 500)
			defer closeFn()

			_, _, err := client.Summary(ctx, "moon")
			So(err, ShouldNotBeNil)
			So(err.Error(), ShouldContainSubstring, "badvalue")
		})
	})
}
