package logger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	. "github.com/smartystreets/goconvey/convey"
	"go.opentelemetry.io/otel/trace"

	"wordsalad/internal/config"
	"wordsalad/internal/pkg/ctxutil"
)

func TestInit(t *testing.T) {
	Convey("Init 设置全局级别", t, func() {
		So(Init(&config.LogConfig{Level: "warn", Format: "json"}), ShouldBeNil)
		So(zerolog.GlobalLevel(), ShouldEqual, zerolog.WarnLevel)

		So(Init(&config.LogConfig{Level: "nonsense"}), ShouldBeNil)
		So(zerolog.GlobalLevel(), ShouldEqual, zerolog.InfoLevel)
	})
}

func TestFromContext(t *testing.T) {
	Convey("FromContext 附带 request_id", t, func() {
		var buf bytes.Buffer
		original := log.Logger
		log.Logger = zerolog.New(&buf)
		defer func() { log.Logger = original }()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)

		ctx := ctxutil.WithRequestID(context.Background(), "abc-123")
		FromContext(ctx).Info().Msg("hello")
		So(buf.String(), ShouldContainSubstring, `"request_id":"abc-123"`)

		buf.Reset()
		FromContext(context.Background()).Info().Msg("hello")
		So(buf.String(), ShouldNotContainSubstring, "request_id")
		So(buf.String(), ShouldNotContainSubstring, "trace_id")
	})

	Convey("FromContext 附带当前 Span 的 trace_id", t, func() {
		var buf bytes.Buffer
		original := log.Logger
		log.Logger = zerolog.New(&buf)
		defer func() { log.Logger = original }()
		zerolog.SetGlobalLevel(zerolog.InfoLevel)

		traceID, err := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
		So(err, ShouldBeNil)
		spanID, err := trace.SpanIDFromHex("00f067aa0ba902b7")
		So(err, ShouldBeNil)
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    traceID,
			SpanID:     spanID,
			TraceFlags: trace.FlagsSampled,
		})
		ctx := trace.ContextWithSpanContext(context.Background(), sc)

		FromContext(ctx).Info().Msg("hello")
		So(buf.String(), ShouldContainSubstring, `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)
	})
}
