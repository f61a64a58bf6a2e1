package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wordsalad/internal/model"
	"wordsalad/internal/pkg/logger"
)

// Recovery 异常恢复中间件
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.FromContext(c.Request.Context()).Error().
					Interface("error", err).
					Str("path", c.Request.URL.Path).
					Str("method", c.Request.Method).
					Msg("panic recovered")

				c.AbortWithStatusJSON(http.StatusInternalServerError, model.ErrorResponse{
					Code:    model.CodeInternal,
					Message: "Internal Server Error",
				})
			}
		}()
		c.Next()
	}
}
