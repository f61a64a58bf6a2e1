package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"wordsalad/internal/model"
	"wordsalad/internal/pkg/command"
	"wordsalad/internal/pkg/logger"
	"wordsalad/internal/service"
)

// ParagraphGenerator 段落生成能力
type ParagraphGenerator interface {
	Generate(ctx context.Context, input string) (*service.GenerationResult, error)
}

// ParagraphHandler 段落生成处理器
type ParagraphHandler struct {
	svc ParagraphGenerator
}

// NewParagraphHandler 创建段落生成处理器
func NewParagraphHandler(svc ParagraphGenerator) *ParagraphHandler {
	return &ParagraphHandler{svc: svc}
}

// Generate 段落生成接口
// @Summary      生成段落
// @Description  解析 topic+字数 指令，检索 Wikipedia 摘要作为上下文，调用 LLM 生成段落
// @Tags         段落
// @Accept       json
// @Produce      json
// @Param        request  body      model.GenerateRequest  true  "生成请求"
// @Success      200      {object}  model.GenerateResponse
// @Failure      400      {object}  model.ErrorResponse
// @Failure      500      {object}  model.ErrorResponse
// @Router       /generate [post]
func (h *ParagraphHandler) Generate(c *gin.Context) {
	var req model.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Input == nil {
		resp := model.ErrorResponse{
			Code:    model.CodeInvalidBody,
			Reason:  "missing_input",
			Message: "Missing input field in request body",
			Example: model.GenerateExample{Input: "moon30"},
		}
		if err != nil {
			resp.Detail = err.Error()
		}
		c.JSON(http.StatusBadRequest, resp)
		return
	}

	input := *req.Input
	result, err := h.svc.Generate(c.Request.Context(), input)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.GenerateResponse{
		Success:     true,
		Input:       input,
		Topic:       result.Topic,
		WordCount:   result.WordCount,
		Paragraph:   result.Paragraph,
		UsedContext: result.UsedContext,
	})
}

func (h *ParagraphHandler) writeError(c *gin.Context, err error) {
	var verr *command.ValidationError
	if errors.As(err, &verr) {
		code := model.CodeInvalidFormat
		if verr.Reason == command.ReasonWordCountOutOfRange {
			code = model.CodeWordCountOutOfRange
		}
		c.JSON(http.StatusBadRequest, model.ErrorResponse{
			Code:     code,
			Reason:   string(verr.Reason),
			Message:  verr.Message,
			Received: verr.Received,
		})
		return
	}

	logger.FromContext(c.Request.Context()).Error().Err(err).Msg("generate request failed")
	c.JSON(http.StatusInternalServerError, model.ErrorResponse{
		Code:    model.CodeGenerationFailed,
		Reason:  "generation_failed",
		Message: "Internal server error",
		Detail:  err.Error(),
	})
}
