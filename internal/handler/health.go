package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wordsalad/internal/model"
)

// Version 服务版本
const Version = "1.0"

// HealthHandler 健康检查处理器
type HealthHandler struct{}

// NewHealthHandler 创建健康检查处理器
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Health 健康检查
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "WordSalad API",
	})
}

// Ready 就绪检查
func (h *HealthHandler) Ready(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
	})
}

// Info 服务信息与用法
func (h *HealthHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, model.ServiceInfo{
		Service:     "WordSalad API",
		Version:     Version,
		Description: "Generate paragraphs based on topic and word count",
		Endpoints: map[string]string{
			"/":         "This information page",
			"/health":   "Health check endpoint",
			"/generate": "POST endpoint to generate paragraphs",
		},
		Usage: model.Usage{
			Endpoint: "/generate",
			Method:   http.MethodPost,
			Body:     model.GenerateExample{Input: "moon30"},
			Example:  `curl -X POST http://localhost:5000/generate -H "Content-Type: application/json" -d '{"input":"moon30"}'`,
		},
	})
}
